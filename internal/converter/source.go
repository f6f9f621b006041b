package converter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// =============================================================================
// SOURCE KINDS
// =============================================================================

// SourceKind identifies how a source location is read and converted.
type SourceKind int

const (
	// SourceCSV is CSV text from a local file or URL.
	SourceCSV SourceKind = iota
	// SourceDirectory is a local directory tree.
	SourceDirectory
	// SourceRSS is an RSS or Atom feed from a local file or URL.
	SourceRSS
	// SourceXLSX is a local XLSX workbook.
	SourceXLSX
)

// SourceKinds lists every kind in display order.
var SourceKinds = []SourceKind{SourceCSV, SourceDirectory, SourceRSS, SourceXLSX}

// String returns the display name of the kind.
func (k SourceKind) String() string {
	switch k {
	case SourceCSV:
		return "CSV"
	case SourceDirectory:
		return "Directory"
	case SourceRSS:
		return "RSS"
	case SourceXLSX:
		return "XLSX"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// ParseSourceKind accepts a kind name in any case. "dir" is accepted for
// Directory and "feed" for RSS.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return SourceCSV, nil
	case "dir", "directory":
		return SourceDirectory, nil
	case "rss", "feed", "atom":
		return SourceRSS, nil
	case "xlsx":
		return SourceXLSX, nil
	}
	names := make([]string, len(SourceKinds))
	for i, k := range SourceKinds {
		names[i] = strings.ToLower(k.String())
	}
	return 0, fmt.Errorf("unknown source kind %q (want %s)", s, strings.Join(names, ", "))
}

// fetchable reports whether locations of this kind may be URLs.
func (k SourceKind) fetchable() bool {
	return k == SourceCSV || k == SourceRSS
}

// Source is where a worksheet's data comes from.
type Source struct {
	Kind     SourceKind
	Location string
}

// NewSource returns a source of the given kind.
func NewSource(kind SourceKind, location string) *Source {
	return &Source{Kind: kind, Location: location}
}

// String renders the source as "kind location".
func (s Source) String() string {
	return s.Kind.String() + " " + s.Location
}

// =============================================================================
// RESOLVER
// =============================================================================

// SourceResolver produces the content a converter consumes.
type SourceResolver interface {
	Resolve(ctx context.Context, src Source) (string, error)
}

// Resolver reads CSV and RSS sources from URLs or local files. Directory and
// XLSX sources are passed through as paths.
type Resolver struct {
	Client    *http.Client
	UserAgent string
}

// NewResolver returns a Resolver whose requests time out after timeout.
func NewResolver(timeout time.Duration, userAgent string) *Resolver {
	return &Resolver{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// IsURL reports whether location is an absolute URL with a host, such as
// "https://example.com/data.csv". Local paths, including Windows drive paths,
// are not URLs.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Resolve returns the text of a CSV or RSS source, or the location itself for
// other kinds.
//
// Failures are *Error values tagged TagURL for remote sources and TagFile for
// local ones.
func (r *Resolver) Resolve(ctx context.Context, src Source) (string, error) {
	if !src.Kind.fetchable() {
		return src.Location, nil
	}

	if IsURL(src.Location) {
		text, err := r.fetch(ctx, src.Location)
		if err != nil {
			return "", &Error{Tag: TagURL, Err: err}
		}
		return text, nil
	}

	data, err := os.ReadFile(src.Location)
	if err != nil {
		return "", &Error{Tag: TagFile, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &Error{Tag: TagFile, Err: fmt.Errorf("%s: content is not valid UTF-8", src.Location)}
	}
	return string(data), nil
}

func (r *Resolver) fetch(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", err
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("GET %s: unexpected status %s", location, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: reading body: %w", location, err)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("GET %s: response body is not valid UTF-8 text", location)
	}

	return string(body), nil
}
