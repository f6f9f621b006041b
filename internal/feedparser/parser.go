// Package feedparser turns RSS and Atom documents into tables with one row
// per feed item: the published date, title, description and link.
package feedparser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"github.com/ginjaninja78/sheet-gen/internal/workbook"
)

// Headings are the labels of the heading row.
var Headings = []string{"Date", "Title", "Description", "Link"}

// ToTable parses feed text and returns one row per item, in document order.
// Missing item fields become empty cells. Dates are copied as written in the
// feed, without reformatting; an Atom entry with no published date falls
// back to its updated date.
//
// The text must be well-formed XML. JSON feeds are rejected.
func ToTable(text string, headings bool) (*workbook.Table, error) {
	if err := checkWellFormed(text); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if feed.FeedType != "rss" && feed.FeedType != "atom" {
		return nil, fmt.Errorf("parse feed: unsupported feed type %q", feed.FeedType)
	}

	table := workbook.NewTable()
	for _, item := range feed.Items {
		date := item.Published
		if date == "" && feed.FeedType == "atom" {
			date = item.Updated
		}
		table.AppendRow(
			textOrEmpty(date),
			textOrEmpty(item.Title),
			textOrEmpty(item.Description),
			textOrEmpty(item.Link),
		)
	}

	if headings {
		table.WithHeadings(Headings...)
	}

	return table, nil
}

// checkWellFormed reads every token of text with a strict decoder. gofeed
// recovers from errors such as a bare ampersand, so it cannot be relied on to
// reject them.
func checkWellFormed(text string) error {
	d := xml.NewDecoder(strings.NewReader(text))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	root := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			root = true
		}
	}
	if !root {
		return errors.New("no root element")
	}
	return nil
}

func textOrEmpty(s string) workbook.Cell {
	if s == "" {
		return workbook.Empty()
	}
	return workbook.Text(s)
}
