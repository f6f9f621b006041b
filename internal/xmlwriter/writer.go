// =============================================================================
// Sheet Generator - XML Writer Module
// =============================================================================
//
// This module holds the low-level pieces of the SpreadsheetML encoding that do
// not depend on the document model: character escaping, the fixed workbook
// header, the closing tag and the two style identifiers every generated
// document declares.
//
// DOCUMENT SHAPE:
//
//   <?xml version="1.0"?>
//   <?mso-application progid="Excel.Sheet"?>
//   <Workbook ...namespaces...>
//    <Styles>
//     <Style ss:ID="Default" ss:Name="Normal"> ... </Style>
//     <Style ss:ID="Heading"> <Font ss:Bold="1"/> </Style>
//    </Styles>
//   <Worksheet ss:Name="...">          <!-- written by internal/workbook -->
//   ...
//   </Workbook>
//
// =============================================================================

package xmlwriter

import (
	"strings"
)

// =============================================================================
// STYLE IDENTIFIERS
// =============================================================================

const (
	// StyleHeading is applied to every cell of a heading row.
	StyleHeading = "Heading"

	// StyleDefault is applied to every cell of a data row.
	StyleDefault = "Default"
)

// =============================================================================
// WORKBOOK FRAME
// =============================================================================

// Header is the fixed prologue written before the first worksheet. It ends
// after the </Styles> element; callers append a newline before the worksheets.
const Header = `<?xml version="1.0"?>
<?mso-application progid="Excel.Sheet"?>
<Workbook xmlns="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:o="urn:schemas-microsoft-com:office:office"
 xmlns:x="urn:schemas-microsoft-com:office:excel"
 xmlns:ss="urn:schemas-microsoft-com:office:spreadsheet"
 xmlns:html="http://www.w3.org/TR/REC-html40">
 <Styles>
  <Style ss:ID="Default" ss:Name="Normal">
   <Alignment ss:Vertical="Bottom"/>
   <Borders/>
   <Font ss:FontName="Calibri" x:Family="Swiss" ss:Size="11" ss:Color="#000000"/>
   <Interior/>
   <NumberFormat/>
   <Protection/>
  </Style>
  <Style ss:ID="Heading">
   <Font ss:FontName="Calibri" x:Family="Swiss" ss:Size="11" ss:Color="#000000" ss:Bold="1"/>
  </Style>
 </Styles>`

// Footer closes the workbook element.
const Footer = "</Workbook>"

// =============================================================================
// ESCAPING
// =============================================================================

// Escape replaces the five XML-significant characters with their predefined
// entities. All other bytes, including multi-byte UTF-8 sequences, are copied
// unchanged.
//
// Escaping is applied exactly once, at the point a value is written into
// markup; values held by the document model are always unescaped.
func Escape(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
