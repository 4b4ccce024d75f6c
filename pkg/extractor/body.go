package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Body renders the inner HTML of the first node in s with every <br>
// replaced by "\n". Other markup and entities are kept as rendered.
func Body(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}

	var b strings.Builder
	for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
		renderNode(&b, c)
	}
	return b.String()
}

// textEscaper escapes text nodes the way the site's own markup does.
// html.Render would also turn quotes into &#34; and &#39;.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\u00a0", "&nbsp;",
)

func renderNode(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Br {
		b.WriteByte('\n')
		return
	}
	if n.Type == html.TextNode {
		textEscaper.WriteString(b, n.Data)
		return
	}
	if n.Type != html.ElementNode || n.FirstChild == nil {
		// html.Render only fails on write errors, which strings.Builder never returns
		_ = html.Render(b, n)
		return
	}

	// Render the element shell around our own child rendering so nested
	// <br> tags are converted as well.
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Data)
	b.WriteByte('>')
}
