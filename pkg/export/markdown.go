package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/yzays8/filmr/pkg/review"
)

func writeMarkdown(w io.Writer, reviews []review.Review) error {
	md := markdown.NewMarkdown(w)
	md.H1("Filmarks Reviews")
	md.PlainText("")

	for _, r := range reviews {
		md.H2(fmt.Sprintf("%s (%d)", r.Title, r.Year))
		md.PlainText("")
		md.BulletList("Score: " + formatScore(r.Score))
		md.PlainText("")
		// two trailing spaces mark a markdown hard line break
		md.PlainText(strings.ReplaceAll(r.Body, "\n", "  \n"))
		md.PlainText("")
	}

	return md.Build()
}
