package services

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageTitle returns the text of the document's first <title> element.
//
// The boolean is false when the document has no title element or cannot be parsed.
func PageTitle(doc []byte) (string, bool) {
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return "", false
	}

	sel := parsed.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}
