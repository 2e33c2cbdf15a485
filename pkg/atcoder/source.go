package atcoder

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractSource pulls the literal submitted source out of a submission
// page body. The second return value is false when the page holds no
// usable source: the code element is missing or its text is empty. That
// usually means the page markup drifted, so callers skip the submission
// instead of archiving an empty capture.
func ExtractSource(pageBody string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageBody))
	if err != nil {
		return "", false
	}

	sel := doc.Find(SourceSelector)
	if sel.Length() == 0 {
		return "", false
	}

	code := sel.Text()
	if code == "" {
		return "", false
	}
	return code, true
}
