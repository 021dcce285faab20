package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the first non-trivial match wins.
// Job boards commonly wrap the posting in one of these containers.
var contentSelectors = []string{
	"main",
	"article",
	"[class*='job-description']",
	"[class*='jobDescription']",
	"[id*='job-description']",
	"body",
}

// noiseSelectors are stripped before text extraction.
var noiseSelectors = []string{
	"script",
	"style",
	"noscript",
	"nav",
	"header",
	"footer",
	"iframe",
	"form",
}

// minContentLength guards against picking an empty container over body.
const minContentLength = 80

var whitespaceRe = regexp.MustCompile(`[ \t]+`)
var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// ExtractMainText parses HTML and returns the posting's main text, with
// noise elements removed and whitespace normalized. Block elements are
// separated by newlines so importance detection can reason per line.
func ExtractMainText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	for _, sel := range contentSelectors {
		selection := doc.Find(sel).First()
		if selection.Length() == 0 {
			continue
		}
		text := blockText(selection)
		if len(text) >= minContentLength || sel == "body" {
			return text, nil
		}
	}

	return "", nil
}

// blockText renders a selection to text, inserting line breaks between
// block-level children so list items and paragraphs stay on their own
// lines.
func blockText(selection *goquery.Selection) string {
	var sb strings.Builder
	blocks := selection.Find("p, li, h1, h2, h3, h4, h5, h6, div, td, br")
	if blocks.Length() == 0 {
		sb.WriteString(selection.Text())
	} else {
		blocks.Each(func(_ int, s *goquery.Selection) {
			// Only take leaf-ish blocks to avoid duplicating nested text.
			if s.Children().Filter("p, li, div").Length() > 0 {
				return
			}
			line := strings.TrimSpace(s.Text())
			if line != "" {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		})
	}

	text := whitespaceRe.ReplaceAllString(sb.String(), " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
