package pipeline

import (
	"regexp"
	"strings"
)

type DetectResult struct {
	IsPriceList bool
	Score       float64
	Reason      string
}

var detectKeywords = []string{"прайс", "price", "номенклат", "наличи", "ассортимент", "offer", "предложен", "спецификац", "stock"}

var packagingPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:г|гр|g|gr|кг|kg|мл|ml)\s*[*xх×]\s*\d+`)

// DetectPriceList scores whether a message carries product descriptions
// worth parsing. Packaging notations in the body weigh most; keywords and
// tabular attachments add to the score.
func DetectPriceList(subject, text, html string, attachmentNames []string) DetectResult {
	subject = strings.ToLower(subject)
	text = strings.ToLower(text)
	html = strings.ToLower(html)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(subject, kw) {
			score += 0.2
		}
		if strings.Contains(text, kw) || strings.Contains(html, kw) {
			score += 0.1
		}
	}

	hits := countPackagingPatterns(text + "\n" + html)
	if hits >= 2 {
		score += 0.5
	} else if hits == 1 {
		score += 0.3
	}

	for _, name := range attachmentNames {
		ln := strings.ToLower(name)
		if strings.HasSuffix(ln, ".xlsx") || strings.HasSuffix(ln, ".pdf") {
			score += 0.25
			break
		}
	}

	if strings.Contains(html, "<table") {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}

	isPriceList := score >= 0.45
	reason := "rules_negative"
	if isPriceList {
		reason = "rules_positive"
	}

	return DetectResult{IsPriceList: isPriceList, Score: score, Reason: reason}
}

func countPackagingPatterns(text string) int {
	return len(packagingPattern.FindAllStringIndex(text, -1))
}
