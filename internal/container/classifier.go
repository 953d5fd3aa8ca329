package container

import (
	"regexp"
	"strings"

	"skuqty/internal"
)

const (
	KeywordConfidence = 1.0
	DefaultConfidence = 0.5
)

type keywordSet struct {
	Type     internal.ContainerType
	Keywords []string
}

// Order is precedence: the first set with a hit wins.
var keywordTable = []keywordSet{
	{Type: internal.ContainerTray, Keywords: []string{"tray", "trays", "лоток", "лотки", "лотке", "tepsi"}},
	{Type: internal.ContainerJar, Keywords: []string{"jar", "jars", "банка", "банки", "банці", "банок", "kavanoz"}},
	{Type: internal.ContainerBag, Keywords: []string{"bag", "bags", "пакет", "пакеты", "пакети", "poşet"}},
	{Type: internal.ContainerVase, Keywords: []string{"vase", "vases", "ваза", "вазы", "вази", "vazo"}},
	{Type: internal.ContainerBox, Keywords: []string{"box", "boxes", "бл", "блок", "кт", "kt", "коробк", "kutu", "koli"}},
}

// Short stems that also occur inside ordinary words (яблоко, продукт) only
// count when anchored: бл and блок at a word start, kt and кт right after a
// number as in 6KT24AD.
var anchoredKeywords = map[string]*regexp.Regexp{
	"бл":   regexp.MustCompile(`(?:^|[^\p{L}])бл(?:$|[^\p{L}]|[xх])`),
	"блок": regexp.MustCompile(`(?:^|[^\p{L}])блок`),
	"кт":   regexp.MustCompile(`\d\s*кт`),
	"kt":   regexp.MustCompile(`\d\s*kt`),
}

func contains(lower, kw string) bool {
	if re, ok := anchoredKeywords[kw]; ok {
		return re.MatchString(lower)
	}
	return strings.Contains(lower, kw)
}

// Classify maps keyword hits in text to a container type. Boxes dominate the
// catalogue, so a miss falls back to box at half confidence.
func Classify(text string) (internal.ContainerType, float64) {
	lower := strings.ToLower(text)
	for _, set := range keywordTable {
		for _, kw := range set.Keywords {
			if contains(lower, kw) {
				return set.Type, KeywordConfidence
			}
		}
	}
	return internal.ContainerBox, DefaultConfidence
}

// Keywords returns the surface forms recognised for a container type, most
// common first.
func Keywords(ct internal.ContainerType) []string {
	for _, set := range keywordTable {
		if set.Type == ct {
			out := make([]string, len(set.Keywords))
			copy(out, set.Keywords)
			return out
		}
	}
	return nil
}

func Types() []internal.ContainerType {
	out := make([]internal.ContainerType, 0, len(keywordTable))
	for _, set := range keywordTable {
		out = append(out, set.Type)
	}
	return out
}
