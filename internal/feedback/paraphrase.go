package feedback

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"skuqty/internal"
	"skuqty/internal/container"
	"skuqty/internal/util"
)

var (
	quantityPattern = regexp.MustCompile(`(?i)(?:№|#)\s*\d+|\d+(?:[.,]\d+)?\s*(?:грамм|грам|гр|г|мл|кг|gram|gr|g|ml|kg|штук|шт|pcs|pc|adet|adt|ad|pkt|pk|sp|boxes|box|jars|jar|trays|tray|vases|vase|bags|bag|блоков|блок|бл|банки|банка|бан|уп|кт|kt)?\.?`)
	strayPattern    = regexp.MustCompile(`(?:^|\s)[*xXхХ×/]+(?:\s|$)|[*×/]+`)
)

var templates = []string{
	"{D} {W}{u}x{P}pcsx{C}{L}",
	"{D} {W}{u}*{P}pcs*{C}{L}",
	"{D} {WC} {uc} {P}шт Х {C} {Y}",
	"{D} {C}{L} {P}pcs {W}{u}",
	"{D} {WC}{uc}*{P}шт*{C}{Y}",
	"{D} {W}{u} x {P} pcs x {C} {L}",
	"{D} {W} {uc} {P} шт x {C} {Y}",
	"{D} {W}{u}×{P}pcs×{C}{L}",
	"{D} {P}шт {WC}{uc} Х{C} {Y}",
	"{D} {W}{U}X{P}PCSX{C}{LU}",
	"{D} {WC}{uc}.Х{P}штХ{C}{Y}",
	"{D} {W}{u} {P}pcs {C}{L}",
}

// descriptor is the description with every quantity token removed, i.e. the
// brand and product words the model should associate with the labels.
func descriptor(text string) string {
	s := util.StripQuotes(util.NormalizeText(text))
	s = quantityPattern.ReplaceAllString(s, " ")
	s = strayPattern.ReplaceAllString(s, " ")
	return util.NormalizeSpaces(s)
}

// Paraphrase renders the rule-tier labels of text in other observed layouts.
// round selects a different slice of layouts so successive retraining passes
// add new evidence. At most n variants are returned.
func Paraphrase(text string, q internal.ParsedQuantity, n, round int) []internal.TrainingExample {
	if n <= 0 || !q.Parsed {
		return nil
	}
	desc := descriptor(text)
	if cycle := (len(templates) + n - 1) / n; round >= cycle && round/cycle%2 == 1 {
		desc = strings.ToUpper(desc)
	}

	latin, cyr := containerWords(q.ContainerType)
	weight := strconv.FormatFloat(q.Weight, 'f', -1, 64)
	unit, unitCyr := "g", "гр"
	if q.WeightUnit == internal.UnitMilliliter {
		unit, unitCyr = "ml", "мл"
	}
	repl := strings.NewReplacer(
		"{D}", desc,
		"{WC}", strings.Replace(weight, ".", ",", 1),
		"{W}", weight,
		"{uc}", unitCyr,
		"{u}", unit,
		"{U}", strings.ToUpper(unit),
		"{P}", strconv.Itoa(q.PiecesPerPack),
		"{C}", strconv.Itoa(q.PacksPerCase),
		"{LU}", strings.ToUpper(latin),
		"{L}", latin,
		"{Y}", cyr,
	)

	seen := map[string]struct{}{util.NormalizeText(text): {}}
	out := make([]internal.TrainingExample, 0, n)
	start := (round * n) % len(templates)
	for i := 0; i < len(templates) && len(out) < n; i++ {
		variant := util.NormalizeSpaces(repl.Replace(templates[(start+i)%len(templates)]))
		if _, ok := seen[variant]; ok {
			continue
		}
		seen[variant] = struct{}{}
		out = append(out, internal.ExampleFromResult(variant, q))
	}
	return out
}

// containerWords picks a Latin plural and a Cyrillic keyword for ct from the
// classifier's table, so every variant classifies back to the same type.
func containerWords(ct internal.ContainerType) (string, string) {
	keywords := container.Keywords(ct)
	if len(keywords) == 0 {
		keywords = container.Keywords(internal.ContainerBox)
	}
	latin := keywords[0]
	if len(keywords) > 1 && isLatin(keywords[1]) {
		latin = keywords[1]
	}
	cyr := latin
	for _, kw := range keywords {
		if isCyrillic(kw) {
			cyr = kw
			break
		}
	}
	return latin, cyr
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
