package rules

import (
	"regexp"
	"strings"

	"skuqty/internal/util"
)

const (
	numFrag  = `\d+(?:[.,]\d+)?`
	grpFrag  = `\d{1,3}(?:[ \x{00a0}]\d{3})+(?:[.,]\d+)?`
	wnumFrag = `(?:` + grpFrag + `|` + numFrag + `)`
	intFrag  = `\d+`
	unitFrag = `(?:грамм|грам|гр|г|мл|кг|gram|gr|g|ml|kg)`
	pcsFrag  = `(?:штук|шт|pcs|pc|adet|adt|ad)\.?`
	boxFrag  = `(?:boxes|box|jars|jar|trays|tray|vases|vase|bags|bag|блоков|блока|блок|бл|банки|банка|бан|уп|кт|kt)\.?`
	sepFrag  = `\s*[*xх×]\s*`
)

var fragments = strings.NewReplacer(
	"{WNUM}", wnumFrag,
	"{GRP}", grpFrag,
	"{NUM}", numFrag,
	"{INT}", intFrag,
	"{UNIT}", unitFrag,
	"{PCS}", pcsFrag,
	"{BOX}", boxFrag,
	"{SEP}", sepFrag,
)

// compile expands the shared fragments and makes the pattern case
// insensitive. Captures: w weight, u unit, p pieces, c packs. {WNUM} also
// takes space-grouped thousands and is only used right before a unit.
func compile(tpl string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + fragments.Replace(tpl))
}

func namedRule(id, tpl string) Rule {
	return Rule{ID: id, Pattern: compile(tpl), Extract: named}
}

// pairRule reads two quantities and gives up when another count tagged with
// a piece or container keyword sits outside the match, leaving the line to
// keyword adjacency.
func pairRule(id, tpl string) Rule {
	return Rule{ID: id, Pattern: compile(tpl), Extract: func(g Groups) (Triple, error) {
		if hasTaggedCountOutside(g) {
			return Triple{}, errTaggedOutside
		}
		return named(g)
	}}
}

type Library struct {
	rules []Rule
}

func New(rules ...Rule) *Library {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return &Library{rules: out}
}

var defaultLibrary = New(defaultRules()...)

// Default is the consolidated cascade: brand formats first, then the
// generic three-number layouts, then two-number layouts, then keyword
// adjacency as the last resort.
func Default() *Library {
	return defaultLibrary
}

func (l *Library) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

func (l *Library) Len() int { return len(l.rules) }

// TryAll returns the extraction of the first rule that matches. No match is
// a normal outcome, not an error.
func (l *Library) TryAll(text string) (Match, bool) {
	norm := util.NormalizeText(text)
	if norm == "" || !util.HasDigit(norm) {
		return Match{}, false
	}
	for _, r := range l.rules {
		if m, ok := r.Apply(norm); ok {
			return m, true
		}
	}
	return Match{}, false
}

func defaultRules() []Rule {
	return []Rule{
		// 6KT24AD30G, 4KT*12ADT*40G, 6KT 24AD 42 CIS2
		namedRule("kt-ad-weight", `(?P<c>{INT})\s*(?:kt|кт)\s*\*?\s*(?P<p>{INT})\s*(?:adt|ad)\s*\*?\s*(?P<w>{NUM})\s*(?P<u>gr|g)?`),
		// 25G 24 ADT 4KT
		namedRule("weight-adt-kt", `(?P<w>{WNUM})\s*(?P<u>gr|g)\s*(?P<p>{INT})\s*(?:adt|ad)\s*(?P<c>{INT})\s*(?:kt|кт)`),
		// 24PKT117G, 12SP 184G(CS), 24PK 90G
		namedRule("pk-weight", `(?P<p>{INT})\s*(?:pkt|pk|sp)\s*(?P<w>{WNUM})\s*(?P<u>gr|g)`),
		// BIS24AD 63G
		namedRule("ad-weight", `(?P<p>{INT})\s*(?:adt|ad)\s*(?P<w>{WNUM})\s*(?P<u>gr|g)`),
		// 16g24pcs12boxes
		namedRule("glued-weight-pieces-packs", `(?P<w>{WNUM})(?P<u>{UNIT})(?P<p>{INT})(?:{PCS})?(?P<c>{INT}){BOX}`),
		// 16g*24pcs*12boxes, 3,5 GX24X8, 40 грамХ12штХ2бл, 16гр.х100х6
		namedRule("weight-pieces-packs", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?{SEP}(?P<p>{INT})\s*(?:{PCS})?{SEP}(?P<c>{INT})`),
		// 20гр 6блХ 24шт
		namedRule("weight-packs-pieces", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?\s*(?P<c>{INT})\s*{BOX}{SEP}(?P<p>{INT})\s*{PCS}`),
		// 12box 24pcs 33g
		namedRule("packs-pieces-weight", `(?P<c>{INT})\s*{BOX}\s*(?P<p>{INT})\s*{PCS}\s*(?P<w>{WNUM})\s*(?P<u>{UNIT})`),
		// 36гр 12шт Х12бл, 8 г 60 шт Х 6, 30 гр. 80штХ6 бан
		namedRule("weight-pieces-kw-packs", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?\s*(?P<p>{INT})\s*{PCS}{SEP}(?P<c>{INT})`),
		// 12,5 гр 20 Х 30 бл, 25 гр 24Х6бл, 15 гр 48Х 12
		namedRule("weight-space-pieces-packs", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?\s+(?P<p>{INT}){SEP}(?P<c>{INT})`),
		// 100шт 500гр Х12
		namedRule("pieces-weight-packs", `(?P<p>{INT})\s*{PCS}\s*(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?{SEP}(?P<c>{INT})`),
		// 10X48X28G, 12*24*18gr
		namedRule("packs-pieces-weight-sep", `(?P<c>{INT})\s*(?:{BOX})?{SEP}(?P<p>{INT})\s*(?:{PCS})?{SEP}(?P<w>{WNUM})\s*(?P<u>{UNIT})`),
		// 15g 12 24
		namedRule("weight-bare-pieces-packs", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\s+(?P<p>{INT})\s+(?P<c>{INT})(?:\s|$)`),
		// 12шт*70гр
		pairRule("pieces-weight", `(?P<p>{INT})\s*{PCS}{SEP}(?P<w>{WNUM})\s*(?P<u>{UNIT})`),
		// 290,25г*12шт №573, 660 гр.*6шт., 1000гр. X 6шт
		pairRule("weight-pieces", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?{SEP}(?P<p>{INT})\s*{PCS}`),
		// 142 г Х 24 бл, 1,35 кг * 9 бл, 500Gx 8Boxes
		pairRule("weight-packs", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?{SEP}(?P<c>{INT})\s*{BOX}`),
		// 300 гр 12 шт
		pairRule("weight-space-pieces", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?\s+(?P<p>{INT})\s*{PCS}`),
		// 900grx6, 1кг Х8, 1 000 гр x 6
		pairRule("weight-multiplier", `(?P<w>{WNUM})\s*(?P<u>{UNIT})\.?{SEP}(?P<c>{INT})`),
		adjacencyRule(),
	}
}
