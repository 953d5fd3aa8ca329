package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	kindBare tokenKind = iota
	kindWeight
	kindPieces
	kindPacks
)

type numberToken struct {
	kind  tokenKind
	value string
	unit  string
	start int
	end   int
}

// Grouped thousands count as one number only when a unit follows, so bare
// counts like "15g 12 240" stay separate.
var numberTokenPattern = compile(`(?P<g>{GRP})\s*(?P<gu>{UNIT})\.?|(?P<n>{NUM})\s*(?:(?P<u>{UNIT})\.?|(?P<p>{PCS})|(?P<c>{BOX}))?`)

// adjacencyRule resolves quantities from the keyword next to each number:
// a unit marks the weight, a piece keyword marks pieces per pack, a
// container keyword marks packs per case. Bare numbers after the weight
// fill the remaining slots in reading order.
func adjacencyRule() Rule {
	return Rule{ID: "keyword-adjacency", Pattern: compile(`{NUM}\s*{UNIT}`), Extract: extractByAdjacency}
}

func extractByAdjacency(g Groups) (Triple, error) {
	tokens := scanNumberTokens(g.Text())

	weightIdx := -1
	for i, tok := range tokens {
		if tok.kind == kindWeight {
			weightIdx = i
			break
		}
	}
	if weightIdx < 0 {
		return Triple{}, errNoWeight
	}

	var pieces, packs string
	for _, tok := range tokens {
		switch {
		case tok.kind == kindPieces && pieces == "":
			pieces = tok.value
		case tok.kind == kindPacks && packs == "":
			packs = tok.value
		}
	}
	if pieces == "" && packs == "" {
		return Triple{}, errNoNumbers
	}
	for _, tok := range tokens[weightIdx+1:] {
		if tok.kind != kindBare {
			continue
		}
		if pieces == "" {
			pieces = tok.value
		} else if packs == "" {
			packs = tok.value
		}
	}

	w := tokens[weightIdx]
	weight, unit, err := weightFrom(w.value, w.unit)
	if err != nil {
		return Triple{}, err
	}
	p, err := countFrom(pieces)
	if err != nil {
		return Triple{}, err
	}
	c, err := countFrom(packs)
	if err != nil {
		return Triple{}, err
	}
	return Triple{Weight: weight, WeightUnit: unit, Pieces: p, Packs: c}, nil
}

func scanNumberTokens(text string) []numberToken {
	names := numberTokenPattern.SubexpNames()
	var out []numberToken
	for _, loc := range numberTokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if isCatalogueNumber(text, loc[0]) {
			continue
		}
		g := Groups{text: text, names: names, loc: loc}
		tok := numberToken{value: g.Get("n"), start: loc[0], end: loc[1]}
		switch {
		case g.Get("g") != "":
			tok.kind = kindWeight
			tok.value = g.Get("g")
			tok.unit = g.Get("gu")
		case g.Get("u") != "":
			tok.kind = kindWeight
			tok.unit = g.Get("u")
		case g.Get("p") != "":
			tok.kind = kindPieces
		case g.Get("c") != "":
			tok.kind = kindPacks
		}
		out = append(out, tok)
	}
	return out
}

// hasTaggedCountOutside reports a piece or container count that lies
// outside the span a rule matched.
func hasTaggedCountOutside(g Groups) bool {
	if len(g.loc) < 2 || g.loc[0] < 0 {
		return false
	}
	for _, tok := range scanNumberTokens(g.Text()) {
		if tok.kind != kindPieces && tok.kind != kindPacks {
			continue
		}
		if tok.start >= g.loc[1] || tok.end <= g.loc[0] {
			return true
		}
	}
	return false
}

// isCatalogueNumber reports numbers written as article references (№573,
// #12) or glued to a word (CIS2), which never carry quantities.
func isCatalogueNumber(text string, start int) bool {
	prefix := strings.TrimRight(text[:start], " ")
	if prefix == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(prefix)
	if r == '№' || r == '#' {
		return true
	}
	if len(prefix) == start {
		return unicode.IsLetter(r) && !strings.ContainsRune("xXхХ", r)
	}
	return false
}
