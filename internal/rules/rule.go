package rules

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"skuqty/internal"
	"skuqty/internal/util"
)

var (
	errNoWeight      = errors.New("weight is missing")
	errNoNumbers     = errors.New("not enough quantities")
	errTaggedOutside = errors.New("tagged count outside match")
)

// Triple is what a rule extracts from one description.
type Triple struct {
	Weight     float64
	WeightUnit internal.WeightUnit
	Pieces     int
	Packs      int
}

type Match struct {
	RuleID   string
	Fragment string
	Triple
}

// Groups gives an extractor access to the captures of one regexp match.
type Groups struct {
	text  string
	names []string
	loc   []int
}

func (g Groups) Text() string { return g.text }

func (g Groups) Get(name string) string {
	for i, n := range g.names {
		if n != name || 2*i+1 >= len(g.loc) || g.loc[2*i] < 0 {
			continue
		}
		return g.text[g.loc[2*i]:g.loc[2*i+1]]
	}
	return ""
}

func (g Groups) fragment() string {
	if len(g.loc) < 2 || g.loc[0] < 0 {
		return ""
	}
	return strings.TrimSpace(g.text[g.loc[0]:g.loc[1]])
}

type Extractor func(g Groups) (Triple, error)

type Rule struct {
	ID      string
	Pattern *regexp.Regexp
	Extract Extractor
}

// Apply runs one rule. Any extractor failure is reported as no match so the
// cascade can move on.
func (r Rule) Apply(text string) (Match, bool) {
	if r.Pattern == nil || r.Extract == nil {
		return Match{}, false
	}
	loc := r.Pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	g := Groups{text: text, names: r.Pattern.SubexpNames(), loc: loc}
	triple, err := safeExtract(r.Extract, g)
	if err != nil {
		return Match{}, false
	}
	if err := triple.validate(); err != nil {
		return Match{}, false
	}
	return Match{RuleID: r.ID, Fragment: g.fragment(), Triple: triple}, true
}

func safeExtract(fn Extractor, g Groups) (t Triple, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("extractor panic: %v", rec)
		}
	}()
	return fn(g)
}

func (t Triple) validate() error {
	if t.Weight <= 0 || math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) {
		return errNoWeight
	}
	if t.Pieces < 1 || t.Packs < 1 {
		return errNoNumbers
	}
	if t.WeightUnit != internal.UnitGram && t.WeightUnit != internal.UnitMilliliter {
		return fmt.Errorf("unknown weight unit %q", t.WeightUnit)
	}
	return nil
}

// weightFrom normalises a weight capture and its unit into grams or
// millilitres. An empty unit means grams.
func weightFrom(raw, unit string) (float64, internal.WeightUnit, error) {
	v, err := util.NormalizeNumber(raw)
	if err != nil {
		return 0, internal.UnitNone, err
	}
	switch strings.ToLower(strings.TrimSuffix(unit, ".")) {
	case "kg", "кг":
		return round3(v * 1000), internal.UnitGram, nil
	case "ml", "мл":
		return round3(v), internal.UnitMilliliter, nil
	default:
		return round3(v), internal.UnitGram, nil
	}
}

func countFrom(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	return util.NormalizeCount(raw)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// named maps the w/u/p/c capture groups of a pattern onto a Triple. Missing
// p or c groups default to one.
func named(g Groups) (Triple, error) {
	w := g.Get("w")
	if w == "" {
		return Triple{}, errNoWeight
	}
	weight, unit, err := weightFrom(w, g.Get("u"))
	if err != nil {
		return Triple{}, err
	}
	pieces, err := countFrom(g.Get("p"))
	if err != nil {
		return Triple{}, err
	}
	packs, err := countFrom(g.Get("c"))
	if err != nil {
		return Triple{}, err
	}
	return Triple{Weight: weight, WeightUnit: unit, Pieces: pieces, Packs: packs}, nil
}
