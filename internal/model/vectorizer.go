package model

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"skuqty/internal/util"
)

var tokenPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?(?:\s*(?:грамм|грам|гр|г|мл|кг|gram|gr|g|ml|kg|штук|шт|pcs|pc|adet|adt|ad|kt|кт|pkt|pk|sp|boxes|box|jars|jar|trays|tray|vases|vase|bags|bag|блок|бл|банки|банка|лотки|вази|пакет|уп))?|\p{L}{2,}`)

var lower = cases.Lower(language.Und)

// tokenize splits a description into words and number+unit tokens. Numbers
// are rewritten with a dot separator so "3,5g" and "3.5g" share a feature.
func tokenize(text string) []string {
	s := lower.String(util.NormalizeText(text))
	raw := tokenPattern.FindAllString(s, -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok[0] >= '0' && tok[0] <= '9' {
			tok = strings.ReplaceAll(strings.ReplaceAll(tok, ",", "."), " ", "")
		}
		out = append(out, tok)
	}
	return out
}

func ngrams(tokens []string, minN, maxN int) []string {
	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

type SparseVector struct {
	Index []int
	Value []float64
}

// Has reports whether feature f is non-zero.
func (v SparseVector) Has(f int) bool {
	i := sort.SearchInts(v.Index, f)
	return i < len(v.Index) && v.Index[i] == f
}

// Vectorizer is a TF-IDF bag of token n-grams.
type Vectorizer struct {
	MinN        int       `json:"minN"`
	MaxN        int       `json:"maxN"`
	MaxFeatures int       `json:"maxFeatures"`
	Terms       []string  `json:"terms"`
	IDF         []float64 `json:"idf"`

	index map[string]int
}

func NewVectorizer(minN, maxN, maxFeatures int) *Vectorizer {
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}
	return &Vectorizer{MinN: minN, MaxN: maxN, MaxFeatures: maxFeatures}
}

func (v *Vectorizer) Fit(docs []string) {
	df := map[string]int{}
	for _, doc := range docs {
		seen := map[string]struct{}{}
		for _, term := range ngrams(tokenize(doc), v.MinN, v.MaxN) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Terms = terms
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.prepare()
}

func (v *Vectorizer) Len() int { return len(v.Terms) }

// prepare rebuilds the term index. It must run before the vectorizer is
// shared between goroutines.
func (v *Vectorizer) prepare() {
	idx := make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		idx[term] = i
	}
	v.index = idx
}

// Transform returns the L2-normalised TF-IDF vector of text. Unknown terms
// are ignored.
func (v *Vectorizer) Transform(text string) SparseVector {
	idx := v.index
	tf := map[int]float64{}
	for _, term := range ngrams(tokenize(text), v.MinN, v.MaxN) {
		if i, ok := idx[term]; ok {
			tf[i]++
		}
	}

	out := SparseVector{Index: make([]int, 0, len(tf)), Value: make([]float64, 0, len(tf))}
	for i := range tf {
		out.Index = append(out.Index, i)
	}
	sort.Ints(out.Index)

	norm := 0.0
	for _, i := range out.Index {
		w := tf[i] * v.IDF[i]
		out.Value = append(out.Value, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range out.Value {
			out.Value[k] /= norm
		}
	}
	return out
}
