package pipeline

import (
	"sort"

	"skuqty/internal"
)

type Stats struct {
	Total       int
	Parsed      int
	Failed      int
	SuccessRate float64
	ByMethod    map[internal.ParseMethod]int
	ByContainer map[internal.ContainerType]int
	ByRule      map[string]int
}

func Summarize(results []internal.ParsedQuantity) Stats {
	s := Stats{
		Total:       len(results),
		ByMethod:    map[internal.ParseMethod]int{},
		ByContainer: map[internal.ContainerType]int{},
		ByRule:      map[string]int{},
	}
	for _, r := range results {
		s.ByMethod[r.Method]++
		if !r.Parsed {
			s.Failed++
			continue
		}
		s.Parsed++
		s.ByContainer[r.ContainerType]++
		if r.MatchedRuleID != "" {
			s.ByRule[r.MatchedRuleID]++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Parsed) / float64(s.Total)
	}
	return s
}

// Counts flattens the summary into the shape stored with a run.
func (s Stats) Counts() map[string]int {
	out := map[string]int{
		"total":  s.Total,
		"parsed": s.Parsed,
		"failed": s.Failed,
	}
	for k, v := range s.ByMethod {
		out["method."+string(k)] = v
	}
	for k, v := range s.ByContainer {
		out["container."+string(k)] = v
	}
	for k, v := range s.ByRule {
		out["rule."+k] = v
	}
	return out
}

type statLine struct {
	Group string
	Key   string
	Count int
}

// lines orders the breakdown for display: groups in fixed order, keys by
// descending count then name.
func (s Stats) lines() []statLine {
	var out []statLine
	add := func(group string, m map[string]int) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if m[keys[i]] != m[keys[j]] {
				return m[keys[i]] > m[keys[j]]
			}
			return keys[i] < keys[j]
		})
		for _, k := range keys {
			out = append(out, statLine{Group: group, Key: k, Count: m[k]})
		}
	}
	methods := map[string]int{}
	for k, v := range s.ByMethod {
		methods[string(k)] = v
	}
	containers := map[string]int{}
	for k, v := range s.ByContainer {
		containers[string(k)] = v
	}
	add("method", methods)
	add("container", containers)
	add("rule", s.ByRule)
	return out
}
