// SPDX-License-Identifier: MIT

package automaton_test

import (
	"bytes"
	"math/rand"
	"sort"

	"github.com/katalvlaran/lvmatch/automaton"
	"github.com/katalvlaran/lvmatch/pattern"
)

// classic is the textbook Aho-Corasick keyword set.
func classic() []pattern.Pattern {
	return []pattern.Pattern{
		pattern.New(1, "he"),
		pattern.New(2, "she"),
		pattern.New(3, "his"),
		pattern.New(4, "hers"),
	}
}

// naive finds every occurrence by direct comparison at each offset, ordered
// by End and then longest first.
func naive(ps []pattern.Pattern, input []byte) automaton.Matches {
	var ms automaton.Matches
	for i, p := range ps {
		for start := 0; start+len(p.Bytes) <= len(input); start++ {
			if bytes.Equal(input[start:start+len(p.Bytes)], p.Bytes) {
				ms = append(ms, automaton.Match{
					Pattern: p.ID,
					Index:   i,
					Start:   int64(start),
					End:     int64(start + len(p.Bytes)),
				})
			}
		}
	}
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].End != ms[j].End {
			return ms[i].End < ms[j].End
		}
		return ms[i].Len() > ms[j].Len()
	})
	return ms
}

// randomSet draws up to n distinct patterns of length 1..maxLen over alphabet.
func randomSet(r *rand.Rand, alphabet string, n, maxLen int) []pattern.Pattern {
	seen := make(map[string]bool, n)
	ps := make([]pattern.Pattern, 0, n)
	for len(ps) < n {
		b := make([]byte, 1+r.Intn(maxLen))
		for i := range b {
			b[i] = alphabet[r.Intn(len(alphabet))]
		}
		if seen[string(b)] {
			if len(seen) >= n*4 {
				break
			}
			continue
		}
		seen[string(b)] = true
		ps = append(ps, pattern.Pattern{ID: pattern.ID(len(ps) + 100), Bytes: b})
	}
	return ps
}

func randomInput(r *rand.Rand, alphabet string, maxLen int) []byte {
	b := make([]byte, r.Intn(maxLen+1))
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return b
}
