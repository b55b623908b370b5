package service

import (
	"sort"

	"github.com/antzucaro/matchr"
)

// индекс ключей конкурентов для подсказок по несопоставленным позициям
type Index struct {
	inv map[string]map[string]struct{} // trigram -> set(key)
}

func buildIndex(keys []string) *Index {
	idx := &Index{inv: make(map[string]map[string]struct{})}
	for _, k := range keys {
		if k == "" {
			continue
		}
		for g := range trigramSet(k) {
			bucket, ok := idx.inv[g]
			if !ok {
				bucket = make(map[string]struct{})
				idx.inv[g] = bucket
			}
			bucket[k] = struct{}{}
		}
	}
	return idx
}

func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	p := " " + s + " "
	r := []rune(p)
	if len(r) < 3 {
		m[p] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

func (idx *Index) candidates(key string) []string {
	if key == "" {
		return nil
	}
	seen := make(map[string]struct{})
	for g := range trigramSet(key) {
		for k := range idx.inv[g] {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out) // для детерминированного порядка
	return out
}

// nearest: ближайший ключ по Jaro-Winkler не ниже threshold.
func (idx *Index) nearest(key string, threshold float64) (string, float64, bool) {
	best, bestScore := "", -1.0
	for _, cand := range idx.candidates(key) {
		if cand == key {
			continue
		}
		if s := matchr.JaroWinkler(key, cand, false); s > bestScore {
			best, bestScore = cand, s
		}
	}
	if best == "" || bestScore < threshold {
		return "", 0, false
	}
	return best, bestScore, true
}
