package loader

import (
	"regexp"
	"strings"
)

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, без служебных символов, ё→е
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s) // NBSP/NNBSP
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey ищет реальный ключ записи по желаемому имени.
// Варианты через "|": "Наименование|Номенклатура".
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	// составные заголовки: "сальдо на конец периода количество" содержит "количество"
	nWant := normHeaderKey(alts[0])
	nWantAll := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			nWantAll = append(nWantAll, n)
		}
	}

	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		if nk == "" {
			continue
		}
		for _, n := range nWantAll {
			if nk == n {
				return k
			}
		}
		score := 0
		for _, n := range nWantAll {
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				score = max(score, len(n))
			}
		}
		if strings.Contains(nWant, "колич") && strings.Contains(nk, "колич") {
			score += 100
		}
		if strings.Contains(nWant, "наимен") && strings.Contains(nk, "наимен") {
			score += 100
		}
		// при равном счёте берём лексикографически меньший ключ, чтобы не зависеть от обхода map
		if score > bestScore || (score == bestScore && score > 0 && k < bestKey) {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// lookup: значение колонки с точным (после нормализации) именем.
func lookup(rec map[string]string, name string) (string, bool) {
	if v, ok := rec[name]; ok {
		return strings.TrimSpace(v), true
	}
	n := normHeaderKey(name)
	for k, v := range rec {
		if normHeaderKey(k) == n {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// повтор шапки внутри выгрузки 1С
func looksLikeHeaderMap(m map[string]string) bool {
	cnt := 0
	for _, v := range m {
		s := strings.ToLower(strings.TrimSpace(v))
		if strings.Contains(s, "наимен") || strings.Contains(s, "номенкл") || strings.Contains(s, "артикул") ||
			strings.Contains(s, "колич") || strings.Contains(s, "итого") || s == "цена" {
			cnt++
		}
	}
	return cnt >= 2
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1.0", "true", "yes", "y", "on", "да":
		return true
	case "0", "0.0", "false", "no", "n", "off", "нет":
		return false
	default:
		return def
	}
}
