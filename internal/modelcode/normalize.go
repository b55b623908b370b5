package modelcode

import "strings"

// NormalizeForMatching: ключ для группировки: верхний регистр, только [A-Z0-9],
// без ведущего "DL" (если в исходной строке нет "DLSC").
//
// "EC 9865 M" → "EC9865M", "ECAM 22.110.B" → "ECAM22110B", "DL EC885.BG" → "EC885BG".
func NormalizeForMatching(raw string) string {
	if raw == "" {
		return ""
	}
	up := strings.ToUpper(raw)
	// проверяем по исходной строке, а не по уже очищенной
	keepDL := strings.Contains(up, "DLSC")

	var b strings.Builder
	b.Grow(len(up))
	for _, r := range up {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if !keepDL {
		for strings.HasPrefix(out, "DL") {
			out = out[2:]
		}
	}
	return out
}
