package modelcode

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ExtractWithConfidence возвращает код и уверенность 0..1.
// База 0.5; до +0.3 за раннюю позицию кода в наименовании; +0.2 если указан бренд DeLonghi.
func ExtractWithConfidence(name string) (string, float64) {
	model, ok := Extract(name)
	if !ok {
		return "", 0
	}
	conf := 0.5

	up := strings.ToUpper(name)
	needle := strings.NewReplacer(".", "", " ", "").Replace(model)
	if i := strings.Index(up, needle); i >= 0 {
		pos := utf8.RuneCountInString(up[:i])
		conf += (1 - float64(pos)/float64(utf8.RuneCountInString(name))) * 0.3
	}
	if DeLonghi.In(name) {
		conf += 0.2
	}
	if conf > 1 {
		conf = 1
	}
	return model, conf
}

var reDigitLetter = regexp.MustCompile(`(\d)([A-Z])`)

// Variants: варианты написания кода: как есть, без точек, с пробелом между цифрой и буквой.
func Variants(raw string) []string {
	if raw == "" {
		return nil
	}
	out := []string{raw}
	add := func(v string) {
		for _, s := range out {
			if s == v {
				return
			}
		}
		out = append(out, v)
	}
	add(strings.ReplaceAll(raw, ".", ""))
	add(reDigitLetter.ReplaceAllString(raw, "$1 $2"))
	return out
}
