// Package modelcode извлекает коды моделей из наименований товаров и сравнивает их.
//
// Все функции пакета чистые: без состояния, без I/O, безопасны из любых горутин.
package modelcode

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Code: извлечённый код модели.
type Code struct {
	Raw        string `json:"raw"`        // как извлечён (точки сохраняются)
	Normalized string `json:"normalized"` // только [A-Z0-9], ключ группировки
}

type rule struct {
	tag string
	re  *regexp.Regexp
}

// Порядок важен: первое совпадение выигрывает.
// Шаблоны применяются к строке в верхнем регистре.
var rules = []rule{
	// ECAM22.114.B, ECAM350.55.B
	{"ecam", regexp.MustCompile(`ECAM\s*\d+\.?\d*\.?\d*\.?[A-Z0-9]*`)},
	// EC685.R, EC9865M, "EC 9865 M"
	{"ec", regexp.MustCompile(`EC\s*\d+(?:\s[A-Z]\b|\.?[A-Z0-9]*)`)},
	{"esam", regexp.MustCompile(`ESAM\s*\d+`)},
	// ECI341.BK
	{"eci", regexp.MustCompile(`ECI\s*\d+\.?[A-Z0-9]+`)},
	// EXAM440.55.B
	{"exam", regexp.MustCompile(`EXAM\s*\d+\.?\d*\.?[A-Z0-9]*`)},
	// кофемолки: KG520.M, KG200
	{"kg", regexp.MustCompile(`KG\s*\d+\.?[A-Z0-9]*`)},
	// чайники: KBD2001, KBI2001.R
	{"kb", regexp.MustCompile(`KB[A-Z0-9]+\d+\.?[A-Z0-9]*`)},
	// тостеры: CTOV2103.AZ
	{"ct", regexp.MustCompile(`CT[A-Z0-9]+\d+\.?[A-Z0-9]*`)},
	// капельные: ICM17210
	{"icm", regexp.MustCompile(`ICM\s*\d+`)},
	// аксессуары: DLSC002, DLSC310 (префикс DL не срезается)
	{"dlsc", regexp.MustCompile(`DLSC\s*\d+`)},

	// Melitta
	{"aroma-zones", regexp.MustCompile(`AROMA\s*ZONES\s*\d+X\d+/\d+\s*[A-Z0-9]+`)},
	{"aromaboy", regexp.MustCompile(`AROMABOY\s*\d+`)},
	{"aromafresh", regexp.MustCompile(`AROMAFRESH\s*[A-Z0-9]+`)},
	{"f-dash", regexp.MustCompile(`F\d+-\d+[A-Z0-9]+`)},
	{"e", regexp.MustCompile(`E\d+`)},
	{"f", regexp.MustCompile(`F\d+`)},
}

// Rules возвращает теги правил в порядке приоритета.
func Rules() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.tag
	}
	return out
}

// Extract достаёт код модели из наименования. ok=false: кода нет (это не ошибка).
func Extract(name string) (string, bool) {
	c, _, ok := ExtractTagged(name)
	return c.Raw, ok
}

// ExtractTagged: как Extract, плюс тег сработавшего правила.
func ExtractTagged(name string) (Code, string, bool) {
	if strings.TrimSpace(name) == "" {
		return Code{}, "", false
	}
	text := prepare(name)
	for _, r := range rules {
		if m := r.re.FindString(text); m != "" {
			raw := normalizeRaw(m)
			return Code{Raw: raw, Normalized: NormalizeForMatching(raw)}, r.tag, true
		}
	}
	return Code{}, "", false
}

var (
	reSpaces   = regexp.MustCompile(`\s+`)
	reECSuffix = regexp.MustCompile(`EC(\d+)([A-Z])$`)
)

// normalizeRaw: "EC 9865 M" → "EC9865.M", DL-префикс срезается (кроме DLSC).
func normalizeRaw(m string) string {
	s := strings.ToUpper(reSpaces.ReplaceAllString(m, ""))
	s = reECSuffix.ReplaceAllString(s, "EC${1}.${2}")
	if !strings.HasPrefix(s, "DLSC") {
		s = strings.TrimPrefix(s, "DL")
	}
	return s
}

// prepare: NFKC (полноширинные цифры и т.п.), кириллические двойники в токенах
// с цифрами → латиница, верхний регистр.
func prepare(name string) string {
	s := norm.NFKC.String(name)
	fields := strings.Fields(s)
	for i, f := range fields {
		if strings.IndexFunc(f, unicode.IsDigit) >= 0 {
			fields[i] = foldCyrillic(f)
		}
	}
	return strings.ToUpper(strings.Join(fields, " "))
}

// Кириллица→латиница (визуальные двойники)
var lookalikes = map[rune]rune{
	'А': 'A', 'В': 'B', 'С': 'C', 'Е': 'E', 'Н': 'H', 'К': 'K', 'М': 'M', 'О': 'O', 'Р': 'P', 'Т': 'T', 'Х': 'X', 'У': 'Y',
	'а': 'a', 'в': 'b', 'с': 'c', 'е': 'e', 'к': 'k', 'м': 'm', 'о': 'o', 'р': 'p', 'т': 't', 'х': 'x',
}

func foldCyrillic(s string) string {
	return strings.Map(func(r rune) rune {
		if rr, ok := lookalikes[r]; ok {
			return rr
		}
		return r
	}, s)
}
