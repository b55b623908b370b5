package modelcode

import "regexp"

// минимальная длина базы после среза суффикса цвета
const minBaseLen = 4

// 1–2 буквы в конце: цвет/вариант: EC685R → EC685, ECAM22114BG → ECAM22114
var reVariantSuffix = regexp.MustCompile(`[A-Z]{1,2}$`)

// Match сравнивает два кода модели. strict: только равенство нормализованных форм;
// иначе допускается разница в суффиксе цвета.
func Match(a, b string, strict bool) bool {
	if a == "" || b == "" {
		return false
	}
	na, nb := NormalizeForMatching(a), NormalizeForMatching(b)
	if na == nb {
		return true
	}
	if strict {
		return false
	}
	ba, bb := Base(na), Base(nb)
	return ba == bb && len(ba) >= minBaseLen
}

// Base срезает суффикс варианта с уже нормализованного кода.
func Base(normalized string) string {
	return reVariantSuffix.ReplaceAllString(normalized, "")
}
