package modelcode

import "strings"

// Brand: поддерживаемые производители.
type Brand int

const (
	DeLonghi Brand = iota + 1
	Melitta
)

var brandNames = map[Brand]string{
	DeLonghi: "delonghi",
	Melitta:  "melitta",
}

// Brands: все бренды в фиксированном порядке.
func Brands() []Brand { return []Brand{DeLonghi, Melitta} }

func (b Brand) String() string {
	if s, ok := brandNames[b]; ok {
		return s
	}
	return "unknown"
}

// In: упоминается ли бренд в тексте ("De'Longhi", "De Longhi" тоже считаются).
func (b Brand) In(text string) bool {
	name, ok := brandNames[b]
	if !ok || text == "" {
		return false
	}
	return strings.Contains(squash(text), name)
}

// ParseBrand разбирает имя бренда из конфига/формы.
func ParseBrand(s string) (Brand, bool) {
	s = squash(s)
	for b, name := range brandNames {
		if s == name {
			return b, true
		}
	}
	return 0, false
}

// Detect: первый бренд, найденный в тексте.
func Detect(text string) (Brand, bool) {
	for _, b := range Brands() {
		if b.In(text) {
			return b, true
		}
	}
	return 0, false
}

// AnyIn: пустой список: фильтр выключен.
func AnyIn(text string, brands []Brand) bool {
	if len(brands) == 0 {
		return true
	}
	for _, b := range brands {
		if b.In(text) {
			return true
		}
	}
	return false
}

// нижний регистр без пробелов и апострофов
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\'', '\u2019', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))
}
