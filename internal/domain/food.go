package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Food is a preset the operator picks before starting a run.
type Food struct {
	Key   string
	Label string
	Emoji string
}

// Foods lists the presets in menu order.
var Foods = []Food{
	{Key: "nasi", Label: "Nasi", Emoji: "🍚"},
	{Key: "sayur", Label: "Sayuran", Emoji: "🥦"},
	{Key: "ayam", Label: "Ayam", Emoji: "🍗"},
	{Key: "ikan", Label: "Ikan", Emoji: "🐟"},
	{Key: "daging", Label: "Daging", Emoji: "🥩"},
	{Key: "buah", Label: "Buah", Emoji: "🍎"},
}

// FoodLabel maps a preset key to its display label; unknown keys are "Lainnya".
func FoodLabel(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, f := range Foods {
		if f.Key == k {
			return f.Label
		}
	}
	return "Lainnya"
}

var foodAliases = map[string][]string{
	"nasi":   {"nasi", "beras"},
	"sayur":  {"sayur", "veget", "veggie"},
	"ayam":   {"ayam", "chicken", "poultry"},
	"ikan":   {"ikan", "fish", "tuna", "salmon"},
	"daging": {"daging", "sapi", "kambing", "beef", "meat"},
	"buah":   {"buah", "apple", "jeruk", "banana", "pisang", "fruit"},
}

// MatchFood resolves a free-text label ("Ikan goreng", "daging sapi") to a
// preset by substring. Labels that match nothing keep their own text.
func MatchFood(label string) Food {
	l := strings.ToLower(strings.TrimSpace(label))
	if l != "" {
		for _, f := range Foods {
			for _, alias := range foodAliases[f.Key] {
				if strings.Contains(l, alias) {
					return f
				}
			}
		}
	}
	if l == "" {
		return Food{Label: "Sterilisasi", Emoji: "🍽️"}
	}
	r, size := utf8.DecodeRuneInString(l)
	return Food{Label: string(unicode.ToUpper(r)) + l[size:], Emoji: "🍽️"}
}
