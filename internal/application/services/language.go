package services

import "unicode"

// DetectLanguage classifies free text as "en" or "bn" by the ratio of Bangla
// script runes to non-whitespace runes. The 0.2 threshold tolerates mixed
// text with English numerals and medication names.
func DetectLanguage(text string) string {
	var bangla, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r >= 0x0980 && r <= 0x09FF {
			bangla++
		}
	}

	if total > 0 && float64(bangla)/float64(total) > 0.2 {
		return "bn"
	}
	return "en"
}

// NormalizeLocale maps any caller-supplied locale onto the two supported
// values for prompt selection. "auto" and empty trigger detection against
// the message text; unknown values fall back to "en".
func NormalizeLocale(locale, message string) string {
	switch locale {
	case "en", "bn":
		return locale
	case "", "auto":
		return DetectLanguage(message)
	default:
		return "en"
	}
}
