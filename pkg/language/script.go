package language

import "regexp"

var (
	devanagariRe = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	gurmukhiRe   = regexp.MustCompile(`[\x{0A00}-\x{0A7F}]`)
	latinRe      = regexp.MustCompile(`[A-Za-z]`)
)

// ContainsScript reports whether text carries the writing system expected
// for the language: Devanagari for Hindi, Gurmukhi for Punjabi, Latin
// letters for English. Used to detect answers that came back in the
// wrong script and need forced translation.
func ContainsScript(lang Code, text string) bool {
	switch lang {
	case Hindi:
		return devanagariRe.MatchString(text)
	case Punjabi:
		return gurmukhiRe.MatchString(text)
	default:
		return latinRe.MatchString(text)
	}
}
