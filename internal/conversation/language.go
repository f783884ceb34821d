package conversation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var englishStopwords = map[string]struct{}{
	"the": {}, "is": {}, "are": {}, "to": {}, "for": {}, "with": {}, "and": {},
}

// DetectLanguage classifies text as Urdu script, English or Roman Urdu.
//
// Any rune in the Arabic block (U+0600–U+06FF) wins outright. Otherwise the
// text is lower-cased and split on whitespace; more than half of the words
// being English stopwords means English. Everything else, including empty
// text, is Roman Urdu. Punctuation is not stripped, so "timings?" never
// matches a stopword.
func DetectLanguage(text string) Language {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return LanguageUrduScript
		}
	}

	words := strings.Fields(cases.Lower(language.Und).String(text))
	if len(words) == 0 {
		return LanguageRomanUrdu
	}
	hits := 0
	for _, w := range words {
		if _, ok := englishStopwords[w]; ok {
			hits++
		}
	}
	if float64(hits)/float64(len(words)) > 0.5 {
		return LanguageEnglish
	}
	return LanguageRomanUrdu
}
