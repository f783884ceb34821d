package conversation

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"arabic block wins", "fees کتنی ہے the is are", LanguageUrduScript},
		{"single arabic rune", "hello ؀", LanguageUrduScript},
		{"block upper bound", "ۿ", LanguageUrduScript},
		{"just outside block", "܀ the and", LanguageEnglish},
		{"stoplist majority", "the fees are for the", LanguageEnglish},
		{"mixed case", "The Fees ARE For The", LanguageEnglish},
		{"exactly half is not english", "the fees", LanguageRomanUrdu},
		{"school timings question", "What are the school timings?", LanguageRomanUrdu},
		{"roman urdu", "school kab khulta hai", LanguageRomanUrdu},
		{"punctuation blocks match", "the, is, and, to", LanguageRomanUrdu},
		{"empty", "", LanguageRomanUrdu},
		{"whitespace only", " \t\n ", LanguageRomanUrdu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Fatalf("DetectLanguage(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectLanguageDeterministic(t *testing.T) {
	text := "is the admission open for and with"
	first := DetectLanguage(text)
	for i := 0; i < 10; i++ {
		if got := DetectLanguage(text); got != first {
			t.Fatalf("non-deterministic result: %s vs %s", got, first)
		}
	}
}
