package conversation

import (
	"strings"
)

// FirstMessageMarker stands in for the transcript when there is no history.
const FirstMessageMarker = "This is the first message."

var languageDirectives = map[Language]string{
	LanguageEnglish:    "Reply ONLY in English. Never mix languages.",
	LanguageUrduScript: "Reply ONLY in Urdu script. Never mix languages.",
	LanguageRomanUrdu:  "Reply ONLY in Roman Urdu. Never mix languages.",
}

// Directive returns the reply-language instruction for lang.
// Unknown values get the Roman Urdu directive.
func Directive(lang Language) string {
	if d, ok := languageDirectives[lang]; ok {
		return d
	}
	return languageDirectives[LanguageRomanUrdu]
}

// BuildPrompt renders the generation prompt. Only the last PromptWindow
// exchanges of history are used. Parent text is concatenated as-is.
func BuildPrompt(persona string, history []Exchange, message string, lang Language) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nPrevious conversation:\n")
	b.WriteString(renderTranscript(history))
	b.WriteString("\n\nParent's Question: ")
	b.WriteString(message)
	b.WriteString("\n\n")
	b.WriteString(Directive(lang))
	b.WriteString("\n")
	return b.String()
}

func renderTranscript(history []Exchange) string {
	if len(history) > PromptWindow {
		history = history[len(history)-PromptWindow:]
	}
	if len(history) == 0 {
		return FirstMessageMarker
	}
	var b strings.Builder
	for _, ex := range history {
		b.WriteString("Parent: ")
		b.WriteString(ex.UserMessage)
		b.WriteString("\nAI: ")
		b.WriteString(ex.AssistantReply)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
