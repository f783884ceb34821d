package httpapi

import (
	"errors"
	"strings"
)

// Cloud API webhook envelope; only the fields the relay reads are modelled.
type webhookPayload struct {
	Object string         `json:"object"`
	Entry  []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	ID      string          `json:"id"`
	Changes []webhookChange `json:"changes"`
}

type webhookChange struct {
	Field string        `json:"field"`
	Value *webhookValue `json:"value"`
}

type webhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []inboundMessage `json:"messages"`
}

type inboundMessage struct {
	ID   string       `json:"id"`
	From string       `json:"from"`
	Type string       `json:"type"`
	Text *messageText `json:"text"`
}

type messageText struct {
	Body *string `json:"body"`
}

var (
	errNoEntry    = errors.New("payload has no entry")
	errNoChange   = errors.New("entry has no changes")
	errNoValue    = errors.New("change has no value")
	errNoSender   = errors.New("message has no sender")
	errNoTextBody = errors.New("message has no text body")
)

// firstMessage returns the first message of the first change of the first
// entry, requiring both its sender and its text body. ok is false when the change carries no messages (status callbacks).
// Further entries, changes and messages are ignored.
func (p webhookPayload) firstMessage() (msg inboundMessage, ok bool, err error) {
	if len(p.Entry) == 0 {
		return inboundMessage{}, false, errNoEntry
	}
	if len(p.Entry[0].Changes) == 0 {
		return inboundMessage{}, false, errNoChange
	}
	value := p.Entry[0].Changes[0].Value
	if value == nil {
		return inboundMessage{}, false, errNoValue
	}
	messages := value.Messages
	if len(messages) == 0 {
		return inboundMessage{}, false, nil
	}
	msg = messages[0]
	if strings.TrimSpace(msg.From) == "" {
		return inboundMessage{}, false, errNoSender
	}
	if msg.Text == nil || msg.Text.Body == nil {
		return inboundMessage{}, false, errNoTextBody
	}
	return msg, true, nil
}
