package bots

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Event and message types the router acts on. Anything else is ignored.
const (
	EventMessage = "message"
	MessageText  = "text"
)

// InboundEvent is one element of a webhook delivery's event list, reduced
// to the fields the router needs.
type InboundEvent struct {
	Type         string
	MessageType  string
	Text         string
	SourceUserID string
	ReplyToken   string
}

// IsText reports whether the event is a text message.
func (e InboundEvent) IsText() bool {
	return e.Type == EventMessage && e.MessageType == MessageText
}

// Delivery is one webhook call carrying a batch of events.
type Delivery struct {
	ID          string
	Destination string
	Events      []InboundEvent
	// Dropped counts elements that could not be decoded.
	Dropped int
}

// lineCallback is the top-level LINE webhook body.
type lineCallback struct {
	Destination string            `json:"destination"`
	Events      []json.RawMessage `json:"events"`
}

type lineEvent struct {
	Type       string      `json:"type"`
	ReplyToken string      `json:"replyToken"`
	Source     lineSource  `json:"source"`
	Message    lineMessage `json:"message"`
}

type lineSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type lineMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// ParseDelivery decodes a webhook body. It never fails: a malformed body
// yields a delivery with no events, and a malformed element is dropped
// without affecting its neighbours. Text events lacking a reply token
// cannot be answered and are dropped too.
func ParseDelivery(body []byte) Delivery {
	d := Delivery{ID: uuid.NewString()}

	var cb lineCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		return d
	}
	d.Destination = cb.Destination

	for _, raw := range cb.Events {
		var ev lineEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			d.Dropped++
			continue
		}
		in := InboundEvent{
			Type:         ev.Type,
			MessageType:  ev.Message.Type,
			Text:         ev.Message.Text,
			SourceUserID: ev.Source.UserID,
			ReplyToken:   ev.ReplyToken,
		}
		if in.IsText() && in.ReplyToken == "" {
			d.Dropped++
			continue
		}
		d.Events = append(d.Events, in)
	}
	return d
}
