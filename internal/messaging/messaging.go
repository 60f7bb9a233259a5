// Package messaging delivers outbound text to the chat platform.
package messaging

import (
	"context"
	"errors"
)

// ErrDeliveryFailed wraps any failure reported by the transport.
var ErrDeliveryFailed = errors.New("message delivery failed")

// Kind distinguishes a reply to an inbound event from an address-based push.
type Kind string

const (
	KindReply Kind = "reply"
	KindPush  Kind = "push"
)

// OutboundMessage is one text message on its way to the platform. Target is
// a reply token for KindReply and a user ID for KindPush.
type OutboundMessage struct {
	Kind   Kind
	Target string
	Text   string
}

// Reply addresses text to a single-use reply token.
func Reply(token, text string) OutboundMessage {
	return OutboundMessage{Kind: KindReply, Target: token, Text: text}
}

// Push addresses text to a user.
func Push(userID, text string) OutboundMessage {
	return OutboundMessage{Kind: KindPush, Target: userID, Text: text}
}

// Gateway sends outbound messages. Send makes exactly one delivery attempt.
type Gateway interface {
	Send(ctx context.Context, msg OutboundMessage) error
}
