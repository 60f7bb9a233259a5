package messaging

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// LINEGateway sends messages through the LINE Messaging API.
type LINEGateway struct {
	api *messaging_api.MessagingApiAPI
}

var _ Gateway = (*LINEGateway)(nil)

// NewLINEGateway creates a gateway for the given channel access token.
// endpoint overrides the API base URL when non-empty.
func NewLINEGateway(channelToken, endpoint string) (*LINEGateway, error) {
	opts := []messaging_api.MessagingApiAPIOption{
		messaging_api.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	}
	if endpoint != "" {
		opts = append(opts, messaging_api.WithEndpoint(endpoint))
	}
	api, err := messaging_api.NewMessagingApiAPI(channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating LINE client: %w", err)
	}
	return &LINEGateway{api: api}, nil
}

// Send delivers msg as a reply or push. Errors wrap ErrDeliveryFailed.
// The SDK binds a context per client rather than per call, so ctx is not
// forwarded; the HTTP client timeout bounds the call instead.
func (g *LINEGateway) Send(_ context.Context, msg OutboundMessage) error {
	messages := []messaging_api.MessageInterface{
		messaging_api.TextMessage{Text: msg.Text},
	}
	var err error
	switch msg.Kind {
	case KindReply:
		_, err = g.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
			ReplyToken: msg.Target,
			Messages:   messages,
		})
	case KindPush:
		_, err = g.api.PushMessage(&messaging_api.PushMessageRequest{
			To:       msg.Target,
			Messages: messages,
		}, "")
	default:
		return fmt.Errorf("%w: unknown message kind %q", ErrDeliveryFailed, msg.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s to %s: %v", ErrDeliveryFailed, msg.Kind, msg.Target, err)
	}
	return nil
}
