package bots

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/shop-relay/internal/messaging"
	"github.com/ziadkadry99/shop-relay/internal/shop"
)

const (
	testSecret   = "channel-secret"
	testOrderURL = "https://order.example.com/"
)

var testCommands = Commands{Order: "สั่งอาหาร", Status: "สถานะร้าน"}

// mockGateway records every message and optionally fails or panics.
type mockGateway struct {
	sent    []messaging.OutboundMessage
	failFor map[string]bool // reply tokens that fail
	panicOn string          // reply token that panics
}

func (m *mockGateway) Send(_ context.Context, msg messaging.OutboundMessage) error {
	if msg.Target == m.panicOn && m.panicOn != "" {
		panic("transport exploded")
	}
	m.sent = append(m.sent, msg)
	if m.failFor[msg.Target] {
		return messaging.ErrDeliveryFailed
	}
	return nil
}

// mockStore returns a fixed status or error and counts lookups.
type mockStore struct {
	open  bool
	err   error
	calls int
}

func (m *mockStore) Status(context.Context) (shop.Status, error) {
	m.calls++
	return shop.Status{IsOpen: m.open}, m.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(store shop.Store, gw messaging.Gateway) *Router {
	responder := shop.NewResponder(store, testOrderURL, testCommands.Order, quietLogger())
	return NewRouter(testCommands, responder, gw, quietLogger())
}

func textEvent(text, user, token string) InboundEvent {
	return InboundEvent{Type: EventMessage, MessageType: MessageText, Text: text, SourceUserID: user, ReplyToken: token}
}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// --- Parser tests ---

func TestParseDelivery(t *testing.T) {
	body := `{
		"destination": "Ubot",
		"events": [
			{"type": "message", "replyToken": "T1", "source": {"type": "user", "userId": "U1"},
			 "message": {"id": "1", "type": "text", "text": " สั่งอาหาร "}},
			{"type": "follow", "replyToken": "T2", "source": {"type": "user", "userId": "U2"}},
			{"type": "message", "replyToken": "T3", "source": {"type": "user", "userId": "U3"},
			 "message": {"id": "3", "type": "sticker"}}
		]
	}`
	d := ParseDelivery([]byte(body))

	if d.ID == "" {
		t.Error("expected a delivery id")
	}
	if d.Destination != "Ubot" {
		t.Errorf("destination = %q", d.Destination)
	}
	if len(d.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(d.Events))
	}
	first := d.Events[0]
	if !first.IsText() || first.Text != " สั่งอาหาร " || first.SourceUserID != "U1" || first.ReplyToken != "T1" {
		t.Errorf("unexpected first event: %+v", first)
	}
	if d.Events[1].IsText() || d.Events[2].IsText() {
		t.Error("non-text events must not be text")
	}
}

func TestParseDeliveryMalformedBodyIsEmpty(t *testing.T) {
	for _, body := range []string{"not json", `{"events": "nope"}`, ``, `[]`} {
		d := ParseDelivery([]byte(body))
		if len(d.Events) != 0 {
			t.Errorf("ParseDelivery(%q): expected no events, got %d", body, len(d.Events))
		}
	}
}

func TestParseDeliveryDropsMalformedElements(t *testing.T) {
	body := `{"events": [
		{"type": "message", "message": "oops"},
		{"type": "message", "source": {"userId": "U1"}, "message": {"type": "text", "text": "hi"}},
		{"type": "message", "replyToken": "T3", "source": {"userId": "U3"}, "message": {"type": "text", "text": "hi"}}
	]}`
	d := ParseDelivery([]byte(body))

	if d.Dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", d.Dropped)
	}
	if len(d.Events) != 1 || d.Events[0].ReplyToken != "T3" {
		t.Errorf("expected only the well-formed event, got %+v", d.Events)
	}
}

func TestParseDeliveryIDsAreUnique(t *testing.T) {
	a := ParseDelivery([]byte(`{"events":[]}`))
	b := ParseDelivery([]byte(`{"events":[]}`))
	if a.ID == b.ID {
		t.Error("expected distinct delivery ids")
	}
}

// --- Router tests ---

func TestRouterOrderOpen(t *testing.T) {
	gw := &mockGateway{}
	r := newTestRouter(&mockStore{open: true}, gw)

	msg, ok := r.Reply(context.Background(), textEvent("สั่งอาหาร", "U1", "T1"))
	if !ok {
		t.Fatal("expected a reply")
	}
	if msg.Kind != messaging.KindReply || msg.Target != "T1" {
		t.Errorf("unexpected addressing: %+v", msg)
	}
	if !strings.Contains(msg.Text, testOrderURL+"?lineUserId=U1") {
		t.Errorf("expected order link, got %q", msg.Text)
	}
}

func TestRouterOrderClosed(t *testing.T) {
	r := newTestRouter(&mockStore{open: false}, &mockGateway{})

	msg, _ := r.Reply(context.Background(), textEvent("สั่งอาหาร", "U1", "T1"))
	if msg.Text != shop.ClosedText {
		t.Errorf("expected closed text, got %q", msg.Text)
	}
	if strings.Contains(msg.Text, "http") {
		t.Errorf("closed reply must not contain a URL: %q", msg.Text)
	}
}

func TestRouterOrderStoreFailure(t *testing.T) {
	r := newTestRouter(&mockStore{open: true, err: errors.New("down")}, &mockGateway{})

	msg, _ := r.Reply(context.Background(), textEvent("สั่งอาหาร", "U1", "T1"))
	if msg.Text != shop.ClosedText {
		t.Errorf("expected closed text on store failure, got %q", msg.Text)
	}
}

func TestRouterStatusCommand(t *testing.T) {
	tests := []struct {
		name  string
		store *mockStore
		want  string
	}{
		{"open", &mockStore{open: true}, shop.OpenStatusText(testCommands.Order)},
		{"closed", &mockStore{}, shop.ClosedText},
		{"failure", &mockStore{err: errors.New("down")}, shop.StatusErrorText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.store, &mockGateway{})
			msg, ok := r.Reply(context.Background(), textEvent("  สถานะร้าน\n", "U1", "T1"))
			if !ok {
				t.Fatal("expected a reply")
			}
			if msg.Text != tt.want {
				t.Errorf("got %q, want %q", msg.Text, tt.want)
			}
		})
	}
}

func TestRouterFallbackHelp(t *testing.T) {
	store := &mockStore{open: true}
	r := newTestRouter(store, &mockGateway{})

	for _, text := range []string{"hello", "สั่งอาหารหน่อย", "", "สถานะ"} {
		msg, ok := r.Reply(context.Background(), textEvent(text, "U1", "T1"))
		if !ok {
			t.Fatalf("expected a reply for %q", text)
		}
		if msg.Text != HelpText(testCommands) {
			t.Errorf("text %q: got %q, want help text", text, msg.Text)
		}
	}
	if store.calls != 0 {
		t.Errorf("help replies must not query the store, got %d lookups", store.calls)
	}
}

func TestRouterIgnoresNonText(t *testing.T) {
	r := newTestRouter(&mockStore{}, &mockGateway{})

	events := []InboundEvent{
		{Type: "follow", ReplyToken: "T1"},
		{Type: EventMessage, MessageType: "image", ReplyToken: "T2"},
		{Type: "postback", MessageType: MessageText, Text: "สั่งอาหาร", ReplyToken: "T3"},
	}
	for _, ev := range events {
		if _, ok := r.Reply(context.Background(), ev); ok {
			t.Errorf("expected no reply for %+v", ev)
		}
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	got := HelpText(testCommands)
	if !strings.Contains(got, "สั่งอาหาร") || !strings.Contains(got, "สถานะร้าน") {
		t.Errorf("help text should name both commands: %q", got)
	}
}

func TestDispatchOneReplyPerTextEvent(t *testing.T) {
	gw := &mockGateway{}
	r := newTestRouter(&mockStore{open: true}, gw)

	d := Delivery{ID: "d1", Events: []InboundEvent{
		textEvent("สั่งอาหาร", "U1", "T1"),
		{Type: "follow", ReplyToken: "T2"},
		textEvent("hi", "U3", "T3"),
	}}
	if sent := r.Dispatch(context.Background(), d); sent != 2 {
		t.Errorf("expected 2 replies, got %d", sent)
	}
	if len(gw.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(gw.sent))
	}
	if gw.sent[0].Target != "T1" || gw.sent[1].Target != "T3" {
		t.Errorf("replies out of order or misaddressed: %+v", gw.sent)
	}
}

func TestDispatchIsolatesFailures(t *testing.T) {
	gw := &mockGateway{failFor: map[string]bool{"T1": true}, panicOn: "T2"}
	r := newTestRouter(&mockStore{open: true}, gw)

	d := Delivery{ID: "d2", Events: []InboundEvent{
		textEvent("hi", "U1", "T1"),
		textEvent("hi", "U2", "T2"),
		textEvent("hi", "U3", "T3"),
	}}
	sent := r.Dispatch(context.Background(), d)
	if sent != 1 {
		t.Errorf("expected 1 successful reply, got %d", sent)
	}
	// T1 attempted once (failed), T2 panicked before recording, T3 succeeded.
	if len(gw.sent) != 2 || gw.sent[0].Target != "T1" || gw.sent[1].Target != "T3" {
		t.Errorf("unexpected sends: %+v", gw.sent)
	}
}

// --- Webhook handler tests ---

func newTestMux(store shop.Store, gw messaging.Gateway) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, testSecret, NewWebhookHandler(newTestRouter(store, gw), quietLogger()))
	return r
}

func postWebhook(h http.Handler, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestWebhookOrderEndToEnd(t *testing.T) {
	gw := &mockGateway{}
	store := &mockStore{open: true}
	h := newTestMux(store, gw)

	body := `{"events":[{"type":"message","message":{"type":"text","text":"สั่งอาหาร"},"source":{"userId":"U1"},"replyToken":"T1"}]}`
	w := postWebhook(h, body, sign(body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
	if len(gw.sent) != 1 {
		t.Fatalf("expected exactly 1 reply, got %d", len(gw.sent))
	}
	if gw.sent[0].Kind != messaging.KindReply || gw.sent[0].Target != "T1" {
		t.Errorf("unexpected addressing: %+v", gw.sent[0])
	}
	if !strings.Contains(gw.sent[0].Text, "lineUserId=U1") {
		t.Errorf("expected link for U1, got %q", gw.sent[0].Text)
	}
	if store.calls != 1 {
		t.Errorf("expected one store lookup, got %d", store.calls)
	}
}

func TestWebhookAlwaysOK(t *testing.T) {
	gw := &mockGateway{failFor: map[string]bool{"T1": true}}
	h := newTestMux(&mockStore{err: errors.New("down")}, gw)

	for _, body := range []string{
		`{"events":[{"type":"message","message":{"type":"text","text":"สถานะร้าน"},"source":{"userId":"U1"},"replyToken":"T1"}]}`,
		`{"events":[]}`,
		`{}`,
		`garbage`,
	} {
		w := postWebhook(h, body, sign(body))
		if w.Code != http.StatusOK {
			t.Errorf("body %q: expected 200, got %d", body, w.Code)
		}
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	gw := &mockGateway{}
	h := newTestMux(&mockStore{open: true}, gw)

	body := `{"events":[{"type":"message","message":{"type":"text","text":"hi"},"source":{"userId":"U1"},"replyToken":"T1"}]}`
	for _, sig := range []string{"", "bm90LWEtc2lnbmF0dXJl", sign(body + " ")} {
		w := postWebhook(h, body, sig)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("signature %q: expected 401, got %d", sig, w.Code)
		}
	}
	if len(gw.sent) != 0 {
		t.Errorf("no reply may be sent for unsigned deliveries, got %d", len(gw.sent))
	}
}

func TestVerifySignatureDisabledWithoutSecret(t *testing.T) {
	called := false
	h := VerifySignature("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{}`))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Error("expected pass-through without a secret")
	}
}

func TestVerifySignatureRestoresBody(t *testing.T) {
	body := `{"events":[]}`
	var seen string
	h := VerifySignature(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
	}))
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(SignatureHeader, sign(body))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != body {
		t.Errorf("downstream body = %q, want %q", seen, body)
	}
}
