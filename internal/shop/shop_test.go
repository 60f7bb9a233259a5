package shop

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ziadkadry99/shop-relay/internal/db"
)

// stubStore returns a fixed status or error and counts lookups.
type stubStore struct {
	status Status
	err    error
	calls  int
}

func (s *stubStore) Status(context.Context) (Status, error) {
	s.calls++
	return s.status, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testOrderURL = "https://order.example.com/"

func newTestResponder(store Store) *Responder {
	return NewResponder(store, testOrderURL, "สั่งอาหาร", quietLogger())
}

func TestCheckWrapsStoreError(t *testing.T) {
	r := newTestResponder(&stubStore{err: errors.New("connection refused")})
	_, err := r.Check(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in error, got %v", err)
	}
}

func TestOrderModeOpen(t *testing.T) {
	store := &stubStore{status: Status{IsOpen: true}}
	got := newTestResponder(store).Respond(context.Background(), ModeOrderOrRedirect, "U1")

	wantLink := testOrderURL + "?lineUserId=U1"
	if !strings.Contains(got, wantLink) {
		t.Errorf("expected link %q in reply, got %q", wantLink, got)
	}
	if got != OrderLinkText(wantLink) {
		t.Errorf("unexpected reply: %q", got)
	}
	if store.calls != 1 {
		t.Errorf("expected 1 lookup, got %d", store.calls)
	}
}

func TestOrderModeClosed(t *testing.T) {
	got := newTestResponder(&stubStore{}).Respond(context.Background(), ModeOrderOrRedirect, "U1")
	if got != ClosedText {
		t.Errorf("expected closed text, got %q", got)
	}
	if strings.Contains(got, "http") {
		t.Errorf("closed reply must not carry a link: %q", got)
	}
}

func TestOrderModeStoreFailureReadsAsClosed(t *testing.T) {
	store := &stubStore{status: Status{IsOpen: true}, err: errors.New("timeout")}
	got := newTestResponder(store).Respond(context.Background(), ModeOrderOrRedirect, "U1")
	if got != ClosedText {
		t.Errorf("expected closed text on failure, got %q", got)
	}
}

func TestStatusModeOpen(t *testing.T) {
	got := newTestResponder(&stubStore{status: Status{IsOpen: true}}).Respond(context.Background(), ModeStatusOnly, "U1")
	if got != OpenStatusText("สั่งอาหาร") {
		t.Errorf("unexpected reply: %q", got)
	}
	if !strings.Contains(got, "สั่งอาหาร") {
		t.Errorf("open status should name the order command: %q", got)
	}
}

func TestStatusModeClosed(t *testing.T) {
	got := newTestResponder(&stubStore{}).Respond(context.Background(), ModeStatusOnly, "U1")
	if got != ClosedText {
		t.Errorf("expected closed text, got %q", got)
	}
}

func TestStatusModeStoreFailureIsDistinct(t *testing.T) {
	got := newTestResponder(&stubStore{err: errors.New("boom")}).Respond(context.Background(), ModeStatusOnly, "U1")
	if got != StatusErrorText {
		t.Errorf("expected error text, got %q", got)
	}
	if got == ClosedText {
		t.Error("status-only failure must not look like a closed shop")
	}
}

func TestOrderLinkEscapesUserID(t *testing.T) {
	got := OrderLink("https://x.example.com/", "U 1&a=b")
	want := "https://x.example.com/?lineUserId=U+1%26a%3Db"
	if got != want {
		t.Errorf("OrderLink = %q, want %q", got, want)
	}
}

func TestModeString(t *testing.T) {
	if ModeOrderOrRedirect.String() != "order-or-redirect" || ModeStatusOnly.String() != "status-only" {
		t.Error("unexpected mode names")
	}
	if Mode(9).String() != "mode(9)" {
		t.Errorf("unexpected unknown mode name: %s", Mode(9))
	}
}

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSQLiteStore(database, 1)
}

func TestSQLiteStoreMissingRow(t *testing.T) {
	store := setupSQLiteStore(t)
	if _, err := store.Status(context.Background()); err == nil {
		t.Fatal("expected error for missing row")
	}
}

func TestSQLiteStoreToggle(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	if err := store.SetOpen(ctx, true); err != nil {
		t.Fatalf("SetOpen(true): %v", err)
	}
	st, err := store.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.IsOpen {
		t.Error("expected open after SetOpen(true)")
	}

	if err := store.SetOpen(ctx, false); err != nil {
		t.Fatalf("SetOpen(false): %v", err)
	}
	st, err = store.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.IsOpen {
		t.Error("expected closed after SetOpen(false)")
	}
}

func TestResponderWithSQLiteStore(t *testing.T) {
	store := setupSQLiteStore(t)
	r := newTestResponder(store)
	ctx := context.Background()

	// No row yet: status-only surfaces the failure.
	if got := r.Respond(ctx, ModeStatusOnly, "U9"); got != StatusErrorText {
		t.Errorf("expected error text before seeding, got %q", got)
	}

	if err := store.SetOpen(ctx, true); err != nil {
		t.Fatalf("SetOpen: %v", err)
	}
	if got := r.Respond(ctx, ModeOrderOrRedirect, "U9"); !strings.Contains(got, "?lineUserId=U9") {
		t.Errorf("expected order link, got %q", got)
	}
}
