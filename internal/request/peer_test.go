package request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/life-connect/life_connect/internal/account"
	"github.com/life-connect/life_connect/internal/donor"
	"github.com/life-connect/life_connect/internal/logging"
)

func newPeerService(ledger Ledger, users SenderLookup) *Service {
	return NewService(ledger, donor.NewMemoryDirectory(), &stubSender{}, users, nil, time.Second, logging.Discard())
}

func TestCreatePeer(t *testing.T) {
	ledger := NewMemoryLedger()
	svc := newPeerService(ledger, nil)

	from, to := uuid.NewString(), uuid.NewString()
	req, err := svc.CreatePeer(context.Background(), from, to, "Please help")
	if err != nil {
		t.Fatalf("create peer: %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}

	stored, err := ledger.GetPeerRequest(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FromUser != from || stored.ToUser != to {
		t.Fatalf("unexpected stored request: %+v", stored)
	}
}

func TestCreatePeerInvalidRecipientID(t *testing.T) {
	svc := newPeerService(NewMemoryLedger(), nil)

	_, err := svc.CreatePeer(context.Background(), uuid.NewString(), "not-a-uuid", "hi")
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "to_user" {
		t.Fatalf("expected ValidationError on to_user, got %v", err)
	}
}

func TestResolvePeerAccept(t *testing.T) {
	ledger := NewMemoryLedger()
	svc := newPeerService(ledger, nil)

	to := uuid.NewString()
	req, _ := svc.CreatePeer(context.Background(), uuid.NewString(), to, "hi")

	resolved, err := svc.ResolvePeer(context.Background(), req.ID, to, "accept")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", resolved.Status)
	}
}

func TestResolvePeerOnlyRecipient(t *testing.T) {
	ledger := NewMemoryLedger()
	svc := newPeerService(ledger, nil)

	req, _ := svc.CreatePeer(context.Background(), uuid.NewString(), uuid.NewString(), "hi")

	_, err := svc.ResolvePeer(context.Background(), req.ID, uuid.NewString(), "accept")
	if !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient, got %v", err)
	}

	stored, _ := ledger.GetPeerRequest(context.Background(), req.ID)
	if stored.Status != StatusPending {
		t.Fatalf("status must stay pending, got %s", stored.Status)
	}
}

func TestResolvePeerInvalidAction(t *testing.T) {
	ledger := NewMemoryLedger()
	svc := newPeerService(ledger, nil)

	to := uuid.NewString()
	req, _ := svc.CreatePeer(context.Background(), uuid.NewString(), to, "hi")

	_, err := svc.ResolvePeer(context.Background(), req.ID, to, "ignore")
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}

	stored, _ := ledger.GetPeerRequest(context.Background(), req.ID)
	if stored.Status != StatusPending {
		t.Fatalf("status must stay pending, got %s", stored.Status)
	}
}

func TestResolvePeerNotFound(t *testing.T) {
	svc := newPeerService(NewMemoryLedger(), nil)

	_, err := svc.ResolvePeer(context.Background(), uuid.NewString(), uuid.NewString(), "accept")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvePeerTerminalStaysTerminal(t *testing.T) {
	ledger := NewMemoryLedger()
	svc := newPeerService(ledger, nil)

	to := uuid.NewString()
	req, _ := svc.CreatePeer(context.Background(), uuid.NewString(), to, "hi")

	if _, err := svc.ResolvePeer(context.Background(), req.ID, to, "accept"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	_, err := svc.ResolvePeer(context.Background(), req.ID, to, "reject")
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}

	stored, _ := ledger.GetPeerRequest(context.Background(), req.ID)
	if stored.Status != StatusAccepted {
		t.Fatalf("terminal status overwritten: %s", stored.Status)
	}
}

func TestInboxResolvesSenderNames(t *testing.T) {
	ledger := NewMemoryLedger()
	users := account.NewMemoryRepository()
	svc := newPeerService(ledger, users)

	sender := account.User{ID: uuid.NewString(), Name: "Ravi", Email: "ravi@example.com", Phone: "1"}
	if err := users.Create(context.Background(), sender); err != nil {
		t.Fatalf("seed sender: %v", err)
	}

	to := uuid.NewString()
	if _, err := svc.CreatePeer(context.Background(), sender.ID, to, "known sender"); err != nil {
		t.Fatalf("create peer: %v", err)
	}
	if _, err := svc.CreatePeer(context.Background(), uuid.NewString(), to, "dangling sender"); err != nil {
		t.Fatalf("create peer: %v", err)
	}

	items, err := svc.Inbox(context.Background(), to)
	if err != nil {
		t.Fatalf("inbox: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	names := map[string]string{}
	for _, item := range items {
		names[item.Message] = item.FromName
	}
	if names["known sender"] != "Ravi" {
		t.Fatalf("expected sender name Ravi, got %q", names["known sender"])
	}
	if names["dangling sender"] != "Unknown" {
		t.Fatalf("dangling sender must render as Unknown, got %q", names["dangling sender"])
	}
}
