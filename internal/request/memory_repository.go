package request

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// MemoryLedger is an in-memory Ledger used in tests.
type MemoryLedger struct {
	mu            sync.RWMutex
	bloodRequests []BloodRequest
	peerRequests  map[string]PeerRequest
	insertErr     error
}

// NewMemoryLedger builds an in-memory request ledger for testing.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{peerRequests: make(map[string]PeerRequest)}
}

// BloodRequests returns a copy of all persisted blood requests.
func (l *MemoryLedger) BloodRequests() []BloodRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]BloodRequest, len(l.bloodRequests))
	copy(out, l.bloodRequests)
	return out
}

// FailInserts makes subsequent inserts return the given error.
func (l *MemoryLedger) FailInserts(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.insertErr = err
}

func (l *MemoryLedger) InsertBloodRequest(_ context.Context, req BloodRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.insertErr != nil {
		return l.insertErr
	}
	l.bloodRequests = append(l.bloodRequests, req)
	return nil
}

func (l *MemoryLedger) InsertPeerRequest(_ context.Context, req PeerRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.insertErr != nil {
		return l.insertErr
	}
	if _, exists := l.peerRequests[req.ID]; exists {
		return errors.New("duplicate peer request id")
	}
	l.peerRequests[req.ID] = req
	return nil
}

func (l *MemoryLedger) GetPeerRequest(_ context.Context, id string) (PeerRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	req, ok := l.peerRequests[id]
	if !ok {
		return PeerRequest{}, ErrNotFound
	}
	return req, nil
}

func (l *MemoryLedger) UpdatePeerRequestStatus(_ context.Context, id, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	req, ok := l.peerRequests[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	l.peerRequests[id] = req
	return nil
}

func (l *MemoryLedger) ListPeerRequestsTo(_ context.Context, userID string) ([]PeerRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var requests []PeerRequest
	for _, req := range l.peerRequests {
		if req.ToUser == userID {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}
