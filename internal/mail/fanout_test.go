package mail

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSender struct {
	sent    []string
	failFor map[string]error
}

func (s *stubSender) SendOne(_ context.Context, to, _, _ string) error {
	s.sent = append(s.sent, to)
	if err, ok := s.failFor[to]; ok {
		return err
	}
	return nil
}

func TestFanoutAllSucceed(t *testing.T) {
	sender := &stubSender{}
	recipients := []string{"a@example.com", "b@example.com", "c@example.com"}

	report := Fanout(context.Background(), sender, "subject", "<p>body</p>", recipients, time.Second)

	if report.Sent() != 3 {
		t.Fatalf("expected 3 sent, got %d", report.Sent())
	}
	if len(report.Failed()) != 0 {
		t.Fatalf("expected no failures, got %v", report.Failed())
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(sender.sent))
	}
}

func TestFanoutIsolatesFailures(t *testing.T) {
	sender := &stubSender{failFor: map[string]error{"b@example.com": errors.New("provider rejected")}}
	recipients := []string{"a@example.com", "b@example.com", "c@example.com"}

	report := Fanout(context.Background(), sender, "subject", "<p>body</p>", recipients, time.Second)

	if len(sender.sent) != 3 {
		t.Fatalf("one failure aborted the fan-out: %d attempts", len(sender.sent))
	}
	if report.Sent() != 2 {
		t.Fatalf("expected 2 sent, got %d", report.Sent())
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0] != "b@example.com" {
		t.Fatalf("expected b@example.com enumerated as failed, got %v", failed)
	}
}

func TestFanoutEmptyRecipients(t *testing.T) {
	sender := &stubSender{}
	report := Fanout(context.Background(), sender, "subject", "<p>body</p>", nil, time.Second)
	if len(report.Results) != 0 || report.Sent() != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

type slowSender struct{}

func (slowSender) SendOne(ctx context.Context, _, _, _ string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
		return nil
	}
}

func TestFanoutPerSendTimeout(t *testing.T) {
	report := Fanout(context.Background(), slowSender{}, "subject", "body", []string{"a@example.com"}, time.Millisecond)

	if report.Sent() != 0 {
		t.Fatal("expected timed-out send to count as failure")
	}
	if len(report.Failed()) != 1 {
		t.Fatalf("expected one failed recipient, got %v", report.Failed())
	}
}
