package mail

import (
	"context"
	"time"
)

// RecipientResult records the outcome of one attempted delivery.
type RecipientResult struct {
	Recipient string
	Err       error
}

// Report aggregates a fan-out: one independently addressed message per
// recipient, each attempted regardless of how the others fared.
type Report struct {
	Results []RecipientResult
}

// Sent returns how many deliveries the provider accepted.
func (r Report) Sent() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the recipients whose delivery failed.
func (r Report) Failed() []string {
	var failed []string
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res.Recipient)
		}
	}
	return failed
}

// Fanout sends subject/body to each recipient as an individual message. Each
// send runs under its own timeout; one failure never aborts the remaining
// sends. The report enumerates every attempt.
func Fanout(ctx context.Context, sender Sender, subject, htmlBody string, recipients []string, perSendTimeout time.Duration) Report {
	report := Report{Results: make([]RecipientResult, 0, len(recipients))}

	for _, recipient := range recipients {
		sendCtx := ctx
		cancel := func() {}
		if perSendTimeout > 0 {
			sendCtx, cancel = context.WithTimeout(ctx, perSendTimeout)
		}
		err := sender.SendOne(sendCtx, recipient, subject, htmlBody)
		cancel()

		report.Results = append(report.Results, RecipientResult{Recipient: recipient, Err: err})
	}

	return report
}
