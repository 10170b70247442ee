package request

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/life-connect/life_connect/internal/account"
	"github.com/life-connect/life_connect/internal/donor"
	"github.com/life-connect/life_connect/internal/mail"
)

var (
	// ErrNotRecipient indicates the actor is not the request's addressee.
	ErrNotRecipient = errors.New("only the addressed recipient may resolve this request")

	// ErrInvalidAction indicates an action outside accept/reject.
	ErrInvalidAction = errors.New("action must be accept or reject")

	// ErrAlreadyResolved indicates the request already left the pending state.
	ErrAlreadyResolved = errors.New("request already resolved")

	// ErrDuplicateSubmission indicates an identical submission inside the dedup window.
	ErrDuplicateSubmission = errors.New("identical request submitted recently")
)

// ValidationError reports a missing required submission field by name.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// SenderLookup resolves user ids to profiles for inbox display. A dangling id
// is tolerated and rendered as "Unknown".
type SenderLookup interface {
	FindByID(ctx context.Context, id string) (account.User, error)
}

// DonorsPerPage is the display page size for the matched-donor listing.
const DonorsPerPage = 5

// Service orchestrates the matching workflow: persist the request, confirm to
// the requester, look up donors, fan out individually addressed alerts.
type Service struct {
	ledger      Ledger
	directory   donor.Directory
	sender      mail.Sender
	users       SenderLookup
	dedup       *DedupGuard
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewService constructs a request service. dedup may be nil.
func NewService(ledger Ledger, directory donor.Directory, sender mail.Sender, users SenderLookup, dedup *DedupGuard, sendTimeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		ledger:      ledger,
		directory:   directory,
		sender:      sender,
		users:       users,
		dedup:       dedup,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// DonorView is the listing projection shown to the requester. Email addresses
// are withheld from the listing, mirroring what donors agreed to expose.
type DonorView struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"blood_group"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// DonorPage is one display page of matched donors.
type DonorPage struct {
	Donors     []DonorView `json:"donors"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Total      int         `json:"total"`
}

// Outcome reports what happened to a submission. The blood request is
// persisted before any notification is attempted, so a degraded outcome still
// carries a request id.
type Outcome struct {
	RequestID        string
	ConfirmationSent bool
	LookupFailed     bool
	DonorsMatched    int
	DonorsNotified   int
	FailedRecipients []string
	Listing          DonorPage
}

// Submit runs the full matching workflow for a blood-request form.
//
// Persistence and notification are deliberately not atomic: the request is
// at-most-once persisted and notifications are best effort. Notification
// failures degrade the Outcome, they never fail the submission.
func (s *Service) Submit(ctx context.Context, sub Submission, page int) (Outcome, error) {
	if err := validateSubmission(sub); err != nil {
		return Outcome{}, err
	}

	if !s.dedup.Reserve(ctx, sub) {
		return Outcome{}, ErrDuplicateSubmission
	}

	req := BloodRequest{
		ID:         uuid.New().String(),
		Name:       sub.Name,
		Gender:     sub.Gender,
		Mobile:     sub.Mobile,
		Email:      sub.Email,
		BloodGroup: sub.BloodGroup,
		City:       sub.City,
		State:      sub.State,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.ledger.InsertBloodRequest(ctx, req); err != nil {
		return Outcome{}, fmt.Errorf("persist blood request: %w", err)
	}

	outcome := Outcome{RequestID: req.ID}

	confirmation := mail.Fanout(ctx, s.sender, "Blood Request Confirmation",
		confirmationBody(req), []string{req.Email}, s.sendTimeout)
	outcome.ConfirmationSent = confirmation.Sent() == 1
	if !outcome.ConfirmationSent {
		s.logger.Warn("confirmation email failed", "request_id", req.ID, "recipient", req.Email)
	}

	matches, err := s.directory.Find(ctx, donor.Criteria{
		BloodGroup: req.BloodGroup,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		// Zero matches and a failed lookup are different outcomes; the
		// request stays submitted either way.
		s.logger.Error("donor lookup failed", "request_id", req.ID, "error", err)
		outcome.LookupFailed = true
		return outcome, nil
	}

	outcome.DonorsMatched = len(matches)
	outcome.Listing = paginate(matches, page)

	recipients := donorEmails(matches)
	if len(recipients) == 0 {
		return outcome, nil
	}

	report := mail.Fanout(ctx, s.sender,
		fmt.Sprintf("Urgent Blood Request for %s", req.Name),
		alertBody(req.Name, req.Mobile, req.BloodGroup, req.City, req.State),
		recipients, s.sendTimeout)
	outcome.DonorsNotified = report.Sent()
	outcome.FailedRecipients = report.Failed()
	for _, failed := range outcome.FailedRecipients {
		s.logger.Warn("donor alert failed", "request_id", req.ID, "recipient", failed)
	}

	return outcome, nil
}

// BroadcastOutcome reports a persist-free donor alert.
type BroadcastOutcome struct {
	DonorsMatched    int
	DonorsNotified   int
	FailedRecipients []string
}

// Broadcast alerts matching donors without recording a blood request.
func (s *Service) Broadcast(ctx context.Context, alert Alert) (BroadcastOutcome, error) {
	for _, field := range []struct{ name, value string }{
		{"patient_name", alert.PatientName},
		{"patient_phone", alert.PatientPhone},
		{"blood_group", alert.BloodGroup},
		{"city", alert.City},
		{"state", alert.State},
	} {
		if field.value == "" {
			return BroadcastOutcome{}, ValidationError{Field: field.name}
		}
	}

	matches, err := s.directory.Find(ctx, donor.Criteria{
		BloodGroup: alert.BloodGroup,
		City:       alert.City,
		State:      alert.State,
	})
	if err != nil {
		return BroadcastOutcome{}, err
	}

	outcome := BroadcastOutcome{DonorsMatched: len(matches)}
	recipients := donorEmails(matches)
	if len(recipients) == 0 {
		return outcome, nil
	}

	report := mail.Fanout(ctx, s.sender,
		fmt.Sprintf("Urgent Blood Request for %s", alert.PatientName),
		alertBody(alert.PatientName, alert.PatientPhone, alert.BloodGroup, alert.City, alert.State),
		recipients, s.sendTimeout)
	outcome.DonorsNotified = report.Sent()
	outcome.FailedRecipients = report.Failed()

	return outcome, nil
}

// CreatePeer records a pending help request between two users. The recipient
// id is validated syntactically only; existence is not verified.
func (s *Service) CreatePeer(ctx context.Context, fromUser, toUser, message string) (PeerRequest, error) {
	if _, err := uuid.Parse(fromUser); err != nil {
		return PeerRequest{}, ValidationError{Field: "from_user"}
	}
	if _, err := uuid.Parse(toUser); err != nil {
		return PeerRequest{}, ValidationError{Field: "to_user"}
	}

	req := PeerRequest{
		ID:        uuid.New().String(),
		FromUser:  fromUser,
		ToUser:    toUser,
		Message:   message,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.ledger.InsertPeerRequest(ctx, req); err != nil {
		return PeerRequest{}, err
	}
	return req, nil
}

// ResolvePeer transitions a pending request to accepted or rejected. Terminal
// requests stay terminal.
func (s *Service) ResolvePeer(ctx context.Context, requestID, actingUser, action string) (PeerRequest, error) {
	req, err := s.ledger.GetPeerRequest(ctx, requestID)
	if err != nil {
		return PeerRequest{}, err
	}

	if req.ToUser != actingUser {
		return PeerRequest{}, ErrNotRecipient
	}

	var status string
	switch action {
	case "accept":
		status = StatusAccepted
	case "reject":
		status = StatusRejected
	default:
		return PeerRequest{}, ErrInvalidAction
	}

	if req.Status != StatusPending {
		return PeerRequest{}, ErrAlreadyResolved
	}

	if err := s.ledger.UpdatePeerRequestStatus(ctx, req.ID, status); err != nil {
		return PeerRequest{}, err
	}
	req.Status = status
	return req, nil
}

// InboxItem is a received peer request with its sender's display name.
type InboxItem struct {
	PeerRequest
	FromName string
}

// Inbox lists peer requests addressed to the user, newest first. Senders whose
// account no longer resolves appear as "Unknown".
func (s *Service) Inbox(ctx context.Context, userID string) ([]InboxItem, error) {
	requests, err := s.ledger.ListPeerRequestsTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]InboxItem, 0, len(requests))
	for _, req := range requests {
		item := InboxItem{PeerRequest: req, FromName: "Unknown"}
		if s.users != nil {
			if sender, err := s.users.FindByID(ctx, req.FromUser); err == nil {
				item.FromName = sender.Name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func validateSubmission(sub Submission) error {
	for _, field := range []struct{ name, value string }{
		{"name", sub.Name},
		{"gender", sub.Gender},
		{"mobile", sub.Mobile},
		{"email", sub.Email},
		{"blood_group", sub.BloodGroup},
		{"city", sub.City},
		{"state", sub.State},
	} {
		if field.value == "" {
			return ValidationError{Field: field.name}
		}
	}
	return nil
}

func donorEmails(records []donor.Record) []string {
	emails := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Email != "" {
			emails = append(emails, rec.Email)
		}
	}
	return emails
}

func paginate(records []donor.Record, page int) DonorPage {
	total := len(records)
	totalPages := (total + DonorsPerPage - 1) / DonorsPerPage
	if page < 1 {
		page = 1
	}

	start := (page - 1) * DonorsPerPage
	if start > total {
		start = total
	}
	end := start + DonorsPerPage
	if end > total {
		end = total
	}

	views := make([]DonorView, 0, end-start)
	for _, rec := range records[start:end] {
		views = append(views, DonorView{
			Name:       rec.Name,
			Phone:      rec.Phone,
			BloodGroup: rec.BloodGroup,
			City:       rec.City,
			State:      rec.State,
		})
	}

	return DonorPage{Donors: views, Page: page, TotalPages: totalPages, Total: total}
}

func confirmationBody(req BloodRequest) string {
	return fmt.Sprintf(`<p>Hello %s,</p>
<p>Your request for <b>%s</b> blood in %s, %s has been received.</p>
<p>We will connect you with donors soon.</p>`,
		html.EscapeString(req.Name), html.EscapeString(req.BloodGroup),
		html.EscapeString(req.City), html.EscapeString(req.State))
}

func alertBody(patientName, contactNumber, bloodGroup, city, state string) string {
	return fmt.Sprintf(`<h2>Urgent Blood Requirement</h2>
<p>Dear Donor,</p>
<p>We have an urgent request for blood donation:</p>
<ul>
    <li><b>Patient Name:</b> %s</li>
    <li><b>Blood Group:</b> %s</li>
    <li><b>Contact Number:</b> %s</li>
    <li><b>Location:</b> %s, %s</li>
</ul>
<p>Please contact the patient or hospital immediately if you can donate.</p>
<p>Thank you for saving lives!</p>`,
		html.EscapeString(patientName), html.EscapeString(bloodGroup),
		html.EscapeString(contactNumber), html.EscapeString(city), html.EscapeString(state))
}
