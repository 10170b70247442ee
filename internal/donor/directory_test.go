package donor

import (
	"context"
	"errors"
	"testing"
)

func TestFindExactMatchOnly(t *testing.T) {
	dir := NewMemoryDirectory(
		Record{Name: "Ravi", Email: "ravi@example.com", BloodGroup: "O+", City: "Jaipur", State: "Rajasthan"},
		Record{Name: "Meena", Email: "meena@example.com", BloodGroup: "O+", City: "Jaipur", State: "Rajasthan"},
		Record{Name: "Wrong city", Email: "a@example.com", BloodGroup: "O+", City: "Jodhpur", State: "Rajasthan"},
		Record{Name: "Wrong group", Email: "b@example.com", BloodGroup: "A+", City: "Jaipur", State: "Rajasthan"},
		Record{Name: "Wrong state", Email: "c@example.com", BloodGroup: "O+", City: "Jaipur", State: "Punjab"},
	)

	matches, err := dir.Find(context.Background(), Criteria{BloodGroup: "O+", City: "Jaipur", State: "Rajasthan"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.BloodGroup != "O+" || m.City != "Jaipur" || m.State != "Rajasthan" {
			t.Fatalf("partial match leaked through: %+v", m)
		}
	}
}

func TestFindIsCaseSensitive(t *testing.T) {
	dir := NewMemoryDirectory(
		Record{Name: "Ravi", Email: "ravi@example.com", BloodGroup: "O+", City: "Jaipur", State: "Rajasthan"},
	)

	matches, err := dir.Find(context.Background(), Criteria{BloodGroup: "o+", City: "jaipur", State: "rajasthan"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches for differently cased query, got %d", len(matches))
	}
}

func TestFindUnavailable(t *testing.T) {
	dir := NewMemoryDirectory()
	dir.SetFailing(true)

	_, err := dir.Find(context.Background(), Criteria{BloodGroup: "O+", City: "Jaipur", State: "Rajasthan"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
