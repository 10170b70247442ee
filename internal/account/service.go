package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indicates a failed login attempt. Unknown email and
// wrong password deliberately collapse into the same error.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports a missing required field by name.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// Service manages account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new account service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Name       string
	Email      string
	Phone      string
	Password   string
	BloodGroup string
	Address    string
	City       string
	State      string
}

// Register creates a new user. Passwords are stored only as bcrypt hashes.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.BloodGroup = strings.ToUpper(strings.TrimSpace(input.BloodGroup))

	for _, field := range []struct{ name, value string }{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"password", input.Password},
	} {
		if field.value == "" {
			return User{}, ValidationError{Field: field.name}
		}
	}

	exists, err := s.repo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		BloodGroup:   input.BloodGroup,
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies credentials against the stored hash.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile overwrites the mutable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id string, profile Profile) error {
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	profile.BloodGroup = strings.ToUpper(strings.TrimSpace(profile.BloodGroup))
	return s.repo.UpdateProfile(ctx, id, profile)
}

// SetDonorVisibility enables or disables the user as a matchable donor.
func (s *Service) SetDonorVisibility(ctx context.Context, id string, donor bool) error {
	return s.repo.SetDonor(ctx, id, donor)
}

// SetPhoto stores an opaque photo reference on the profile.
func (s *Service) SetPhoto(ctx context.Context, id, photo string) error {
	return s.repo.SetPhoto(ctx, id, photo)
}
