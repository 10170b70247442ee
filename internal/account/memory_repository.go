package account

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email || user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) UpdateProfile(_ context.Context, id string, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Name = profile.Name
	user.Email = profile.Email
	user.Phone = profile.Phone
	user.BloodGroup = profile.BloodGroup
	user.Address = profile.Address
	user.City = profile.City
	user.State = profile.State
	r.users[id] = user
	return nil
}

func (r *memoryRepository) SetDonor(_ context.Context, id string, donor bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.IsDonor = donor
	r.users[id] = user
	return nil
}

func (r *memoryRepository) SetPhoto(_ context.Context, id, photo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Photo = photo
	r.users[id] = user
	return nil
}
