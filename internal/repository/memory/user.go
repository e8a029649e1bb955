package memory

import (
	"context"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.Username]; exists {
		return repository.ErrUsernameTaken
	}

	u := *user
	r.s.users[user.Username] = &u
	return r.s.persistUsers()
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.ID == id {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.Username]; !ok {
		return repository.ErrNotFound
	}

	u := *user
	r.s.users[user.Username] = &u
	return r.s.persistUsers()
}

func (r *userRepo) Rename(ctx context.Context, oldUsername string, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[oldUsername]; !ok {
		return repository.ErrNotFound
	}
	if _, exists := r.s.users[user.Username]; exists {
		return repository.ErrUsernameTaken
	}

	// Old key removed and new key inserted under the same lock.
	delete(r.s.users, oldUsername)
	u := *user
	r.s.users[user.Username] = &u
	return r.s.persistUsers()
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		u := *user
		out = append(out, &u)
	}
	return out, nil
}
