package memory

import (
	"context"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) user.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	if newUser.Role == "" {
		newUser.Role = user.RoleEmployee
	}
	newUser.CreatedAt = r.store.Now()
	r.store.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepository) ExistsByIDOrEmail(ctx context.Context, id, email *string) (bool, error) {
	switch {
	case id != nil:
		_, err := r.GetByID(ctx, *id)
		return err == nil, nil
	case email != nil:
		_, err := r.GetByEmail(ctx, *email)
		return err == nil, nil
	}
	return false, nil
}
