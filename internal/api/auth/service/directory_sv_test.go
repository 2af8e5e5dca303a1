package authService

import (
	"context"
	"strings"
	"testing"

	"AssistantGolang/internal/api/auth"
	authRepository "AssistantGolang/internal/api/auth/repository"
	"AssistantGolang/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userStore struct {
	users []entity.User
}

type storeUsers struct{ store *userStore }

func (r *storeUsers) CreateUser(_ context.Context, user entity.User) error {
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *storeUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (r *storeUsers) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (r *storeUsers) SearchByName(_ context.Context, name string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.store.users {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *storeUsers) GetByNameExact(_ context.Context, name string) (entity.User, error) {
	for _, u := range r.store.users {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (r *storeUsers) ListNames(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.store.users))
	for _, u := range r.store.users {
		names = append(names, u.Name)
	}
	return names, nil
}

func (r *storeUsers) UpdateUser(_ context.Context, user entity.User) error {
	for i, u := range r.store.users {
		if u.ID == user.ID {
			r.store.users[i] = user
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (r *storeUsers) UpdateGoogleTokens(_ context.Context, id string, calendarToken string, gmailToken string) error {
	for i, u := range r.store.users {
		if u.ID == id {
			r.store.users[i].GoogleCalendarToken = calendarToken
			r.store.users[i].GmailToken = gmailToken
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (r *storeUsers) DeleteUser(_ context.Context, id string) error {
	for i, u := range r.store.users {
		if u.ID == id {
			r.store.users = append(r.store.users[:i], r.store.users[i+1:]...)
			return nil
		}
	}
	return auth.ErrUserNotFound
}

type storeRepository struct{ store *userStore }

func (r *storeRepository) NewClient(_ bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    &storeUsers{store: r.store},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newDirectory(users ...entity.User) DirectoryDomain {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &directoryDomainImpl{log: logger, repo: &storeRepository{store: &userStore{users: users}}}
}

func TestResolveByName(t *testing.T) {
	directory := newDirectory(
		entity.User{ID: "u-caleb", Name: "Caleb Turner"},
		entity.User{ID: "u-sarah", Name: "Sarah Kim"},
	)

	tests := []struct {
		name   string
		spoken string
		wantID string
	}{
		{"partial match", "Caleb", "u-caleb"},
		{"lowercase fragment", "sarah", "u-sarah"},
		{"full name", "Caleb Turner", "u-caleb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := directory.ResolveByName(context.Background(), tt.spoken)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
		})
	}
}

func TestResolveByNameUnknown(t *testing.T) {
	directory := newDirectory(entity.User{ID: "u-caleb", Name: "Caleb Turner"})

	_, err := directory.ResolveByName(context.Background(), "Xavier")

	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestListNames(t *testing.T) {
	directory := newDirectory(
		entity.User{ID: "u-caleb", Name: "Caleb Turner"},
		entity.User{ID: "u-sarah", Name: "Sarah Kim"},
	)

	names, err := directory.ListNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Caleb Turner", "Sarah Kim"}, names)
}
