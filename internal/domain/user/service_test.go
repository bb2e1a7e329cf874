package user

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemStore() *memStore { return &memStore{users: map[string]User{}} }

func (m *memStore) Create(_ context.Context, u User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return nil, ErrConflict
	}
	m.users[u.Email] = u
	return &u, nil
}

func (m *memStore) Get(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *memStore) Update(_ context.Context, email string, fields map[string]any) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "photoURL":
			u.PhotoURL = v.(string)
		case "role":
			u.Role = v.(string)
		case "trainerStatus":
			u.TrainerStatus = v.(string)
		case "lastLoginAt":
			u.LastLoginAt = v.(time.Time)
		}
	}
	m.users[email] = u
	return &u, nil
}

func (m *memStore) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func TestService_RegisterTwice(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Email: " Jane@Fit.io ", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "jane@fit.io", u.Email)
	assert.Equal(t, RoleMember, u.Role)
	assert.Equal(t, TrainerStatusNone, u.TrainerStatus)

	_, err = svc.Register(ctx, RegisterInput{Email: "jane@fit.io", Name: "Jane again"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_RegisterValidation(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "not-an-email", Name: "x"})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestService_Role(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	role, err := svc.Role(ctx, "ghost@fit.io")
	require.NoError(t, err)
	assert.Empty(t, role)

	_, err = svc.Register(ctx, RegisterInput{Email: "boss@fit.io", Name: "Boss"})
	require.NoError(t, err)
	_, err = svc.SetRole(ctx, "BOSS@fit.io", RoleAdmin)
	require.NoError(t, err)

	role, err = svc.Role(ctx, "boss@fit.io")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = svc.SetRole(ctx, "boss@fit.io", "owner")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestService_UpdateProfile(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "jane@fit.io", Name: "Jane"})
	require.NoError(t, err)

	name := "  Jane Doe "
	u, err := svc.UpdateProfile(ctx, "jane@fit.io", UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.Name)

	_, err = svc.UpdateProfile(ctx, "jane@fit.io", UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.UpdateProfile(ctx, "ghost@fit.io", UpdateProfileInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_TouchLogin(t *testing.T) {
	svc := NewService(newMemStore())
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	_, err := svc.Register(ctx, RegisterInput{Email: "jane@fit.io", Name: "Jane"})
	require.NoError(t, err)

	later := at.Add(time.Hour)
	svc.now = func() time.Time { return later }
	u, err := svc.TouchLogin(ctx, "jane@fit.io")
	require.NoError(t, err)
	assert.Equal(t, later, u.LastLoginAt)
	assert.Equal(t, at, u.CreatedAt)
}

func TestService_Demote(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Demote(ctx, "")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.Demote(ctx, "ghost@fit.io")
	assert.ErrorIs(t, err, ErrNotFound)

	store.users["coach@fit.io"] = User{Email: "coach@fit.io", Role: RoleTrainer, TrainerStatus: TrainerStatusApproved}
	u, err := svc.Demote(ctx, "coach@fit.io")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, u.Role)
	assert.Equal(t, TrainerStatusRemoved, u.TrainerStatus)
}
