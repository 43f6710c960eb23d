package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/internal/authz"
)

// memRepo is an in-memory Repository. Like the real store it rejects
// duplicate usernames and emails on insert.
type memRepo struct {
	nextID int64
	users  map[int64]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[int64]*User)}
}

func (m *memRepo) Create(ctx context.Context, u *User) (*User, error) {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, ErrDuplicateUser
		}
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.users[stored.ID] = &stored
	return &stored, nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) List(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memRepo) Update(ctx context.Context, id int64, u *User) (*User, error) {
	if _, ok := m.users[id]; !ok {
		return nil, nil
	}
	stored := *u
	stored.ID = id
	m.users[id] = &stored
	cp := stored
	return &cp, nil
}

func (m *memRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if u, ok := m.users[id]; ok {
		now := time.Now()
		u.LastLogin = &now
	}
	return nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	tokens := auth.NewTokenManager("test-secret", 10*time.Minute)
	rules := authz.Rules{EnforceTaskOwnership: true, EnforceUserSelfService: true}
	return NewService(repo, tokens, rules), repo
}

func registerReq(username, email string) *RegisterRequest {
	return &RegisterRequest{
		Username: username,
		Password: "hunter22",
		Email:    email,
		Role:     auth.RoleUser,
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if u.PasswordHash == "hunter22" {
		t.Fatal("password must not be stored in the clear")
	}

	// Same username, any email.
	if _, err := svc.Register(ctx, registerReq("alice", "other@example.com")); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for duplicate username, got %v", err)
	}
	// Same email, different username.
	if _, err := svc.Register(ctx, registerReq("bob", "alice@example.com")); !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser for duplicate email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *RegisterRequest
	}{
		{"missing username", &RegisterRequest{Password: "x", Email: "a@b.c", Role: auth.RoleUser}},
		{"missing password", &RegisterRequest{Username: "a", Email: "a@b.c", Role: auth.RoleUser}},
		{"missing email", &RegisterRequest{Username: "a", Password: "x", Role: auth.RoleUser}},
		{"missing role", &RegisterRequest{Username: "a", Password: "x", Email: "a@b.c"}},
		{"unknown role", &RegisterRequest{Username: "a", Password: "x", Email: "a@b.c", Role: "superuser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.req); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

// A wrong password and an unknown username must be indistinguishable so the
// endpoint cannot be used to probe which usernames exist.
func TestValidateDoesNotLeakExistence(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("alice", "alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errWrongPassword := svc.Validate(ctx, &ValidateRequest{Username: "alice", Password: "wrong"})
	_, _, errUnknownUser := svc.Validate(ctx, &ValidateRequest{Username: "nobody", Password: "whatever"})

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Errorf("error messages differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestValidateIssuesTokenAndTouchesLastLogin(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("alice", "alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, token, err := svc.Validate(ctx, &ValidateRequest{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	tokens := auth.NewTokenManager("test-secret", 10*time.Minute)
	p, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if p.UserID != u.ID || p.Username != "alice" || p.Role != auth.RoleUser {
		t.Errorf("unexpected principal %+v", p)
	}

	stored, _ := repo.GetByID(ctx, u.ID)
	if stored.LastLogin == nil {
		t.Error("expected last login to be recorded")
	}
}

func TestUpdateEnforcesSelfOrAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	alice, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	other := &auth.Principal{UserID: alice.ID + 100, Username: "bob", Role: auth.RoleUser}
	newEmail := "new@example.com"
	if _, err := svc.Update(ctx, other, alice.ID, &UpdateUserRequest{Email: &newEmail}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another user, got %v", err)
	}

	self := &auth.Principal{UserID: alice.ID, Username: "alice", Role: auth.RoleUser}
	updated, err := svc.Update(ctx, self, alice.ID, &UpdateUserRequest{Email: &newEmail})
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if updated.Email != newEmail {
		t.Errorf("expected email %q, got %q", newEmail, updated.Email)
	}

	admin := &auth.Principal{UserID: alice.ID + 100, Username: "root", Role: auth.RoleAdmin}
	role := auth.RoleManager
	updated, err = svc.Update(ctx, admin, alice.ID, &UpdateUserRequest{Role: &role})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Role != auth.RoleManager {
		t.Errorf("expected role %q, got %q", auth.RoleManager, updated.Role)
	}
}

func TestDeleteEnforcesSelfOrAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	alice, err := svc.Register(ctx, registerReq("alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	other := &auth.Principal{UserID: alice.ID + 1, Role: auth.RoleUser}
	if err := svc.Delete(ctx, other, alice.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	self := &auth.Principal{UserID: alice.ID, Role: auth.RoleUser}
	if err := svc.Delete(ctx, self, alice.ID); err != nil {
		t.Fatalf("self delete: %v", err)
	}

	if _, err := svc.RoleByUsername(ctx, "alice"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound after delete, got %v", err)
	}
}

func TestRoleByUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := registerReq("carol", "carol@example.com")
	req.Role = auth.RoleManager
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("register: %v", err)
	}

	role, err := svc.RoleByUsername(ctx, "carol")
	if err != nil {
		t.Fatalf("role lookup: %v", err)
	}
	if role != auth.RoleManager {
		t.Errorf("expected role %q, got %q", auth.RoleManager, role)
	}
}
