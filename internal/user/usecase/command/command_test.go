package command_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/plataforma/labstock/internal/user/domain"
	"github.com/plataforma/labstock/internal/user/usecase/command"
	"github.com/plataforma/labstock/pkg/auth"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByRole(role string, limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Exists(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, user := range r.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) CountActive() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, user := range r.users {
		if user.IsActive {
			n++
		}
	}
	return n, nil
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := command.NewRegisterUserHandler(repo)

	user, err := handler.Handle(command.RegisterUserCommand{
		Username:  "mgarcia",
		Email:     "mgarcia@example.edu",
		Password:  "secret123",
		FullName:  "Maria Garcia",
		StudentID: "S-2044",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if user.Role != domain.RoleStudent {
		t.Errorf("role = %q, want default %q", user.Role, domain.RoleStudent)
	}
	if !user.IsActive {
		t.Error("new user must be active")
	}
	if user.StudentID != "S-2044" {
		t.Errorf("student id = %q", user.StudentID)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if !auth.CheckPassword(user.Password, "secret123") {
		t.Error("stored hash does not verify")
	}
}

func TestRegisterUserRejections(t *testing.T) {
	repo := newFakeUserRepo()
	handler := command.NewRegisterUserHandler(repo)

	if _, err := handler.Handle(command.RegisterUserCommand{
		Username: "taken", Email: "taken@example.edu", Password: "secret123", FullName: "First",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tests := []struct {
		name    string
		cmd     command.RegisterUserCommand
		wantMsg string
	}{
		{
			name:    "missing username",
			cmd:     command.RegisterUserCommand{Email: "a@b.c", Password: "secret123", FullName: "A"},
			wantMsg: "username is required",
		},
		{
			name:    "short password",
			cmd:     command.RegisterUserCommand{Username: "u2", Email: "a@b.c", Password: "abc", FullName: "A"},
			wantMsg: "at least 6 characters",
		},
		{
			name:    "duplicate username",
			cmd:     command.RegisterUserCommand{Username: "taken", Email: "new@b.c", Password: "secret123", FullName: "A"},
			wantMsg: "username already exists",
		},
		{
			name:    "duplicate email",
			cmd:     command.RegisterUserCommand{Username: "u3", Email: "taken@example.edu", Password: "secret123", FullName: "A"},
			wantMsg: "email already exists",
		},
		{
			name:    "invalid role",
			cmd:     command.RegisterUserCommand{Username: "u4", Email: "u4@b.c", Password: "secret123", FullName: "A", Role: "janitor"},
			wantMsg: "invalid role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	if _, err := register.Handle(command.RegisterUserCommand{
		Username: "mgarcia", Email: "mgarcia@example.edu", Password: "secret123", FullName: "Maria Garcia",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	login := command.NewLoginUserHandler(repo)

	resp, err := login.Handle(command.LoginUserCommand{Username: "mgarcia", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("login returned empty token")
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.Username != "mgarcia" || claims.Role != domain.RoleStudent {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginUserRejections(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	user, err := register.Handle(command.RegisterUserCommand{
		Username: "mgarcia", Email: "mgarcia@example.edu", Password: "secret123", FullName: "Maria Garcia",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	login := command.NewLoginUserHandler(repo)

	if _, err := login.Handle(command.LoginUserCommand{Username: "mgarcia", Password: "wrong"}); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := login.Handle(command.LoginUserCommand{Username: "nobody", Password: "secret123"}); err == nil {
		t.Error("unknown user accepted")
	}

	// Deactivated accounts cannot log in.
	stored, _ := repo.FindByID(user.ID)
	stored.IsActive = false
	if err := repo.Update(stored); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := login.Handle(command.LoginUserCommand{Username: "mgarcia", Password: "secret123"}); err == nil {
		t.Error("deactivated account accepted")
	}
}

func TestChangeRole(t *testing.T) {
	repo := newFakeUserRepo()
	register := command.NewRegisterUserHandler(repo)
	user, err := register.Handle(command.RegisterUserCommand{
		Username: "mgarcia", Email: "mgarcia@example.edu", Password: "secret123", FullName: "Maria Garcia",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	handler := command.NewChangeRoleHandler(repo)

	updated, err := handler.Handle(command.ChangeRoleCommand{UserID: user.ID, Role: domain.RoleTeacher})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if updated.Role != domain.RoleTeacher {
		t.Errorf("role = %q, want %q", updated.Role, domain.RoleTeacher)
	}

	if _, err := handler.Handle(command.ChangeRoleCommand{UserID: user.ID, Role: "janitor"}); err == nil {
		t.Error("invalid role accepted")
	}
}
