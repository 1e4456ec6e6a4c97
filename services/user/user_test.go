package user

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"lawease/config"
	"lawease/database"
	"lawease/models"
	"lawease/utils"
)

func TestMain(m *testing.M) {
	config.AppConfig.JWTSecret = "test-secret"
	os.Exit(m.Run())
}

type MockUserRepo struct {
	Users map[string]*models.User
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	u.ID = "user-" + u.Email
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MockUserRepo) Update(ctx context.Context, u *models.User) error { return nil }

func (m *MockUserRepo) SetTokenHash(ctx context.Context, id, hash string) error {
	u, ok := m.Users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.TokenHash = hash
	return nil
}

func (m *MockUserRepo) SetRole(ctx context.Context, id string, role models.Role) error { return nil }

type MockTokenCache struct {
	Hashes map[string]string
}

func (m *MockTokenCache) Store(ctx context.Context, userID, hash string) error {
	m.Hashes[userID] = hash
	return nil
}

func (m *MockTokenCache) Clear(ctx context.Context, userID string) error {
	delete(m.Hashes, userID)
	return nil
}

func TestVerifyPasswordComplexity(t *testing.T) {
	tests := []struct {
		pw    string
		valid bool
	}{
		{"Str0ng!pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoNumbers!!", false},
		{"NoSymbols123", false},
	}
	for _, tt := range tests {
		err := VerifyPasswordComplexity(tt.pw)
		if (err == nil) != tt.valid {
			t.Errorf("VerifyPasswordComplexity(%q) = %v, want valid %v", tt.pw, err, tt.valid)
		}
		if err != nil && !utils.IsKind(err, utils.KindValidation) {
			t.Errorf("VerifyPasswordComplexity(%q) kind = %v, want validation", tt.pw, err)
		}
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	repo := &MockUserRepo{Users: map[string]*models.User{}}
	cache := &MockTokenCache{Hashes: map[string]string{}}
	svc := NewUserService(repo, cache, time.Hour, nil)
	ctx := context.Background()

	reg, err := svc.Register(ctx, models.RegisterRequest{Name: " Ravi ", Email: "Ravi@Example.com", Password: "Str0ng!pass"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.User.Email != "ravi@example.com" || reg.User.Role != models.RoleClient || reg.Token == "" {
		t.Errorf("register response = %+v", reg)
	}
	if reg.User.PasswordHash == "Str0ng!pass" {
		t.Error("password stored in clear text")
	}

	if _, err := svc.Register(ctx, models.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "Str0ng!pass"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate Register() error = %v, want ErrEmailTaken", err)
	}

	if _, err := svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v", err)
	}
	if _, err := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "Str0ng!pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown) error = %v", err)
	}

	login, err := svc.Login(ctx, models.LoginRequest{Email: "ravi@example.com", Password: "Str0ng!pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	userID := login.User.ID
	if cache.Hashes[userID] != utils.HashToken(login.Token) || repo.Users[userID].TokenHash != cache.Hashes[userID] {
		t.Error("token hash was not recorded")
	}
	claims, err := utils.ParseToken(login.Token)
	if err != nil || claims.UserID != userID || claims.Role != string(models.RoleClient) {
		t.Errorf("ParseToken() = %+v, %v", claims, err)
	}

	actor := models.Actor{UserID: userID, Role: models.RoleClient}
	if err := svc.Logout(ctx, actor); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok := cache.Hashes[userID]; ok || repo.Users[userID].TokenHash != "" {
		t.Error("token hash survived logout")
	}

	me, err := svc.Me(ctx, actor)
	if err != nil || me.ID != userID {
		t.Errorf("Me() = %+v, %v", me, err)
	}
	if _, err := svc.Me(ctx, models.Actor{}); !errors.Is(err, utils.ErrUnauthenticated) {
		t.Errorf("anonymous Me() error = %v", err)
	}
}
