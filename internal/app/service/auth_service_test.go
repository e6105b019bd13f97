package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"campus_connect/internal/common"
	"campus_connect/internal/common/security"
	"campus_connect/internal/domain/model"
	"campus_connect/internal/domain/roles"
	"campus_connect/internal/platform/config"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return common.ErrConflict
	}
	cp := *user
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.byEmail {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateClubMembership(_ context.Context, id string, isMember bool, clubName, position *string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.IsClubMember = isMember
			u.ClubName = clubName
			u.Position = position
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	for _, u := range r.byEmail {
		if u.ID == user.ID {
			u.Name = user.Name
			u.Company = user.Company
			u.Location = user.Location
			u.Bio = user.Bio
			u.LinkedIn = user.LinkedIn
			u.ProfileImage = user.ProfileImage
			return nil
		}
	}
	return common.ErrNotFound
}

var testRule = roles.EmailRule{Domain: "@kongu.edu", ProgramYears: 4}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()

	repo := newFakeUserRepo()
	return NewAuthService(repo, testRule, "admin@kongu.edu"), repo
}

const strongPassword = "Str0ng!pass"

func TestRegister_Success(t *testing.T) {
	svc, repo := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Priya", Email: "Priya.24ECE@kongu.edu", Password: strongPassword,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.HashedPassword != "" {
		t.Fatal("hashed password must not be returned")
	}

	stored := repo.byEmail["priya.24ece@kongu.edu"]
	if stored == nil {
		t.Fatal("email must be lowercased on storage")
	}
	// Role detection runs once at registration against the same rule.
	if want := string(testRule.DetectRole(stored.Email)); stored.Role != want {
		t.Fatalf("role = %q, want %q", stored.Role, want)
	}
	if stored.Department != "ECE" {
		t.Fatalf("department = %q", stored.Department)
	}
	if stored.BatchYear == nil || *stored.BatchYear%100 != 24 {
		t.Fatalf("batch year = %v", stored.BatchYear)
	}
	if stored.HashedPassword == strongPassword {
		t.Fatal("password must be hashed")
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	futureYY := (time.Now().Year() + 1) % 100

	tests := []struct {
		name     string
		req      RegisterRequest
		sentinel error
		message  string
	}{
		{"missing_fields", RegisterRequest{Email: "x.24cse@kongu.edu"}, common.ErrBadRequest, ""},
		{"weak_password", RegisterRequest{Name: "X", Email: "x.24cse@kongu.edu", Password: "short"}, common.ErrValidation, "at least 8 characters"},
		{"no_capital", RegisterRequest{Name: "X", Email: "x.24cse@kongu.edu", Password: "n0capital!"}, common.ErrValidation, "capital letter"},
		{"foreign_domain", RegisterRequest{Name: "X", Email: "x.24cse@gmail.com", Password: strongPassword}, common.ErrValidation, "exclusive to @kongu.edu"},
		{"no_year_suffix", RegisterRequest{Name: "X", Email: "plainname@kongu.edu", Password: strongPassword}, common.ErrValidation, "invalid email format"},
		{"year_zero", RegisterRequest{Name: "X", Email: "x.00cse@kongu.edu", Password: strongPassword}, common.ErrValidation, "year must be between"},
		{"future_year", RegisterRequest{Name: "X", Email: fmt.Sprintf("x.%02dcse@kongu.edu", futureYY), Password: strongPassword}, common.ErrValidation, "year must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("error = %v, want %v", err, tt.sentinel)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("error = %q, want containing %q", err.Error(), tt.message)
			}
		})
	}
}

func TestRegister_AdminAccount(t *testing.T) {
	svc, repo := newTestAuthService(t)

	// The literal admin address has no year suffix and must still register.
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Admin", Email: "admin@kongu.edu", Password: strongPassword,
	})
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}
	if resp.User.Role != string(roles.RoleAdmin) || !resp.User.IsAdmin {
		t.Fatalf("admin user = %+v", resp.User)
	}
	if repo.byEmail["admin@kongu.edu"] == nil {
		t.Fatal("admin not stored")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	req := RegisterRequest{Name: "X", Email: "x.24cse@kongu.edu", Password: strongPassword}

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("duplicate register error = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{
		Name: "X", Email: "x.24cse@kongu.edu", Password: strongPassword,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "X.24CSE@kongu.edu", Password: strongPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.User.HashedPassword != "" {
		t.Fatalf("login response = %+v", resp)
	}

	if _, err := svc.Login(ctx, LoginRequest{Email: "x.24cse@kongu.edu", Password: "Wrong!pass1"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("wrong password error = %v", err)
	}
	// Unknown account and bad password are indistinguishable to the caller.
	if _, err := svc.Login(ctx, LoginRequest{Email: "nobody@kongu.edu", Password: strongPassword}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("unknown account error = %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	// No seed password configured: nothing happens.
	if err := svc.EnsureAdmin(ctx, "Admin", ""); err != nil {
		t.Fatalf("seed without password: %v", err)
	}
	if len(repo.byEmail) != 0 {
		t.Fatal("no user should be seeded without a password")
	}

	if err := svc.EnsureAdmin(ctx, "Admin", strongPassword); err != nil {
		t.Fatalf("seed: %v", err)
	}
	admin := repo.byEmail["admin@kongu.edu"]
	if admin == nil || !admin.IsAdmin || admin.Role != string(roles.RoleAdmin) {
		t.Fatalf("seeded admin = %+v", admin)
	}

	// Idempotent on restart.
	if err := svc.EnsureAdmin(ctx, "Admin", strongPassword); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("users after second seed = %d", len(repo.byEmail))
	}
}
