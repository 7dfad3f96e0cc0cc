package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jortega-dev/job-board-api/internal/model"
	"github.com/jortega-dev/job-board-api/internal/repository"
	"github.com/jortega-dev/job-board-api/internal/utils"
)

// fakeUsers is an in-memory UserStore.
type fakeUsers struct {
	users  map[uint64]model.User
	nextID uint64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[uint64]model.User{}, nextID: 1}
}

func (f *fakeUsers) add(u model.User) model.User {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUsers) Create(_ context.Context, name *string, email, passwordHash, role string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	return f.add(model.User{Name: name, Email: email, PasswordHash: passwordHash, Role: role}), nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func newAuth(users *fakeUsers) *AuthService {
	return NewAuthService(users, "test-secret", 60, 4)
}

func TestRegisterNormalizesEmailAndDefaultsRole(t *testing.T) {
	users := newFakeUsers()
	svc := newAuth(users)

	got, err := svc.Register(context.Background(), RegisterInput{Email: "  Ana@Example.COM ", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("email = %q, want normalized lower-case", got.Email)
	}
	if got.Role != model.RoleStudent {
		t.Errorf("role = %q, want %q", got.Role, model.RoleStudent)
	}
	stored := users.users[got.ID]
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Errorf("password stored without hashing")
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	users := newFakeUsers()
	svc := newAuth(users)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Email: "ANA@example.com", Password: "other456"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	svc := newAuth(newFakeUsers())
	for _, in := range []RegisterInput{{Email: "", Password: "p"}, {Email: "a@b.c", Password: ""}} {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Register(%+v) err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUsers()
	svc := newAuth(users)
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "secret123")
	_, wrongPassErr := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(unknownErr, ErrUnauthorized) || !errors.Is(wrongPassErr, ErrUnauthorized) {
		t.Fatalf("errs = %v / %v, want ErrUnauthorized for both", unknownErr, wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Errorf("unknown-email and wrong-password errors differ: %q vs %q", unknownErr, wrongPassErr)
	}
}

func TestLoginIssuesTokenWithLiveClaims(t *testing.T) {
	users := newFakeUsers()
	svc := newAuth(users)
	name := "Ana"
	u := users.add(model.User{Name: &name, Email: "ana@example.com", Role: model.RoleRecruiter})
	hash, err := utils.HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u.PasswordHash = hash
	users.users[u.ID] = u

	tok, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := utils.ParseAccessToken("test-secret", tok.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if p.UserID != u.ID || p.Email != u.Email || p.Role != model.RoleRecruiter || p.Name != "Ana" {
		t.Errorf("payload = %+v, want claims of the stored user", p)
	}
}

func TestIdentifyRejectsDeletedUser(t *testing.T) {
	svc := newAuth(newFakeUsers())
	_, err := svc.Identify(context.Background(), utils.TokenPayload{UserID: 42, Email: "x@y.z", Role: model.RoleStudent})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestIdentifyRejectsStaleRole(t *testing.T) {
	users := newFakeUsers()
	svc := newAuth(users)
	u := users.add(model.User{Email: "ana@example.com", Role: model.RoleStudent})

	_, err := svc.Identify(context.Background(), utils.TokenPayload{UserID: u.ID, Email: u.Email, Role: model.RoleRecruiter})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized on role mismatch", err)
	}
}

func TestIdentifyCarriesCompanyID(t *testing.T) {
	users := newFakeUsers()
	svc := newAuth(users)
	company := uint64(7)
	u := users.add(model.User{Email: "rec@corp.com", Role: model.RoleRecruiter, CompanyID: &company})

	id, err := svc.Identify(context.Background(), utils.TokenPayload{UserID: u.ID, Email: u.Email, Role: model.RoleRecruiter})
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if id.CompanyID == nil || *id.CompanyID != company {
		t.Errorf("CompanyID = %v, want %d", id.CompanyID, company)
	}
}

func TestProfileMissingUser(t *testing.T) {
	svc := newAuth(newFakeUsers())
	if _, err := svc.Profile(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
