package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/olepukh/storefront/internal/config"
	domainErrors "github.com/olepukh/storefront/internal/domain/errors"
	"github.com/olepukh/storefront/internal/domain/model"
)

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (stubHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubStrategy struct{}

func (stubStrategy) IssueToken(userID int64) (string, error) { return "token", nil }

func (stubStrategy) ParseToken(token string) (int64, error) {
	if token != "token" {
		return 0, errors.New("bad token")
	}
	return 7, nil
}

func (stubStrategy) Name() string { return "stub" }

type accountUserRepository struct {
	createFn     func(context.Context, string, string, string, bool) (*model.User, error)
	getByEmailFn func(context.Context, string) (*model.User, error)
}

func (s accountUserRepository) Create(ctx context.Context, email, name, hash string, admin bool) (*model.User, error) {
	return s.createFn(ctx, email, name, hash, admin)
}

func (s accountUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (accountUserRepository) GetByID(context.Context, int64) (*model.User, error) {
	panic("not implemented")
}

func TestAccountRegisterGrantsAdminFromConfig(t *testing.T) {
	cfg := &config.Config{AdminEmails: []string{"boss@example.com"}}
	uc := NewAccountUseCase(accountUserRepository{createFn: func(_ context.Context, email, name, hash string, admin bool) (*model.User, error) {
		if email != "boss@example.com" {
			t.Fatalf("email should be lowercased, got %s", email)
		}
		if !admin {
			t.Fatal("configured admin email should get admin rights")
		}
		return &model.User{ID: 1, Email: email, Name: name, Admin: admin}, nil
	}}, stubHasher{}, stubStrategy{}, cfg)

	usr, token, err := uc.Register(context.Background(), "Boss@Example.com", "Boss", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !usr.Admin || token != "token" {
		t.Fatalf("unexpected result %+v %q", usr, token)
	}
}

func TestAccountRegisterRejectsBlankCredentials(t *testing.T) {
	uc := NewAccountUseCase(accountUserRepository{}, stubHasher{}, stubStrategy{}, &config.Config{})
	if _, _, err := uc.Register(context.Background(), "  ", "Ann", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "ann@example.com", "Ann", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAccountAuthenticate(t *testing.T) {
	repo := accountUserRepository{getByEmailFn: func(_ context.Context, email string) (*model.User, error) {
		if email != "ann@example.com" {
			return nil, domainErrors.ErrNotFound
		}
		return &model.User{ID: 7, Email: email, PasswordHash: "hash:secret"}, nil
	}}
	uc := NewAccountUseCase(repo, stubHasher{}, stubStrategy{}, &config.Config{})

	usr, token, err := uc.Authenticate(context.Background(), "Ann@Example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.ID != 7 || token != "token" {
		t.Fatalf("unexpected result %+v %q", usr, token)
	}

	if _, _, err := uc.Authenticate(context.Background(), "ann@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for bad password, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown account should read as invalid credentials, got %v", err)
	}
}

func TestAccountParseToken(t *testing.T) {
	uc := NewAccountUseCase(accountUserRepository{}, stubHasher{}, stubStrategy{}, &config.Config{})
	id, err := uc.ParseToken("token")
	if err != nil || id != 7 {
		t.Fatalf("unexpected result %d %v", id, err)
	}
	if _, err := uc.ParseToken(""); err == nil {
		t.Fatal("empty token should be rejected")
	}
}
