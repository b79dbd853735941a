package account

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"bookstore/internal/domain"
	"bookstore/internal/mailer"
	tokenrepo "bookstore/internal/repository/token"
)

// memoryUserRepo is a lightweight in-memory user repository for tests.
type memoryUserRepo struct {
	nextID int64
	byID   map[int64]domain.User
}

type memoryTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, byID: make(map[int64]domain.User)}
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

// Uniqueness and lookup are case-insensitive, mirroring the lower() unique
// indexes and the lower()-based login query.
func (r *memoryUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return nil, domain.ErrAlreadyExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = u
	clone := u
	return &clone, nil
}

func (r *memoryUserRepo) GetByUsernameOrEmail(_ context.Context, term string) (*domain.User, error) {
	for _, u := range r.byID {
		if strings.EqualFold(u.Username, term) || strings.EqualFold(u.Email, term) {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := u
	return &clone, nil
}

func (r *memoryUserRepo) SearchPaged(_ context.Context, _ string, _, _ int) ([]domain.User, int, error) {
	return nil, 0, nil
}

func (r *memoryUserRepo) SetAdmin(_ context.Context, id int64, isAdmin bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsAdmin = isAdmin
	r.byID[id] = u
	return nil
}

func (r *memoryUserRepo) IsAdmin(_ context.Context, id int64) (bool, error) {
	u, ok := r.byID[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	return u.IsAdmin, nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryUserRepo) Count(_ context.Context) (int, error) {
	return len(r.byID), nil
}

func (r *memoryTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, exists := r.tokens[t.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[t.Token] = t
	return nil
}

func (r *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := t
	return &clone, nil
}

func (r *memoryTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func newTestService(users *memoryUserRepo, tokens *memoryTokenRepo) *Service {
	return New(users, tokens, mailer.Noop{}, nil, zerolog.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMemoryUserRepo()
	svc := newTestService(users, newMemoryTokenRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Username: "reader",
		Email:    "Reader@Example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if u.Email != "reader@example.com" {
		t.Fatalf("email not lowered: %q", u.Email)
	}
	if u.PasswordHash == "hunter22" {
		t.Fatal("password stored in the clear")
	}

	got, token, err := svc.Login(ctx, "reader", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %d != %d", got.ID, u.ID)
	}

	if _, _, err := svc.Login(ctx, "reader", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "hunter22"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterUniquenessIgnoresCase(t *testing.T) {
	users := newMemoryUserRepo()
	svc := newTestService(users, newMemoryTokenRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Username: "Bob", Email: "Bob@Example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Register(ctx, RegisterInput{Username: "bob", Email: "other@example.com", Password: "hunter22"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("case-variant username accepted: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "other", Email: "BOB@example.com", Password: "hunter22"}); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("case-variant email accepted: %v", err)
	}

	// Any casing of the login term resolves to the one account.
	got, _, err := svc.Login(ctx, "BOB", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %d != %d", got.ID, u.ID)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	svc := newTestService(newMemoryUserRepo(), newMemoryTokenRepo())
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "", Email: "a@b.c", Password: "hunter22"},
		{Username: "x", Email: "", Password: "hunter22"},
		{Username: "x", Email: "a@b.c", Password: "   "},
		{Username: "x", Email: "a@b.c", Password: "short"},
	}
	for i, in := range cases {
		if _, err := svc.Register(ctx, in); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestLoginAcceptsLegacyCredentials(t *testing.T) {
	users := newMemoryUserRepo()
	svc := newTestService(users, newMemoryTokenRepo())
	ctx := context.Background()

	sum := sha256.Sum256([]byte("old-secret"))
	hexDigest := hex.EncodeToString(sum[:])

	seed := []struct {
		username string
		stored   string
	}{
		{"plain", "old-secret"},
		{"hexed", hexDigest},
	}
	for _, s := range seed {
		if _, err := users.Create(ctx, domain.User{
			Username:     s.username,
			Email:        s.username + "@example.com",
			PasswordHash: s.stored,
		}); err != nil {
			t.Fatalf("seed %s: %v", s.username, err)
		}
	}

	for _, s := range seed {
		u, _, err := svc.Login(ctx, s.username, "old-secret")
		if err != nil {
			t.Fatalf("legacy login %s failed: %v", s.username, err)
		}
		// The stored value stays as imported; nothing upgrades it.
		if u.PasswordHash != s.stored {
			t.Fatalf("stored credential for %s changed", s.username)
		}
	}
}

func TestTokenLifecycle(t *testing.T) {
	users := newMemoryUserRepo()
	tokens := newMemoryTokenRepo()
	svc := newTestService(users, tokens)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Username: "reader", Email: "r@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, token, err := svc.Login(ctx, "reader", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := svc.LookupByToken(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user from token: %d", got.ID)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.LookupByToken(ctx, token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
	// Logging out twice is a no-op.
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}
