package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bookstore/internal/credential"
	"bookstore/internal/domain"
	"bookstore/internal/mailer"
	"bookstore/internal/metrics"
	tokenrepo "bookstore/internal/repository/token"
	userrepo "bookstore/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when login/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles account registration and login flows.
type Service struct {
	users       userrepo.Repository
	tokens      *tokenManager
	mail        mailer.Mailer
	metrics     *metrics.Metrics
	log         zerolog.Logger
	accessTTL   time.Duration
	passwordMin int
}

func New(users userrepo.Repository, tokens tokenrepo.Repository, mail mailer.Mailer, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{
		users:       users,
		tokens:      newTokenManager(tokens),
		mail:        mail,
		metrics:     m,
		log:         log.With().Str("service", "account").Logger(),
		accessTTL:   48 * time.Hour,
		passwordMin: 6,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account with a freshly derived password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.Invalidf("username required")
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Invalidf("email required")
	}
	if err := validatePassword(in.Password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := credential.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SignupsTotal.Inc()
	}
	if err := s.mail.SendWelcome(u.Email, u.Username); err != nil {
		s.log.Warn().Err(err).Int64("user_id", u.ID).Msg("welcome mail failed")
	}
	return u, nil
}

// Login validates credentials and returns the user plus an issued access
// token. Accounts imported from the previous system may still carry a
// legacy password; those are accepted as-is and the stored value is left
// untouched.
func (s *Service) Login(ctx context.Context, login, password string) (*domain.User, string, error) {
	u, err := s.users.GetByUsernameOrEmail(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.countLogin("failure")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	switch {
	case credential.Verify(password, u.PasswordHash):
		s.countLogin("success")
	case credential.LegacyMatches(password, u.PasswordHash):
		s.countLogin("legacy")
		s.log.Info().Int64("user_id", u.ID).Msg("legacy credential accepted")
	default:
		s.countLogin("failure")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// Logout revokes the given token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.tokens.Revoke(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func (s *Service) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func validatePassword(p string, min int) error {
	if strings.TrimSpace(p) == "" {
		return domain.Invalidf("password required")
	}
	if len(p) < min {
		return domain.Invalidf("password must be at least %d characters", min)
	}
	return nil
}
