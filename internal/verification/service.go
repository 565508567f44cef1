package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

var (
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrCodeInvalid     = errors.New("invalid verification code")
	ErrCodeMaxAttempts = errors.New("maximum verification attempts exceeded")
	ErrNotStudentEmail = errors.New("email is not a recognized student address")
	ErrResendTooSoon   = errors.New("a verification code was just issued, retry shortly")
)

// UserResolver is the slice of the account store the verifier needs.
type UserResolver interface {
	EmailOf(ctx context.Context, userID int64) (string, error)
	MarkStudentVerified(ctx context.Context, userID int64) error
}

// Config carries the verification tunables.
type Config struct {
	CodeExpiry     time.Duration
	MaxAttempts    int
	ResendCooldown time.Duration
}

// Service issues and checks student verification codes and flips the
// account's verified flag on success.
type Service struct {
	repo     Repository
	provider EmailProvider
	users    UserResolver
	log      *logger.Logger
	cfg      Config
}

func NewService(repo Repository, provider EmailProvider, users UserResolver, log *logger.Logger, cfg Config) *Service {
	if cfg.CodeExpiry <= 0 {
		cfg.CodeExpiry = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = time.Minute
	}
	return &Service{
		repo:     repo,
		provider: provider,
		users:    users,
		log:      log,
		cfg:      cfg,
	}
}

// RequestCode issues a fresh 6-digit code to the user's registered email,
// invalidating any outstanding one. Resends inside the cooldown window
// are refused.
func (s *Service) RequestCode(ctx context.Context, userID int64) (*RequestCodeResponse, error) {
	email, err := s.users.EmailOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve email: %w", err)
	}
	if !isStudentEmail(email) {
		return nil, ErrNotStudentEmail
	}

	active, err := s.repo.GetActiveCode(ctx, userID)
	if err != nil && !errors.Is(err, ErrCodeNotFound) {
		return nil, fmt.Errorf("load active code: %w", err)
	}
	if active != nil && time.Since(active.CreatedAt) < s.cfg.ResendCooldown {
		return nil, ErrResendTooSoon
	}

	if err := s.repo.InvalidateCodes(ctx, userID); err != nil {
		s.log.Warn("failed to invalidate outstanding codes", "user_id", userID, "error", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	record := &Code{
		UserID:    userID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.cfg.CodeExpiry),
	}
	if err := s.repo.CreateCode(ctx, record); err != nil {
		return nil, fmt.Errorf("store code: %w", err)
	}

	expiresIn := int(s.cfg.CodeExpiry / time.Minute)
	if err := s.provider.SendCode(ctx, email, code, expiresIn); err != nil {
		return nil, fmt.Errorf("deliver code: %w", err)
	}

	return &RequestCodeResponse{ExpiresAt: record.ExpiresAt}, nil
}

// VerifyCode checks the submitted code against the active one. A correct
// code marks the account student-verified.
func (s *Service) VerifyCode(ctx context.Context, userID int64, submitted string) error {
	active, err := s.repo.GetActiveCode(ctx, userID)
	if errors.Is(err, ErrCodeNotFound) {
		return ErrCodeExpired
	}
	if err != nil {
		return fmt.Errorf("load code: %w", err)
	}

	attempts, err := s.repo.IncrementAttempts(ctx, active.ID)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	if attempts > s.cfg.MaxAttempts {
		return ErrCodeMaxAttempts
	}

	if submitted != active.Code {
		return ErrCodeInvalid
	}

	if err := s.repo.MarkVerified(ctx, active.ID); err != nil {
		return fmt.Errorf("mark code verified: %w", err)
	}
	if err := s.users.MarkStudentVerified(ctx, userID); err != nil {
		return fmt.Errorf("mark account verified: %w", err)
	}
	s.log.Info("student verification completed", "user_id", userID)
	return nil
}

// isStudentEmail accepts academic domains only.
func isStudentEmail(email string) bool {
	for _, suffix := range []string{".ac.kr", ".edu"} {
		if strings.HasSuffix(strings.ToLower(email), suffix) {
			return true
		}
	}
	return false
}

// generateCode produces a 6-digit numeric code with crypto randomness.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
