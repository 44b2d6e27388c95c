package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/mailer"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/session"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/store"
	"github.com/google/uuid"
)

// AuthService drives registration (with email OTP verification), login and
// logout. A registration moves through: Register stores a pending entry and
// mails a 4-digit code; VerifyOTP checks the code against the pending entry
// and, on match, commits the user and opens a session.
type AuthService struct {
	users       userStore
	sessions    session.Store
	passwords   *PasswordService
	mail        mailer.Mailer
	logger      *slog.Logger
	otpTTL      time.Duration
	maxAttempts int
}

func NewAuthService(users userStore, sessions session.Store, passwords *PasswordService, mail mailer.Mailer, logger *slog.Logger, otpTTL time.Duration, maxAttempts int) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		passwords:   passwords,
		mail:        mail,
		logger:      logger,
		otpTTL:      otpTTL,
		maxAttempts: maxAttempts,
	}
}

// Register starts a registration. It returns an opaque registration token
// the caller must present together with the OTP. Returns ErrDuplicateEmail
// if the address already has an account and ErrDeliveryFailed if the OTP
// mail could not be sent; in both cases no pending state survives.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return "", ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return "", err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", err
	}

	otp, err := generateOTP()
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	s.sessions.PutPending(token, &session.Pending{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		OTP:          otp,
		ExpiresAt:    time.Now().Add(s.otpTTL),
	})

	body := fmt.Sprintf("Here is your OTP for your email verification on Job Application Tracker\nOTP:%d", otp)
	if err := s.mail.Send(ctx, email, "OTP for email verification", body); err != nil {
		s.sessions.DeletePending(token)
		s.logger.Error("otp delivery failed", "email", email, "error", err)
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("otp sent", "email", email)
	return token, nil
}

// VerifyOTP completes a registration. On a wrong code the pending entry
// survives (up to maxAttempts tries within the OTP TTL) and ErrInvalidOTP is
// returned. On a match the user row is committed, the pending entry is
// cleared and an authenticated session is opened.
func (s *AuthService) VerifyOTP(ctx context.Context, token string, code int) (*session.Session, *models.User, error) {
	p, ok := s.sessions.GetPending(token)
	if !ok {
		return nil, nil, ErrNoPending
	}

	if code != p.OTP {
		p.Attempts++
		if p.Attempts >= s.maxAttempts {
			s.sessions.DeletePending(token)
			s.logger.Warn("otp attempts exhausted", "email", p.Email)
			return nil, nil, ErrTooManyAttempts
		}
		return nil, nil, ErrInvalidOTP
	}

	user := &models.User{
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Name:         p.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			// Another registration won the race for this email between
			// submit and commit. Clear the pending entry so the caller
			// restarts cleanly from login.
			s.sessions.DeletePending(token)
			return nil, nil, ErrDuplicateEmail
		}
		return nil, nil, err
	}

	s.sessions.DeletePending(token)
	sess := s.sessions.Create(user.ID)
	s.logger.Info("user registered", "email", user.Email, "user_id", user.ID)
	return sess, user, nil
}

// Login verifies credentials and opens a session. Callers get the same
// ErrInvalidCredentials whether the email is unknown or the password is
// wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*session.Session, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !s.passwords.Verify(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	sess := s.sessions.Create(user.ID)
	return sess, user, nil
}

func (s *AuthService) Logout(token string) {
	s.sessions.Delete(token)
}

// generateOTP draws a uniform 4-digit code.
func generateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 1000, nil
}
