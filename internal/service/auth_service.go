// Package service implements the business logic layer of the application.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gamehaven/internal/events"
	"gamehaven/internal/mailer"
	"gamehaven/internal/middleware"
	"gamehaven/internal/models"
	"gamehaven/internal/repository"
	"gamehaven/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and email verification.
type AuthService struct {
	userRepo         repository.UserRepository
	verificationRepo repository.VerificationRepository
	mailer           mailer.Mailer
	publisher        *events.Publisher
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	verificationRepo repository.VerificationRepository,
	m mailer.Mailer,
	publisher *events.Publisher,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		mailer:           m,
		publisher:        publisher,
	}
}

// SignUp registers a new user, stores a bcrypt hash of the password and sends
// a verification code to the given email address.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("An account with this email already exists")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("This username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		// The account exists; the user can request a new code later.
		middleware.Logger.WarnContext(ctx, "failed to send verification code on signup",
			"user_id", user.ID, "error", err.Error())
	}

	return user, nil
}

// SignIn checks credentials and returns the user. Banned accounts are
// rejected with the same error as bad credentials to avoid oracle behavior.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if user.IsBanned {
		return nil, models.NewUnauthorizedError("This account has been suspended")
	}

	s.publisher.PublishUser(ctx, user.ID, events.Event{Type: events.TypeSignedIn})
	return user, nil
}

// VerifyEmail redeems a verification code. Expired codes return an EXPIRED
// error and never mark the account verified; wrong codes burn an attempt.
func (s *AuthService) VerifyEmail(ctx context.Context, userID uint, code string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return user, nil
	}

	vc, err := s.verificationRepo.LatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vc == nil {
		return nil, models.NewValidationError("No verification code found, request a new one")
	}

	now := time.Now()
	if now.After(vc.ExpiresAt) {
		return nil, models.NewExpiredError("Verification code has expired, request a new one")
	}
	if vc.Attempts >= models.MaxVerificationAttempts {
		return nil, models.NewValidationError("Too many failed attempts, request a new code")
	}

	if vc.Code != strings.TrimSpace(code) {
		if err := s.verificationRepo.IncrementAttempts(ctx, vc.ID); err != nil {
			return nil, err
		}
		return nil, models.NewValidationError("Incorrect verification code")
	}

	if err := s.verificationRepo.MarkVerified(ctx, vc.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publisher.PublishUser(ctx, user.ID, events.Event{Type: events.TypeEmailVerified})
	return user, nil
}

// ResendVerification invalidates outstanding codes and issues a fresh one.
func (s *AuthService) ResendVerification(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return models.NewValidationError("This account is already verified")
	}
	return s.issueVerificationCode(ctx, user)
}

func (s *AuthService) issueVerificationCode(ctx context.Context, user *models.User) error {
	if err := s.verificationRepo.InvalidateOutstanding(ctx, user.ID); err != nil {
		return err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return models.NewInternalError(err)
	}

	vc := &models.VerificationCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(models.VerificationCodeTTL),
	}
	if err := s.verificationRepo.Create(ctx, vc); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(ctx, user.Email, user.Username, code); err != nil {
		middleware.VerificationEmails.WithLabelValues("error").Inc()
		return models.NewInternalError(err)
	}
	middleware.VerificationEmails.WithLabelValues("sent").Inc()
	return nil
}

// generateVerificationCode returns a random zero-padded 6-digit code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
