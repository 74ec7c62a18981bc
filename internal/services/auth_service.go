package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/models"
	"github.com/shidoukh/shidoukh/pkg/crypto"
	"github.com/shidoukh/shidoukh/pkg/logger"
	"github.com/shidoukh/shidoukh/pkg/mail"
	"github.com/shidoukh/shidoukh/pkg/metrics"
)

// emailPattern mirrors the lax shape check used by the front-end: something,
// an @, something, a dot, something. Deliverability is proven by the
// confirmation email, not the regexp.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService implements registration, login and the two token flows.
type AuthService struct {
	db     *gorm.DB
	mailer mail.Mailer

	baseURL           string
	resetTokenTTL     time.Duration
	passwordMinLength int

	now      func() time.Time
	newToken func() string
}

// AuthOption customises an AuthService, mainly for tests.
type AuthOption func(*AuthService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithTokenGenerator overrides confirmation and reset token generation.
func WithTokenGenerator(gen func() string) AuthOption {
	return func(s *AuthService) { s.newToken = gen }
}

// NewAuthService wires an AuthService. baseURL is used to build the links
// embedded in confirmation and reset emails.
func NewAuthService(db *gorm.DB, mailer mail.Mailer, baseURL string, resetTokenTTL time.Duration, passwordMinLength int, opts ...AuthOption) *AuthService {
	if resetTokenTTL <= 0 {
		resetTokenTTL = 24 * time.Hour
	}
	if passwordMinLength <= 0 {
		passwordMinLength = 8
	}

	s := &AuthService{
		db:                db,
		mailer:            mailer,
		baseURL:           strings.TrimRight(baseURL, "/"),
		resetTokenTTL:     resetTokenTTL,
		passwordMinLength: passwordMinLength,
		now:               time.Now,
		newToken:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates an unconfirmed account and emails the confirmation link.
// When the email cannot be delivered the account is kept; the user can
// retry through the forgot-password flow once SMTP is back.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrRequiredFields
	}
	if !emailPattern.MatchString(input.Email) {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < s.passwordMinLength {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrWeakPassword
	}
	if input.Password != input.ConfirmPassword {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrPasswordMismatch
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrGeneric.WithInternal(err)
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrGeneric.WithInternal(err)
	}

	token := s.newToken()
	user := models.User{
		Email:             input.Email,
		Password:          hash,
		Confirmed:         false,
		ConfirmationToken: &token,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		if isUniqueConstraintError(err) {
			return nil, ErrEmailExists
		}
		return nil, ErrGeneric.WithInternal(err)
	}

	if err := s.sendConfirmationEmail(ctx, user.Email, token); err != nil {
		logger.Error("confirmation email delivery failed",
			zap.String("email", user.Email),
			zap.Error(err))
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, ErrGeneric.WithInternal(err)
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	return &user, nil
}

// Login checks credentials. Both an unknown email and a wrong password yield
// the same message; an unconfirmed account gets its own, matching the
// behaviour users already know from the previous version of the dashboard.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, ErrRequiredFields
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, ErrGeneric.WithInternal(err)
	}

	if !crypto.VerifyPassword(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if !user.Confirmed {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, ErrNotConfirmed
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return &user, nil
}

// RequestPasswordReset stores a fresh reset token and mails the link. An
// unknown email is treated as success so the endpoint cannot be used to
// probe which addresses hold an account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return ErrRequiredFields
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return ErrEmailSend.WithInternal(err)
	}

	token := s.newToken()
	expires := s.now().Add(s.resetTokenTTL)

	updates := map[string]any{
		"reset_token":         token,
		"reset_token_expires": expires,
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return ErrEmailSend.WithInternal(err)
	}

	if err := s.sendResetEmail(ctx, user.Email, token); err != nil {
		logger.Error("reset email delivery failed",
			zap.String("email", user.Email),
			zap.Error(err))
		return ErrEmailSend.WithInternal(err)
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	if token == "" || password == "" || confirmPassword == "" {
		return ErrRequiredFields
	}
	if len(password) < s.passwordMinLength {
		return ErrWeakPassword
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return ErrGeneric.WithInternal(err)
	}

	if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(s.now()) {
		return ErrInvalidToken
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return ErrGeneric.WithInternal(err)
	}

	updates := map[string]any{
		"password":            hash,
		"reset_token":         nil,
		"reset_token_expires": nil,
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return ErrGeneric.WithInternal(err)
	}

	return nil
}

// ConfirmEmail consumes a confirmation token and marks the account confirmed.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("confirmation_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return ErrGeneric.WithInternal(err)
	}

	updates := map[string]any{
		"confirmed":          true,
		"confirmation_token": nil,
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return ErrGeneric.WithInternal(err)
	}

	return nil
}

func (s *AuthService) sendConfirmationEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/auth/confirm-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf(`
		<h1>Bienvenue sur Shidoukh !</h1>
		<p>Merci de vous être inscrit. Cliquez sur le lien ci-dessous pour confirmer votre adresse email :</p>
		<p><a href="%s">Confirmer mon email</a></p>
		<p>Si vous n'avez pas créé de compte, ignorez cet email.</p>
	`, link)

	err := s.mailer.Send(ctx, mail.Message{
		To:      []string{to},
		Subject: "Confirmez votre adresse email - Shidoukh",
		Body:    body,
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues("confirmation", "failure").Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues("confirmation", "success").Inc()
	return nil
}

func (s *AuthService) sendResetEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf(`
		<h1>Réinitialisation de votre mot de passe</h1>
		<p>Vous avez demandé la réinitialisation de votre mot de passe. Cliquez sur le lien ci-dessous :</p>
		<p><a href="%s">Réinitialiser mon mot de passe</a></p>
		<p>Ce lien expire dans 24 heures.</p>
		<p>Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.</p>
	`, link)

	err := s.mailer.Send(ctx, mail.Message{
		To:      []string{to},
		Subject: "Réinitialisation de votre mot de passe - Shidoukh",
		Body:    body,
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues("reset", "failure").Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues("reset", "success").Inc()
	return nil
}
