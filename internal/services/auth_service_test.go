package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/models"
	"github.com/shidoukh/shidoukh/pkg/crypto"
)

func newAuthService(t *testing.T, db *gorm.DB, mailer *fakeMailer, opts ...AuthOption) *AuthService {
	t.Helper()
	return NewAuthService(db, mailer, "http://localhost:8000", 24*time.Hour, 8, opts...)
}

func TestRegisterValidationOrder(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(t, db, &fakeMailer{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing fields", RegisterInput{Email: "a@b.co"}, ErrRequiredFields},
		{"bad email shape", RegisterInput{Email: "not-an-email", Password: "longenough", ConfirmPassword: "longenough"}, ErrInvalidEmail},
		{"short password", RegisterInput{Email: "a@b.co", Password: "short", ConfirmPassword: "short"}, ErrWeakPassword},
		{"mismatch", RegisterInput{Email: "a@b.co", Password: "longenough", ConfirmPassword: "different1"}, ErrPasswordMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			require.ErrorIs(t, err, tc.want)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRegisterCreatesUnconfirmedUserAndSendsEmail(t *testing.T) {
	db := openTestDB(t)
	mailer := &fakeMailer{}
	svc := newAuthService(t, db, mailer, WithTokenGenerator(func() string { return "tok-123" }))

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:           "rachel@example.com",
		Password:        "motdepasse",
		ConfirmPassword: "motdepasse",
	})
	require.NoError(t, err)
	require.False(t, user.Confirmed)
	require.NotNil(t, user.ConfirmationToken)
	require.Equal(t, "tok-123", *user.ConfirmationToken)
	require.NotEqual(t, "motdepasse", user.Password)
	require.True(t, crypto.VerifyPassword(user.Password, "motdepasse"))

	sent := mailer.sent()
	require.Len(t, sent, 1)
	require.Equal(t, []string{"rachel@example.com"}, sent[0].To)
	require.Contains(t, sent[0].Body, "http://localhost:8000/auth/confirm-email?token=tok-123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(t, db, &fakeMailer{})
	ctx := context.Background()

	input := RegisterInput{Email: "dup@example.com", Password: "motdepasse", ConfirmPassword: "motdepasse"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterKeepsUserWhenEmailFails(t *testing.T) {
	db := openTestDB(t)
	mailer := &fakeMailer{fail: true}
	svc := newAuthService(t, db, mailer)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:           "stranded@example.com",
		Password:        "motdepasse",
		ConfirmPassword: "motdepasse",
	})
	require.ErrorIs(t, err, ErrGeneric)

	// The account row stays; only delivery failed.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "stranded@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	db := openTestDB(t)
	mailer := &fakeMailer{}
	svc := newAuthService(t, db, mailer, WithTokenGenerator(func() string { return "confirm-me" }))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "lea@example.com", Password: "motdepasse", ConfirmPassword: "motdepasse"})
	require.NoError(t, err)

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, ErrRequiredFields)
	})

	t.Run("unknown email and wrong password share a message", func(t *testing.T) {
		_, errUnknown := svc.Login(ctx, "nobody@example.com", "motdepasse")
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)

		_, errWrong := svc.Login(ctx, "lea@example.com", "wrongwrong")
		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	})

	t.Run("unconfirmed account is refused", func(t *testing.T) {
		_, err := svc.Login(ctx, "lea@example.com", "motdepasse")
		require.ErrorIs(t, err, ErrNotConfirmed)
	})

	t.Run("confirmed account signs in", func(t *testing.T) {
		require.NoError(t, svc.ConfirmEmail(ctx, "confirm-me"))

		user, err := svc.Login(ctx, "lea@example.com", "motdepasse")
		require.NoError(t, err)
		require.True(t, user.Confirmed)
		require.Nil(t, user.ConfirmationToken)
	})
}

func TestRequestPasswordReset(t *testing.T) {
	db := openTestDB(t)
	mailer := &fakeMailer{}
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(t, db, mailer,
		WithClock(func() time.Time { return now }),
		WithTokenGenerator(func() string { return "reset-tok" }))
	ctx := context.Background()

	hash, err := crypto.HashPassword("motdepasse")
	require.NoError(t, err)
	user := models.User{Email: "noa@example.com", Password: hash, Confirmed: true}
	require.NoError(t, db.Create(&user).Error)

	t.Run("unknown email is silent", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset(ctx, "ghost@example.com"))
		require.Empty(t, mailer.sent())
	})

	t.Run("stores token with expiry and mails the link", func(t *testing.T) {
		require.NoError(t, svc.RequestPasswordReset(ctx, "noa@example.com"))

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
		require.NotNil(t, reloaded.ResetToken)
		require.Equal(t, "reset-tok", *reloaded.ResetToken)
		require.NotNil(t, reloaded.ResetTokenExpires)
		require.WithinDuration(t, now.Add(24*time.Hour), *reloaded.ResetTokenExpires, time.Second)

		sent := mailer.sent()
		require.Len(t, sent, 1)
		require.Contains(t, sent[0].Body, "http://localhost:8000/auth/reset-password?token=reset-tok")
	})

	t.Run("delivery failure is reported", func(t *testing.T) {
		mailer.fail = true
		err := svc.RequestPasswordReset(ctx, "noa@example.com")
		require.ErrorIs(t, err, ErrEmailSend)
	})
}

func TestResetPassword(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(t, db, &fakeMailer{},
		WithClock(func() time.Time { return now }),
		WithTokenGenerator(func() string { return "reset-tok" }))
	ctx := context.Background()

	hash, err := crypto.HashPassword("ancienpass")
	require.NoError(t, err)
	user := models.User{Email: "dina@example.com", Password: hash, Confirmed: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, svc.RequestPasswordReset(ctx, "dina@example.com"))

	t.Run("validation first", func(t *testing.T) {
		require.ErrorIs(t, svc.ResetPassword(ctx, "", "a", "a"), ErrRequiredFields)
		require.ErrorIs(t, svc.ResetPassword(ctx, "reset-tok", "court", "court"), ErrWeakPassword)
		require.ErrorIs(t, svc.ResetPassword(ctx, "reset-tok", "nouveaupass", "autrechose1"), ErrPasswordMismatch)
	})

	t.Run("unknown token", func(t *testing.T) {
		require.ErrorIs(t, svc.ResetPassword(ctx, "no-such-token", "nouveaupass", "nouveaupass"), ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		now = now.Add(25 * time.Hour)
		require.ErrorIs(t, svc.ResetPassword(ctx, "reset-tok", "nouveaupass", "nouveaupass"), ErrInvalidToken)
		now = now.Add(-25 * time.Hour)
	})

	t.Run("success clears the token", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, "reset-tok", "nouveaupass", "nouveaupass"))

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
		require.Nil(t, reloaded.ResetToken)
		require.Nil(t, reloaded.ResetTokenExpires)
		require.True(t, crypto.VerifyPassword(reloaded.Password, "nouveaupass"))
		require.False(t, crypto.VerifyPassword(reloaded.Password, "ancienpass"))

		// Consumed token cannot be replayed.
		require.ErrorIs(t, svc.ResetPassword(ctx, "reset-tok", "encoreunautre", "encoreunautre"), ErrInvalidToken)
	})
}

func TestConfirmEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newAuthService(t, db, &fakeMailer{}, WithTokenGenerator(func() string { return "confirm-tok" }))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "eli@example.com", Password: "motdepasse", ConfirmPassword: "motdepasse"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.ConfirmEmail(ctx, ""), ErrInvalidToken)
	require.ErrorIs(t, svc.ConfirmEmail(ctx, "wrong"), ErrInvalidToken)

	require.NoError(t, svc.ConfirmEmail(ctx, "confirm-tok"))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "eli@example.com").Error)
	require.True(t, user.Confirmed)
	require.Nil(t, user.ConfirmationToken)

	// A consumed confirmation link reads as invalid on the second visit.
	require.ErrorIs(t, svc.ConfirmEmail(ctx, "confirm-tok"), ErrInvalidToken)
}

func TestEmailPattern(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@sub.domain.org"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@d.co", strings.Repeat("a", 5) + "@nodot"}

	for _, email := range valid {
		require.True(t, emailPattern.MatchString(email), email)
	}
	for _, email := range invalid {
		require.False(t, emailPattern.MatchString(email), email)
	}
}
