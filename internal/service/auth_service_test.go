package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/config"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailQueue struct {
	tokens map[string]string
	err    error
}

func (q *captureMailQueue) QueuePasswordReset(_ context.Context, email, _ string, token string) error {
	if q.tokens == nil {
		q.tokens = map[string]string{}
	}
	q.tokens[email] = token
	return q.err
}

var testAuthConfig = config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, ResetTokenTTL: time.Hour}

func TestRegisterLoginMe(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.uowFactory, &captureMailQueue{}, testAuthConfig, f.log)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:       "director@example.com",
		Password:    "s3cret-pass",
		FullName:    " Pat Director ",
		FuneralHome: "Oak Hill Funeral Home",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pat Director", reg.User.FullName)
	assert.Equal(t, string(entity.UserRoleUser), reg.User.Role)

	claims, err := serverutils.ParseToken(testAuthConfig.JWTSecret, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.Id.String(), claims["user_id"])

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "director@example.com", Password: "another-pass", FullName: "Dup"})
	assert.ErrorIs(t, err, apperror.ErrEmailTaken)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "director@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.Id, login.User.Id)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "director@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	me, err := svc.Me(ctx, reg.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "Oak Hill Funeral Home", me.FuneralHome)
}

func TestForgotPasswordIsGeneric(t *testing.T) {
	f := newFixture(t)
	queue := &captureMailQueue{}
	svc := NewAuthService(f.uowFactory, queue, testAuthConfig, f.log)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "nobody@example.com"}))
	assert.Empty(t, queue.tokens)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "director@example.com", Password: "s3cret-pass", FullName: "Pat"})
	require.NoError(t, err)

	queue.err = errors.New("smtp down")
	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "director@example.com"}))
	assert.NotEmpty(t, queue.tokens["director@example.com"])
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	queue := &captureMailQueue{}
	svc := NewAuthService(f.uowFactory, queue, testAuthConfig, f.log)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "director@example.com", Password: "s3cret-pass", FullName: "Pat"})
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "director@example.com"}))
	token := queue.tokens["director@example.com"]
	require.NotEmpty(t, token)

	assert.ErrorIs(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: "bogus", NewPassword: "new-password"}), apperror.ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "new-password"}))
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "director@example.com", Password: "new-password"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "third-password"}), apperror.ErrInvalidResetToken)
}

func TestResetPasswordExpired(t *testing.T) {
	f := newFixture(t)
	queue := &captureMailQueue{}
	svc := NewAuthService(f.uowFactory, queue, testAuthConfig, f.log).(*authService)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "director@example.com", Password: "s3cret-pass", FullName: "Pat"})
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "director@example.com"}))

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err = svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: queue.tokens["director@example.com"], NewPassword: "new-password"})
	assert.ErrorIs(t, err, apperror.ErrInvalidResetToken)
}
