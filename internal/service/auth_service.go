// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"funeral-docs-be/internal/apperror"
	"funeral-docs-be/internal/config"
	"funeral-docs-be/internal/dto"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/pkg/logger"
	"funeral-docs-be/internal/pkg/serverutils"
	"funeral-docs-be/internal/repository/specification"
	"funeral-docs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	mailQueue  IMailQueue
	cfg        config.AuthConfig
	logger     logger.ILogger
	now        func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, mailQueue IMailQueue, cfg config.AuthConfig, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		mailQueue:  mailQueue,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       string(hash),
		FullName:           strings.TrimSpace(req.FullName),
		Role:               entity.UserRoleUser,
		FuneralHome:        strings.TrimSpace(req.FuneralHome),
		BillingPeriodStart: s.now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id.String()})
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := serverutils.GenerateToken(s.cfg.JWTSecret, user.Id, user.Email, string(user.Role), s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	res := dto.NewUserResponse(user)
	return &res, nil
}

// ForgotPassword never reveals whether the email exists. Only storage
// errors are returned; mail problems are logged.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.Info("AUTH", "Password reset requested for unknown email", nil)
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	reset := &entity.PasswordResetToken{
		Email:     user.Email,
		Token:     hashToken(token),
		ExpiresAt: s.now().Add(s.cfg.ResetTokenTTL),
	}
	if err := uow.UserRepository().CreatePasswordResetToken(ctx, reset); err != nil {
		return err
	}

	if err := s.mailQueue.QueuePasswordReset(ctx, user.Email, user.FullName, token); err != nil {
		s.logger.Warn("AUTH", "Failed to queue password reset mail", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reset, err := uow.UserRepository().FindPasswordResetToken(ctx, specification.ByToken{Token: hashToken(req.Token)})
	if err != nil {
		return err
	}
	if !reset.Usable(s.now()) {
		return apperror.ErrInvalidResetToken
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: reset.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdatePassword(ctx, user.Id, string(hash)); err != nil {
		return err
	}
	if err := uow.UserRepository().MarkTokenUsed(ctx, reset.Id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("AUTH", "Password reset", map[string]interface{}{"user_id": user.Id.String()})
	return nil
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken is what gets stored; only the mailed link carries the raw token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
