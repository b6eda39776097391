package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/debugden/api/internal/domain"
	"github.com/debugden/api/internal/infrastructure/smtp"
	"github.com/debugden/api/internal/pkg/id"
	"github.com/debugden/api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials is shared by the unknown-email and wrong-password
// branches of Login so the two are indistinguishable to callers.
var errInvalidCredentials = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

type LoginResult struct {
	Bearer string
	User   *domain.User
}

type Service interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type otpStore interface {
	Put(ctx context.Context, v *domain.EmailVerification) error
	Get(ctx context.Context, email string) (*domain.EmailVerification, error)
	MarkVerified(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	users  userStore
	otps   otpStore
	mailer smtp.Mailer
	jwt    jwtSigner
	otpTTL time.Duration

	// spawn runs the password-reset mail dispatch; replaced with a
	// synchronous version in tests.
	spawn func(func())
}

type ServiceDeps struct {
	UserRepo    userStore
	OTPRepo     otpStore
	Mailer      smtp.Mailer
	JWTProvider jwtSigner
	OTPTTL      time.Duration
}

func NewService(deps ServiceDeps) Service {
	ttl := deps.OTPTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &service{
		users:  deps.UserRepo,
		otps:   deps.OTPRepo,
		mailer: deps.Mailer,
		jwt:    deps.JWTProvider,
		otpTTL: ttl,
		spawn:  func(f func()) { go f() },
	}
}

func (s *service) SendOTP(ctx context.Context, email string) error {
	code, err := otp.NewCode()
	if err != nil {
		return err
	}
	v := &domain.EmailVerification{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL).Unix(),
		Verified:  false,
	}
	if err := s.otps.Put(ctx, v); err != nil {
		return err
	}
	if err := s.mailer.SendEmail(email, "Your DebugDen verification code", "Your OTP: "+code); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	v, err := s.otps.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("no verification pending for this email: %w", domain.ErrNotFound)
	}
	if v.Code != code {
		return fmt.Errorf("incorrect code: %w", domain.ErrUnauthorized)
	}
	if v.ExpiresAt < time.Now().Unix() {
		if err := s.otps.Delete(ctx, email); err != nil {
			slog.Warn("failed to delete expired OTP entry", "email", email, "err", err)
		}
		return fmt.Errorf("code expired: %w", domain.ErrUnauthorized)
	}
	return s.otps.MarkVerified(ctx, email)
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	v, err := s.otps.Get(ctx, req.Email)
	if err != nil || !v.Verified {
		return nil, fmt.Errorf("email not verified: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	if err := s.otps.Delete(ctx, req.Email); err != nil {
		slog.Warn("failed to delete OTP entry after registration", "email", req.Email, "err", err)
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	bearer, err := s.jwt.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, User: u}, nil
}

// RequestPasswordReset always reports success so callers cannot probe which
// emails have accounts. The OTP dispatch runs detached; its errors are
// logged, never returned.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil
	}
	s.spawn(func() {
		if err := s.SendOTP(context.Background(), email); err != nil {
			slog.Error("password-reset OTP dispatch failed", "email", email, "err", err)
		}
	})
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	v, err := s.otps.Get(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("no verification pending for this email: %w", domain.ErrNotFound)
	}
	if v.Code != req.Code {
		return fmt.Errorf("incorrect code: %w", domain.ErrUnauthorized)
	}
	if v.ExpiresAt < time.Now().Unix() {
		if err := s.otps.Delete(ctx, req.Email); err != nil {
			slog.Warn("failed to delete expired OTP entry", "email", req.Email, "err", err)
		}
		return fmt.Errorf("code expired: %w", domain.ErrUnauthorized)
	}
	if !v.Verified {
		return fmt.Errorf("code not verified: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"password_hash": string(hash)}); err != nil {
		return err
	}
	if err := s.otps.Delete(ctx, req.Email); err != nil {
		slog.Warn("failed to delete OTP entry after password reset", "email", req.Email, "err", err)
	}
	return nil
}
