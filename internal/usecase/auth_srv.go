package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
	"travel-booking/pkg/utils"
)

type AuthService interface {
	// Login stores the access token and, when remember is set, the
	// refresh token. The returned profile may be nil if the follow-up
	// profile fetch failed; login itself still succeeded.
	Login(ctx context.Context, email, password string, remember bool) (*response.UserProfile, error)

	Register(ctx context.Context, req *request.RegisterRequest) error

	// Logout clears the stored tokens. Purely local.
	Logout() error

	Profile(ctx context.Context) (*response.UserProfile, error)
	UpdateProfile(ctx context.Context, form *request.ProfileUpdateForm, avatarPath string) (*response.UserProfile, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error
}

type authService struct {
	api   *api.Client
	store *store.Store
	log   *zap.Logger
}

func NewAuthService(client *api.Client, st *store.Store, log *zap.Logger) AuthService {
	return &authService{
		api:   client,
		store: st,
		log:   log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, email, password string, remember bool) (*response.UserProfile, error) {
	req := &request.LoginRequest{Email: email, Password: password}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}

	tokens, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetToken(tokens.Access); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}
	if remember && tokens.Refresh != "" {
		if err := s.store.SetRefreshToken(tokens.Refresh); err != nil {
			return nil, fmt.Errorf("store refresh token: %w", err)
		}
	}

	s.log.Info("Logged in", zap.Bool("remember", remember))

	// Best-effort profile fetch, used to tell agency accounts apart.
	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		s.log.Debug("Post-login profile fetch failed", zap.Error(err))
		return nil, nil
	}
	return profile, nil
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}
	return s.api.Register(ctx, req)
}

func (s *authService) Logout() error {
	s.log.Info("Logged out")
	return s.store.ClearTokens()
}

func (s *authService) Profile(ctx context.Context) (*response.UserProfile, error) {
	if s.store.Token() == "" {
		return nil, api.ErrAuthRequired
	}
	return s.api.GetProfile(ctx)
}

func (s *authService) UpdateProfile(ctx context.Context, form *request.ProfileUpdateForm, avatarPath string) (*response.UserProfile, error) {
	if s.store.Token() == "" {
		return nil, api.ErrAuthRequired
	}

	if errs := utils.ValidateStruct(form); len(errs) > 0 {
		return nil, api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}

	if avatarPath == "" {
		return s.api.UpdateProfile(ctx, form.Fields(), "", nil)
	}

	file, err := os.Open(avatarPath)
	if err != nil {
		return nil, fmt.Errorf("open avatar file: %w", err)
	}
	defer file.Close()

	return s.api.UpdateProfile(ctx, form.Fields(), filepath.Base(avatarPath), file)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	req := &request.ResetPasswordRequest{Email: email}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}
	return s.api.ResetPassword(ctx, req)
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	req := &request.ResetPasswordConfirmRequest{UID: uid, Token: token, NewPassword: newPassword}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}
	return s.api.ResetPasswordConfirm(ctx, req)
}
