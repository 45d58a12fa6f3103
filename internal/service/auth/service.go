// Package auth handles credential verification and token issuance.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
	"github.com/GanehsaConsulting/cms-admin-api/internal/repository"
	pkgauth "github.com/GanehsaConsulting/cms-admin-api/pkg/auth"
	apperrors "github.com/GanehsaConsulting/cms-admin-api/pkg/errors"
)

type AuthServicer interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type Service struct {
	users repository.UserRepository
	jwt   pkgauth.JWTService
}

func NewService(users repository.UserRepository, jwt pkgauth.JWTService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login verifies credentials and returns an access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindNotFound {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, apperrors.FromPG(err, "user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if !user.Active {
		return nil, apperrors.Unauthorized("account is disabled")
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to issue token: %w", err))
	}

	return &model.LoginResponse{AccessToken: token, User: user}, nil
}
