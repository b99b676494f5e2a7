// Package businessflow contains the core business logic and use cases for link shortening workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/app/services"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SignupFlow handles account registration
type SignupFlow interface {
	Register(ctx context.Context, request *dto.CreateAccountRequest, metadata *ClientMetadata) (*dto.CreateAccountResponse, error)
}

// SignupFlowImpl implements the signup business flow
type SignupFlowImpl struct {
	userRepo     repository.UserRepository
	tokenService services.TokenService
	db           *gorm.DB
	bcryptCost   int
}

// NewSignupFlow creates a new signup flow instance
func NewSignupFlow(
	userRepo repository.UserRepository,
	tokenService services.TokenService,
	db *gorm.DB,
	bcryptCost int,
) SignupFlow {
	return &SignupFlowImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		db:           db,
		bcryptCost:   bcryptCost,
	}
}

// Register creates a new user account and issues a bearer token
func (sf *SignupFlowImpl) Register(ctx context.Context, request *dto.CreateAccountRequest, metadata *ClientMetadata) (*dto.CreateAccountResponse, error) {
	if err := sf.validateRegisterRequest(request); err != nil {
		return nil, NewBusinessError("SIGNUP_VALIDATION_FAILED", "Signup validation failed", err)
	}

	email := normalizeEmail(request.Email)

	resp, err := sf.WithRegisterTransaction(ctx, func(ctx context.Context) (*dto.CreateAccountResponse, error) {
		// Fast path: the unique constraint below is still authoritative
		existing, err := sf.userRepo.ByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), sf.bcryptCost)
		if err != nil {
			return nil, err
		}

		user := &models.User{
			UUID:         uuid.New(),
			Username:     strings.TrimSpace(request.Username),
			Email:        email,
			PasswordHash: string(hashedPassword),
		}

		if err := sf.userRepo.Save(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, ErrEmailAlreadyExists
			}
			return nil, err
		}

		accessToken, err := sf.tokenService.GenerateAccessToken(user.ID, user.Username, user.Email)
		if err != nil {
			return nil, err
		}

		return &dto.CreateAccountResponse{
			User: ToAuthUserDTO(*user),
			Session: dto.SessionDTO{
				AccessToken: accessToken,
				TokenType:   "Bearer",
				ExpiresIn:   int64(sf.tokenService.AccessTokenTTL().Seconds()),
			},
		}, nil
	})

	if err != nil {
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	return resp, nil
}

func (sf *SignupFlowImpl) WithRegisterTransaction(ctx context.Context, fn func(context.Context) (*dto.CreateAccountResponse, error)) (*dto.CreateAccountResponse, error) {
	var result *dto.CreateAccountResponse
	var fnErr error

	err := repository.WithTransaction(ctx, sf.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (sf *SignupFlowImpl) validateRegisterRequest(request *dto.CreateAccountRequest) error {
	if strings.TrimSpace(request.Username) == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(request.Email) == "" {
		return ErrEmailRequired
	}
	if request.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
