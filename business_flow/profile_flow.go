// Package businessflow contains the core business logic and use cases for link shortening workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProfileFlow handles profile management and account deletion
type ProfileFlow interface {
	GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, request *dto.UpdateProfileRequest, metadata *ClientMetadata) (*dto.UpdateProfileResponse, error)
	DeleteAccount(ctx context.Context, userID uint, request *dto.DeleteAccountRequest, metadata *ClientMetadata) (*dto.DeleteAccountResponse, error)
}

// ProfileFlowImpl implements the profile business flow
type ProfileFlowImpl struct {
	userRepo   repository.UserRepository
	linkRepo   repository.LinkRepository
	clickRepo  repository.ClickEventRepository
	db         *gorm.DB
	bcryptCost int
}

// NewProfileFlow creates a new profile flow instance
func NewProfileFlow(
	userRepo repository.UserRepository,
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickEventRepository,
	db *gorm.DB,
	bcryptCost int,
) ProfileFlow {
	return &ProfileFlowImpl{
		userRepo:   userRepo,
		linkRepo:   linkRepo,
		clickRepo:  clickRepo,
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// GetProfile returns the authenticated user's profile
func (pf *ProfileFlowImpl) GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	user, err := pf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_LOOKUP_FAILED", "Failed to lookup profile", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.ProfileResponse{User: ToAuthUserDTO(*user)}, nil
}

// UpdateProfile applies partial profile changes. The current password is
// required as proof of identity for every update.
func (pf *ProfileFlowImpl) UpdateProfile(ctx context.Context, userID uint, request *dto.UpdateProfileRequest, metadata *ClientMetadata) (*dto.UpdateProfileResponse, error) {
	if request.Username == nil && request.Email == nil && request.NewPassword == nil && request.ProfileImageURL == nil {
		return nil, NewBusinessError("PROFILE_VALIDATION_FAILED", "Profile validation failed", ErrNoProfileChanges)
	}

	resp, err := pf.WithUpdateTransaction(ctx, func(ctx context.Context) (*dto.UpdateProfileResponse, error) {
		user, err := pf.verifyUser(ctx, userID, request.Password)
		if err != nil {
			return nil, err
		}

		if request.Username != nil {
			user.Username = strings.TrimSpace(*request.Username)
		}
		if request.Email != nil {
			user.Email = normalizeEmail(*request.Email)
		}
		if request.ProfileImageURL != nil {
			user.ProfileImageURL = request.ProfileImageURL
		}
		if request.NewPassword != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*request.NewPassword), pf.bcryptCost)
			if err != nil {
				return nil, err
			}
			user.PasswordHash = string(hashedPassword)
		}

		if err := pf.userRepo.Update(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, ErrEmailAlreadyExists
			}
			return nil, err
		}

		return &dto.UpdateProfileResponse{User: ToAuthUserDTO(*user)}, nil
	})

	if err != nil {
		return nil, NewBusinessError("PROFILE_UPDATE_FAILED", "Profile update failed", err)
	}

	return resp, nil
}

// DeleteAccount removes the user together with all their links and recorded
// clicks in a single transaction. Either everything goes or nothing does.
func (pf *ProfileFlowImpl) DeleteAccount(ctx context.Context, userID uint, request *dto.DeleteAccountRequest, metadata *ClientMetadata) (*dto.DeleteAccountResponse, error) {
	var deletedLinks int64

	err := repository.WithTransaction(ctx, pf.db, func(ctx context.Context) error {
		user, err := pf.verifyUser(ctx, userID, request.Password)
		if err != nil {
			return err
		}

		linkIDs, err := pf.linkRepo.ListIDsByOwner(ctx, user.ID)
		if err != nil {
			return err
		}
		deletedLinks = int64(len(linkIDs))

		if err := pf.clickRepo.DeleteByLinkIDs(ctx, linkIDs); err != nil {
			return err
		}
		if err := pf.linkRepo.DeleteByOwner(ctx, user.ID); err != nil {
			return err
		}
		return pf.userRepo.Delete(ctx, user.ID)
	})

	if err != nil {
		return nil, NewBusinessError("ACCOUNT_DELETE_FAILED", "Account deletion failed", err)
	}

	return &dto.DeleteAccountResponse{DeletedLinks: deletedLinks}, nil
}

// verifyUser loads the user and proves the given password against the
// stored hash
func (pf *ProfileFlowImpl) verifyUser(ctx context.Context, userID uint, password string) (*models.User, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := pf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	return user, nil
}

func (pf *ProfileFlowImpl) WithUpdateTransaction(ctx context.Context, fn func(context.Context) (*dto.UpdateProfileResponse, error)) (*dto.UpdateProfileResponse, error) {
	var result *dto.UpdateProfileResponse
	var fnErr error

	err := repository.WithTransaction(ctx, pf.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}
