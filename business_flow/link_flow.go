// Package businessflow contains the core business logic and use cases for link shortening workflows
package businessflow

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/repository"
	"github.com/linklift/linklift/utils"
	"gorm.io/gorm"
)

// LinkFlow handles creation and management of short links
type LinkFlow interface {
	CreateLink(ctx context.Context, request *dto.CreateLinkRequest, ownerID *uint, metadata *ClientMetadata) (*dto.CreateLinkResponse, error)
	EditSlug(ctx context.Context, linkID uint, userID uint, request *dto.EditSlugRequest, metadata *ClientMetadata) (*dto.LinkDTO, error)
	DeleteLink(ctx context.Context, linkID uint, userID uint, metadata *ClientMetadata) error
	ListLinks(ctx context.Context, userID uint) (*dto.ListLinksResponse, error)
}

// LinkFlowImpl implements the link management business flow
type LinkFlowImpl struct {
	linkRepo  repository.LinkRepository
	clickRepo repository.ClickEventRepository
	db        *gorm.DB
}

// NewLinkFlow creates a new link flow instance
func NewLinkFlow(
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickEventRepository,
	db *gorm.DB,
) LinkFlow {
	return &LinkFlowImpl{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
		db:        db,
	}
}

// CreateLink shortens a URL. When the caller supplies a custom slug it is
// used verbatim and a collision is an error. Otherwise slugs are generated
// and regenerated on collision, bounded by MaxSlugAttempts.
//
// Each save attempt runs in its own implicit transaction so a unique
// violation never poisons a surrounding one.
func (lf *LinkFlowImpl) CreateLink(ctx context.Context, request *dto.CreateLinkRequest, ownerID *uint, metadata *ClientMetadata) (*dto.CreateLinkResponse, error) {
	if err := lf.validateCreateLinkRequest(request); err != nil {
		return nil, NewBusinessError("LINK_VALIDATION_FAILED", "Link validation failed", err)
	}

	originalURL := strings.TrimSpace(request.OriginalURL)

	if request.CustomSlug != nil {
		slug := strings.TrimSpace(*request.CustomSlug)

		link := &models.Link{
			Slug:        slug,
			OriginalURL: originalURL,
			OwnerID:     ownerID,
		}
		if err := lf.linkRepo.Save(ctx, link); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, NewBusinessError("SLUG_TAKEN", "Slug already exists", ErrSlugAlreadyExists)
			}
			return nil, NewBusinessError("LINK_CREATE_FAILED", "Failed to create link", err)
		}

		return &dto.CreateLinkResponse{Link: ToLinkDTO(*link)}, nil
	}

	for attempt := 0; attempt < utils.MaxSlugAttempts; attempt++ {
		slug, err := GenerateSlug(utils.SlugLength)
		if err != nil {
			return nil, NewBusinessError("SLUG_GENERATION_FAILED", "Failed to generate slug", err)
		}

		link := &models.Link{
			Slug:        slug,
			OriginalURL: originalURL,
			OwnerID:     ownerID,
		}
		err = lf.linkRepo.Save(ctx, link)
		if err == nil {
			return &dto.CreateLinkResponse{Link: ToLinkDTO(*link)}, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, NewBusinessError("LINK_CREATE_FAILED", "Failed to create link", err)
		}
	}

	return nil, NewBusinessError("SLUG_GENERATION_EXHAUSTED", "Could not generate a unique slug", ErrSlugGenerationFailed)
}

// EditSlug renames an owned link's slug
func (lf *LinkFlowImpl) EditSlug(ctx context.Context, linkID uint, userID uint, request *dto.EditSlugRequest, metadata *ClientMetadata) (*dto.LinkDTO, error) {
	newSlug := strings.TrimSpace(request.NewSlug)
	if newSlug == "" {
		return nil, NewBusinessError("SLUG_VALIDATION_FAILED", "Slug validation failed", ErrSlugRequired)
	}

	link, err := lf.loadOwnedLink(ctx, linkID, userID)
	if err != nil {
		return nil, err
	}

	if link.Slug != newSlug {
		if err := lf.linkRepo.UpdateSlug(ctx, linkID, newSlug); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, NewBusinessError("SLUG_TAKEN", "Slug already exists", ErrSlugAlreadyExists)
			}
			return nil, NewBusinessError("LINK_EDIT_FAILED", "Failed to edit link", err)
		}
		link.Slug = newSlug
	}

	linkDTO := ToLinkDTO(*link)
	return &linkDTO, nil
}

// DeleteLink removes an owned link together with its recorded clicks
func (lf *LinkFlowImpl) DeleteLink(ctx context.Context, linkID uint, userID uint, metadata *ClientMetadata) error {
	link, err := lf.loadOwnedLink(ctx, linkID, userID)
	if err != nil {
		return err
	}

	err = repository.WithTransaction(ctx, lf.db, func(ctx context.Context) error {
		if err := lf.clickRepo.DeleteByLinkIDs(ctx, []uint{link.ID}); err != nil {
			return err
		}
		return lf.linkRepo.Delete(ctx, link.ID)
	})
	if err != nil {
		return NewBusinessError("LINK_DELETE_FAILED", "Failed to delete link", err)
	}

	return nil
}

// ListLinks returns all links owned by the user, newest first
func (lf *LinkFlowImpl) ListLinks(ctx context.Context, userID uint) (*dto.ListLinksResponse, error) {
	links, err := lf.linkRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("LINK_LIST_FAILED", "Failed to list links", err)
	}

	resp := &dto.ListLinksResponse{
		Links: make([]dto.LinkDTO, 0, len(links)),
		Total: len(links),
	}
	for _, link := range links {
		resp.Links = append(resp.Links, ToLinkDTO(*link))
	}

	return resp, nil
}

// loadOwnedLink fetches a link and enforces ownership. Anonymous links are
// never editable, so ownership of them always fails.
func (lf *LinkFlowImpl) loadOwnedLink(ctx context.Context, linkID uint, userID uint) (*models.Link, error) {
	link, err := lf.linkRepo.ByID(ctx, linkID)
	if err != nil {
		return nil, NewBusinessError("LINK_LOOKUP_FAILED", "Failed to lookup link", err)
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	if !link.IsOwnedBy(userID) {
		return nil, ErrLinkNotOwned
	}
	return link, nil
}

func (lf *LinkFlowImpl) validateCreateLinkRequest(request *dto.CreateLinkRequest) error {
	if strings.TrimSpace(request.OriginalURL) == "" {
		return ErrOriginalURLRequired
	}
	if request.CustomSlug != nil && strings.TrimSpace(*request.CustomSlug) == "" {
		return ErrSlugRequired
	}
	return nil
}

// GenerateSlug produces a random URL-safe slug using crypto/rand
func GenerateSlug(length int) (string, error) {
	slug := make([]byte, length)
	max := big.NewInt(int64(len(utils.SlugAlphabet)))

	for i := range slug {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		slug[i] = utils.SlugAlphabet[n.Int64()]
	}

	return string(slug), nil
}
