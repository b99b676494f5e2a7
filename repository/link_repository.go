package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/linklift/linklift/models"
	"gorm.io/gorm"
)

// LinkRepositoryImpl implements LinkRepository
type LinkRepositoryImpl struct {
	*BaseRepository[models.Link, models.LinkFilter]
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &LinkRepositoryImpl{BaseRepository: NewBaseRepository[models.Link, models.LinkFilter](db)}
}

func (r *LinkRepositoryImpl) BySlug(ctx context.Context, slug string) (*models.Link, error) {
	filter := models.LinkFilter{Slug: &slug}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *LinkRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Link, error) {
	filter := models.LinkFilter{OwnerID: &ownerID}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

func (r *LinkRepositoryImpl) ListIDsByOwner(ctx context.Context, ownerID uint) ([]uint, error) {
	db := r.getDB(ctx)
	var ids []uint
	err := db.Model(&models.Link{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list link IDs for owner %d: %w", ownerID, err)
	}
	return ids, nil
}

func (r *LinkRepositoryImpl) applyFilter(db *gorm.DB, f models.LinkFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Slug != nil {
		db = db.Where("slug = ?", *f.Slug)
	}
	if f.OwnerID != nil {
		db = db.Where("owner_id = ?", *f.OwnerID)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *LinkRepositoryImpl) ByFilter(ctx context.Context, filter models.LinkFilter, orderBy string, limit, offset int) ([]*models.Link, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Link{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Link
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LinkRepositoryImpl) Count(ctx context.Context, filter models.LinkFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Link{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *LinkRepositoryImpl) Exists(ctx context.Context, filter models.LinkFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (r *LinkRepositoryImpl) UpdateSlug(ctx context.Context, linkID uint, newSlug string) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.Link{}).Where("id = ?", linkID).Updates(map[string]any{
		"slug":       newSlug,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update slug for link %d: %w", linkID, err)
	}

	return nil
}

// RegisterClick increments the counter and stamps last_clicked_at in one
// UPDATE so concurrent visits never lose counts.
func (r *LinkRepositoryImpl) RegisterClick(ctx context.Context, linkID uint, clickedAt time.Time) error {
	db := r.getDB(ctx)
	err := db.Model(&models.Link{}).Where("id = ?", linkID).Updates(map[string]any{
		"total_clicks":    gorm.Expr("total_clicks + 1"),
		"last_clicked_at": clickedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to register click for link %d: %w", linkID, err)
	}
	return nil
}

func (r *LinkRepositoryImpl) Delete(ctx context.Context, linkID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Where("id = ?", linkID).Delete(&models.Link{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete link %d: %w", linkID, err)
	}

	return nil
}

func (r *LinkRepositoryImpl) DeleteByOwner(ctx context.Context, ownerID uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Where("owner_id = ?", ownerID).Delete(&models.Link{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete links for owner %d: %w", ownerID, err)
	}

	return nil
}
