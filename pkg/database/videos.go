package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"video-share/pkg/models"
	"video-share/pkg/repository"
)

// VideoStore is the gorm-backed video repository. Every mutation is scoped
// by (id, user_id) so that a foreign or missing row look the same.
type VideoStore struct {
	db *gorm.DB
}

func NewVideoStore(db *gorm.DB) *VideoStore {
	if db == nil {
		panic("database connection cannot be nil for VideoStore")
	}
	return &VideoStore{db: db}
}

func (s *VideoStore) Page(ctx context.Context, offset, limit int) ([]models.Video, int, error) {
	var total int
	if err := s.db.Model(&models.Video{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	videos := []models.Video{}
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	return videos, total, nil
}

func (s *VideoStore) Create(ctx context.Context, video *models.Video) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Create(video).Error; err != nil {
			return fmt.Errorf("create video: %w", mapError(err))
		}
		return nil
	})
}

func (s *VideoStore) FindOwned(ctx context.Context, id, ownerID uint) (*models.Video, error) {
	var video models.Video
	err := s.db.Preload("User").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&video).Error
	if err != nil {
		return nil, fmt.Errorf("find video %d: %w", id, mapError(err))
	}
	return &video, nil
}

// UpdateOwned locks the owned row (where the dialect supports it), writes
// title, url and description, and never touches user_id.
func (s *VideoStore) UpdateOwned(ctx context.Context, id, ownerID uint, in models.VideoInput) (*models.Video, error) {
	var video models.Video
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND user_id = ?", id, ownerID)
		if tx.Dialect().GetName() != DriverSQLite {
			q = q.Set("gorm:query_option", "FOR UPDATE")
		}
		if err := q.First(&video).Error; err != nil {
			return fmt.Errorf("lock video %d: %w", id, mapError(err))
		}

		changes := map[string]interface{}{
			"title":       in.Title,
			"url":         in.URL,
			"description": in.Description,
		}
		if err := tx.Model(&video).Updates(changes).Error; err != nil {
			return fmt.Errorf("update video %d: %w", id, mapError(err))
		}
		in.Apply(&video)

		if err := tx.First(&video.User, video.UserID).Error; err != nil {
			return fmt.Errorf("load owner of video %d: %w", id, mapError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *VideoStore) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Video{})
		if res.Error != nil {
			return fmt.Errorf("delete video %d: %w", id, mapError(res.Error))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete video %d: %w", id, repository.ErrNotFound)
		}
		return nil
	})
}

func (s *VideoStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.Model(&models.Video{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count videos: %w", err)
	}
	return n, nil
}
