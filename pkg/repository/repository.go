// Package repository declares the persistence contracts used by the auth and
// videos services. pkg/database provides the gorm implementations.
package repository

import (
	"context"
	"errors"

	"video-share/pkg/models"
)

var (
	// ErrNotFound means no record matched, including owner-scoped lookups
	// where the record exists but belongs to someone else.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate means a unique constraint was violated.
	ErrDuplicate = errors.New("repository: duplicate entry")
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
}

type VideoRepository interface {
	// Page returns videos newest first with their owners loaded, plus the total count.
	Page(ctx context.Context, offset, limit int) ([]models.Video, int, error)
	Create(ctx context.Context, video *models.Video) error
	// FindOwned looks a video up by id and owner in a single query.
	FindOwned(ctx context.Context, id, ownerID uint) (*models.Video, error)
	// UpdateOwned writes the editable fields of the video matching (id, ownerID).
	UpdateOwned(ctx context.Context, id, ownerID uint, in models.VideoInput) (*models.Video, error)
	// DeleteOwned removes the video matching (id, ownerID).
	DeleteOwned(ctx context.Context, id, ownerID uint) error
	Count(ctx context.Context) (int, error)
}
