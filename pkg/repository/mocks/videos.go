package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"video-share/pkg/models"
)

type VideoRepository struct {
	mock.Mock
}

func (m *VideoRepository) Page(ctx context.Context, offset, limit int) ([]models.Video, int, error) {
	args := m.Called(ctx, offset, limit)
	videos, _ := args.Get(0).([]models.Video)
	return videos, args.Int(1), args.Error(2)
}

func (m *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *VideoRepository) FindOwned(ctx context.Context, id, ownerID uint) (*models.Video, error) {
	args := m.Called(ctx, id, ownerID)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *VideoRepository) UpdateOwned(ctx context.Context, id, ownerID uint, in models.VideoInput) (*models.Video, error) {
	args := m.Called(ctx, id, ownerID, in)
	video, _ := args.Get(0).(*models.Video)
	return video, args.Error(1)
}

func (m *VideoRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *VideoRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
