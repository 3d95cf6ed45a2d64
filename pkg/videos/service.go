// Package videos implements listing and owner-scoped mutation of shared videos.
package videos

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"video-share/pkg/apperror"
	"video-share/pkg/models"
	"video-share/pkg/repository"
	"video-share/pkg/session"
)

// Outcome messages reported to the user.
const (
	MsgShared  = "Successfully shared video"
	MsgUpdated = "Successfully updated video"
	MsgDeleted = "Successfully deleted video"
)

const (
	DefaultPerPage    = 10
	DefaultMaxPerPage = 100
)

type PageRequest struct {
	Page    int
	PerPage int
}

type Page struct {
	Videos     []models.Video `json:"videos"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalCount int            `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

type Options struct {
	PerPage    int
	MaxPerPage int
	Clock      Clock
	Log        logrus.FieldLogger
}

type Service struct {
	videos     repository.VideoRepository
	users      repository.UserRepository
	clock      Clock
	log        logrus.FieldLogger
	perPage    int
	maxPerPage int
}

func NewService(videos repository.VideoRepository, users repository.UserRepository, opts Options) *Service {
	if videos == nil || users == nil {
		panic("repositories cannot be nil for videos.Service")
	}
	s := &Service{
		videos:     videos,
		users:      users,
		clock:      opts.Clock,
		log:        opts.Log,
		perPage:    opts.PerPage,
		maxPerPage: opts.MaxPerPage,
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.perPage <= 0 {
		s.perPage = DefaultPerPage
	}
	if s.maxPerPage < s.perPage {
		s.maxPerPage = DefaultMaxPerPage
		if s.maxPerPage < s.perPage {
			s.maxPerPage = s.perPage
		}
	}
	return s
}

// List returns one page of videos, newest first. Out-of-range page numbers
// fall back to page 1; per-page is capped at the configured maximum.
func (s *Service) List(ctx context.Context, req PageRequest) (*Page, error) {
	page, perPage := req.Page, req.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = s.perPage
	}
	if perPage > s.maxPerPage {
		perPage = s.maxPerPage
	}

	items, total, err := s.videos.Page(ctx, (page-1)*perPage, perPage)
	if err != nil {
		s.log.WithError(err).Error("List: loading page failed")
		return nil, apperror.NewInternal(err)
	}
	return &Page{
		Videos:     items,
		Page:       page,
		PerPage:    perPage,
		TotalCount: total,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Create shares a video owned by the acting identity.
func (s *Service) Create(ctx context.Context, in models.VideoInput) (*models.Video, error) {
	id, ok := session.FromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthenticated()
	}
	logCtx := s.log.WithField("user_id", id.UserID)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, id.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		// The session outlived its account.
		logCtx.Warn("Create: session refers to a missing user")
		return nil, apperror.NewUnauthenticated()
	}
	if err != nil {
		logCtx.WithError(err).Error("Create: owner lookup failed")
		return nil, apperror.NewInternal(err)
	}

	video := &models.Video{UserID: owner.ID, CreatedAt: s.clock.Now()}
	in.Apply(video)
	if err := s.videos.Create(ctx, video); err != nil {
		logCtx.WithError(err).Error("Create: persisting video failed")
		return nil, apperror.NewInternal(err)
	}
	video.User = *owner

	logCtx.WithField("video_id", video.ID).Info("Video shared")
	return video, nil
}

// FindOwned returns the video only if the acting identity owns it.
func (s *Service) FindOwned(ctx context.Context, videoID uint) (*models.Video, error) {
	id, ok := session.FromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthenticated()
	}
	video, err := s.videos.FindOwned(ctx, videoID, id.UserID)
	if err != nil {
		return nil, s.scopedError(id, videoID, "FindOwned", err)
	}
	if !Owns(id, video) {
		return nil, apperror.NewNotPermitted(nil)
	}
	return video, nil
}

// Update rewrites title, url and description of an owned video.
func (s *Service) Update(ctx context.Context, videoID uint, in models.VideoInput) (*models.Video, error) {
	current, err := s.FindOwned(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, _ := session.FromContext(ctx)
	video, err := s.videos.UpdateOwned(ctx, current.ID, id.UserID, in)
	if err != nil {
		return nil, s.scopedError(id, videoID, "Update", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": id.UserID, "video_id": video.ID}).Info("Video updated")
	return video, nil
}

// Delete removes an owned video. A second delete of the same video fails
// with NotPermitted.
func (s *Service) Delete(ctx context.Context, videoID uint) error {
	current, err := s.FindOwned(ctx, videoID)
	if err != nil {
		return err
	}

	id, _ := session.FromContext(ctx)
	if err := s.videos.DeleteOwned(ctx, current.ID, id.UserID); err != nil {
		return s.scopedError(id, videoID, "Delete", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": id.UserID, "video_id": videoID}).Info("Video deleted")
	return nil
}

// scopedError folds "missing" and "not yours" into NotPermitted.
func (s *Service) scopedError(id session.Identity, videoID uint, op string, err error) error {
	logCtx := s.log.WithFields(logrus.Fields{"user_id": id.UserID, "video_id": videoID})
	if errors.Is(err, repository.ErrNotFound) {
		logCtx.Warn(op + ": video not found for owner")
		return apperror.NewNotPermitted(nil)
	}
	logCtx.WithError(err).Error(fmt.Sprintf("%s: store failed", op))
	return apperror.NewInternal(err)
}
