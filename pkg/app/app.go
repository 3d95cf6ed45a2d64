// Package app wires configuration, storage, services and handlers together.
package app

import (
	"fmt"
	"net/http"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"

	"video-share/cmd/config"
	"video-share/pkg/auth"
	"video-share/pkg/database"
	"video-share/pkg/handlers"
	"video-share/pkg/session"
	"video-share/pkg/videos"
)

type App struct {
	DB      *gorm.DB
	Handler http.Handler
	Users   *database.UserStore
	Videos  *database.VideoStore
}

// WireOptions overrides collaborators, mainly for tests.
type WireOptions struct {
	Clock videos.Clock
}

func Wire(cfg *config.Config, log *logrus.Logger, opts *WireOptions) (*App, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	var clock videos.Clock = videos.RealClock{}
	if opts != nil && opts.Clock != nil {
		clock = opts.Clock
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	sessions, err := session.NewManager(session.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	}, log.WithField("component", "session"))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	users := database.NewUserStore(db)
	videoStore := database.NewVideoStore(db)

	authenticator := auth.NewAuthenticator(users, cfg.Auth.BcryptCost, log.WithField("component", "auth"))
	videoService := videos.NewService(videoStore, users, videos.Options{
		PerPage:    cfg.Pagination.PerPage,
		MaxPerPage: cfg.Pagination.MaxPerPage,
		Clock:      clock,
		Log:        log.WithField("component", "videos"),
	})

	h := handlers.New(authenticator, videoService, sessions, log.WithField("component", "http"))

	return &App{
		DB:      db,
		Handler: h.Router(),
		Users:   users,
		Videos:  videoStore,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
