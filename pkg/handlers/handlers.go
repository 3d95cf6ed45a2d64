// Package handlers exposes the authentication and video use cases over gin.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"video-share/pkg/auth"
	"video-share/pkg/session"
	"video-share/pkg/videos"
)

// RootPath is where clients are sent after every redirecting outcome.
const RootPath = "/"

type Handler struct {
	auth     *auth.Authenticator
	videos   *videos.Service
	sessions *session.Manager
	log      logrus.FieldLogger
}

func New(authenticator *auth.Authenticator, videoService *videos.Service, sessions *session.Manager, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{auth: authenticator, videos: videoService, sessions: sessions, log: log}
}

// Router builds the gin engine with logging, recovery and session middleware.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(h.log), gin.Recovery(), h.sessions.Middleware())
	h.Register(r)
	return r
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.ListVideos)
	r.GET("/videos", h.ListVideos)

	r.POST("/authenticate", h.Authenticate)
	r.DELETE("/logout", h.Logout)

	signedIn := r.Group("/videos", RequireIdentity())
	signedIn.GET("/new", h.NewVideo)
	signedIn.POST("", h.CreateVideo)
	signedIn.GET("/:id/edit", h.EditVideo)
	signedIn.PUT("/:id", h.UpdateVideo)
	signedIn.PATCH("/:id", h.UpdateVideo)
	signedIn.DELETE("/:id", h.DeleteVideo)
}
