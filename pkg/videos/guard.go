package videos

import (
	"video-share/pkg/models"
	"video-share/pkg/session"
)

// Owns reports whether id may mutate v.
func Owns(id session.Identity, v *models.Video) bool {
	return v != nil && id.UserID != 0 && v.UserID == id.UserID
}
