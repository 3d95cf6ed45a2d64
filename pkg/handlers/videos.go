package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"video-share/pkg/apperror"
	"video-share/pkg/models"
	"video-share/pkg/videos"
)

type videoView struct {
	models.Video
	EmbedURL string `json:"embed_url"`
}

func viewOf(v *models.Video) videoView {
	return videoView{Video: *v, EmbedURL: models.EmbedURL(v.URL)}
}

// videoID parses the :id param. A malformed id is indistinguishable from a
// video the caller does not own.
func videoID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewNotPermitted(err)
	}
	return uint(id), nil
}

func (h *Handler) ListVideos(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	result, err := h.videos.List(c.Request.Context(), videos.PageRequest{Page: page, PerPage: perPage})
	if err != nil {
		writeError(c, err, nil)
		return
	}

	views := make([]videoView, 0, len(result.Videos))
	for i := range result.Videos {
		views = append(views, viewOf(&result.Videos[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"videos":      views,
		"page":        result.Page,
		"per_page":    result.PerPage,
		"total_count": result.TotalCount,
		"total_pages": result.TotalPages,
	})
}

// NewVideo returns an empty form context.
func (h *Handler) NewVideo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"video": models.VideoInput{}})
}

func (h *Handler) CreateVideo(c *gin.Context) {
	var in models.VideoInput
	if err := c.ShouldBind(&in); err != nil {
		writeBadRequest(c, err)
		return
	}

	video, err := h.videos.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, gin.H{"video": in})
		return
	}
	writeNotice(c, http.StatusCreated, videos.MsgShared, gin.H{"video": viewOf(video)})
}

func (h *Handler) EditVideo(c *gin.Context) {
	id, err := videoID(c)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	video, err := h.videos.FindOwned(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": video.ID, "video": video.Input()})
}

func (h *Handler) UpdateVideo(c *gin.Context) {
	id, err := videoID(c)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	var in models.VideoInput
	if err := c.ShouldBind(&in); err != nil {
		writeBadRequest(c, err)
		return
	}

	video, err := h.videos.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err, gin.H{"id": id, "video": in})
		return
	}
	writeNotice(c, http.StatusOK, videos.MsgUpdated, gin.H{"video": viewOf(video)})
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	id, err := videoID(c)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	if err := h.videos.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, nil)
		return
	}
	writeNotice(c, http.StatusOK, videos.MsgDeleted, nil)
}
