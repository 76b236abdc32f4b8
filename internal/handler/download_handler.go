package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-course-store/internal/middleware"
	"go-course-store/internal/service"
	"go-course-store/pkg/apierror"
)

// sampleVideoName stands in for real per-video files; actual storage is a
// CDN concern outside this service.
const sampleVideoName = "sample_video.mp4"

type DownloadHandler struct {
	service    *service.DownloadService
	videosRoot string
}

func NewDownloadHandler(service *service.DownloadService, videosRoot string) *DownloadHandler {
	return &DownloadHandler{service: service, videosRoot: videosRoot}
}

func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "video_id"), 10, 64)
	if err != nil {
		writeError(w, apierror.BadRequest("BAD_REQUEST", "video_id must be an integer"))
		return
	}

	video, err := h.service.Authorize(r.Context(), username, videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", video.Title+".mp4"))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filepath.Join(h.videosRoot, sampleVideoName))
}
