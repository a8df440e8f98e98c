package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"melodex/logger"
	"melodex/model"

	"github.com/google/uuid"
)

const maxUploadSize = 100 << 20 // 100 MiB

// UploadTrackHandler accepts a multipart audio upload, stores the file in
// object storage and creates a catalog entry for it. Uploaded tracks have no
// provider id and never collide with provider-sourced rows.
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}
	if name == "" {
		writeError(w, http.StatusBadRequest, "Track name is required")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("uploads/%d/%s%s", userID, uuid.NewString(), filepath.Ext(header.Filename))
	if _, err := h.files.Upload(r.Context(), key, file, header.Size, contentType); err != nil {
		logger.Error("upload failed", logger.String("key", key), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	track := &model.Track{
		Name:      name,
		URL:       key,
		AlbumName: r.FormValue("albumName"),
		Type:      model.TypeUpload,
	}
	if artist := r.FormValue("artistName"); artist != "" {
		track.Artists = model.ArtistRefList{{Name: artist}}
	}

	if err := h.tracks.Create(r.Context(), track); err != nil {
		logger.Error("uploaded track creation failed", logger.ErrorField(err))
		if derr := h.files.Delete(r.Context(), key); derr != nil {
			logger.Warn("orphaned upload cleanup failed",
				logger.String("key", key), logger.ErrorField(derr))
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("track uploaded",
		logger.Int64("userId", userID),
		logger.Int64("trackId", track.ID),
		logger.String("key", key))
	writeJSON(w, http.StatusCreated, track)
}

// TrackStreamURLHandler returns a temporary download URL for an uploaded
// track's audio file.
func (h *APIHandler) TrackStreamURLHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	track, err := h.tracks.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("track lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}
	if track.Type != model.TypeUpload {
		writeError(w, http.StatusBadRequest, "Track is not an uploaded file")
		return
	}

	url, err := h.files.PresignedURL(r.Context(), track.URL, 1*time.Hour)
	if err != nil {
		logger.Error("presign failed", logger.String("key", track.URL), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
