package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/purabshah12/beacon/internal/common/errors"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/common/metrics"
	"github.com/purabshah12/beacon/internal/geo"
	"github.com/purabshah12/beacon/internal/metadata"
)

// uploadExtensions is the allow-set for uploads. Wider than the listing
// allow-set: gif and heic are stored but never enumerated as candidates.
var uploadExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".heic": true,
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// UploadHandler persists found-item images with their capture metadata
// encoded into the stored file name.
type UploadHandler struct {
	UploadDir string
	MaxBytes  int64
	Logger    logger.Logger
}

type uploadResponse struct {
	Success        bool             `json:"success"`
	Filename       string           `json:"filename"`
	URL            string           `json:"url"`
	FoundLocation  *geo.Coordinates `json:"foundLocation"`
	PickupLocation string           `json:"pickupLocation"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		h.reject(w, errors.NewUploadRejectedError("invalid multipart form"), "No file part")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.reject(w, errors.NewUploadRejectedError("missing file part"), "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.reject(w, errors.NewUploadRejectedError("empty filename"), "No selected file")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !uploadExtensions[ext] {
		h.reject(w, errors.NewUploadRejectedError("extension "+ext), "File type not allowed")
		return
	}

	coords := parseFormCoordinates(r.FormValue("foundLatitude"), r.FormValue("foundLongitude"))
	pickup := r.FormValue("pickupLocation")
	if pickup == "" {
		pickup = "Unknown"
	}

	// Timestamp plus a short random suffix so two uploads in the same
	// second cannot collide on the stored name.
	stamped := time.Now().UTC().Format("20060102_150405") + "_" +
		uuid.NewString()[:8] + "_" + sanitizeFilename(header.Filename)
	identifier := metadata.Encode(stamped, coords, pickup)

	if err := h.saveAsset(identifier, file); err != nil {
		h.Logger.Error("asset save failed", map[string]interface{}{
			"identifier": identifier,
			"error":      err.Error(),
		})
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Failed to save file",
		})
		return
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	h.Logger.Info("asset uploaded", map[string]interface{}{
		"identifier": identifier,
		"hasGPS":     coords != nil,
		"pickup":     pickup,
	})

	writeJSON(w, http.StatusCreated, uploadResponse{
		Success:        true,
		Filename:       identifier,
		URL:            "/uploads/" + identifier,
		FoundLocation:  coords,
		PickupLocation: pickup,
	})
}

func (h *UploadHandler) reject(w http.ResponseWriter, err *errors.StandardError, message string) {
	h.Logger.Warn("upload rejected", map[string]interface{}{"details": err.Details})
	metrics.UploadsTotal.WithLabelValues("rejected").Inc()
	writeJSON(w, errors.HTTPStatus(err), map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func (h *UploadHandler) saveAsset(identifier string, src io.Reader) error {
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return err
	}

	dst, err := os.Create(filepath.Join(h.UploadDir, identifier))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// parseFormCoordinates returns nil unless both halves parse and the pair is
// in range: absence of either half invalidates the pair.
func parseFormCoordinates(latStr, lonStr string) *geo.Coordinates {
	if latStr == "" || lonStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil
	}
	coords := &geo.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return nil
	}
	return coords
}

// sanitizeFilename strips path components and characters that cannot appear
// in a stored identifier. Double underscores are collapsed so user-chosen
// names cannot forge metadata segments.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeNameChars.ReplaceAllString(name, "_")
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	name = strings.Trim(name, "._")
	if name == "" {
		name = "upload"
	}
	return name
}
