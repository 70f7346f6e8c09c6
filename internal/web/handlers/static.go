package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/purabshah12/beacon/internal/common/logger"
)

// AssetsHandler serves stored found-item images.
type AssetsHandler struct {
	UploadDir string
	Logger    logger.Logger
}

func (h *AssetsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	// Reject anything that could escape the upload directory.
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "File not found"})
		return
	}

	path := filepath.Join(h.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "File not found"})
		return
	}

	http.ServeFile(w, r, path)
}

// Root returns the API greeting.
func Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Beacon Lost and Found API"})
}
