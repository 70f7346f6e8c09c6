// Package candidate enumerates stored found-item assets and decodes each
// into a candidate record for ranking.
package candidate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/geo"
	"github.com/purabshah12/beacon/internal/metadata"
)

// listedExtensions is the allow-set for assets considered during matching.
// It is narrower than the upload allow-set: formats the scorer cannot read
// are stored but never enumerated.
var listedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Candidate is one found-item asset under consideration. Constructed fresh
// per match request, never persisted.
type Candidate struct {
	Identifier       string
	Path             string
	FoundCoordinates *geo.Coordinates
	PickupLocation   string
}

// Repository enumerates candidate assets under a storage directory.
type Repository struct {
	dir    string
	logger logger.Logger
}

func NewRepository(dir string, log logger.Logger) *Repository {
	return &Repository{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"component": "candidate-repository"}),
	}
}

// List returns every decodable asset in the storage directory. Unreadable or
// half-written files are excluded and logged, never escalated; an empty
// directory yields an empty slice, not an error.
func (r *Repository) List(ctx context.Context) ([]Candidate, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !listedExtensions[ext] {
			continue
		}

		path := filepath.Join(r.dir, name)
		if !r.readable(path) {
			r.logger.Warn("skipping unreadable asset", map[string]interface{}{
				"identifier": name,
			})
			continue
		}

		coords, pickup := metadata.Decode(name)
		candidates = append(candidates, Candidate{
			Identifier:       name,
			Path:             path,
			FoundCoordinates: coords,
			PickupLocation:   pickup,
		})
	}

	return candidates, nil
}

// readable guards against scans racing an in-progress upload: a file that
// cannot be opened or is still empty is not a valid candidate yet.
func (r *Repository) readable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
