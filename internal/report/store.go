// Package report persists lost-item reports in a single JSON collection.
// Every mutation is a full-collection read-modify-write; a store-wide mutex
// serializes writers so concurrent requests cannot lose updates.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/purabshah12/beacon/internal/common/errors"
	"github.com/purabshah12/beacon/internal/common/logger"
)

// Store is a JSON-file-backed report collection.
type Store struct {
	path   string
	mu     sync.Mutex
	logger logger.Logger
}

func NewStore(path string, log logger.Logger) *Store {
	return &Store{
		path:   path,
		logger: log.WithFields(map[string]interface{}{"component": "report-store"}),
	}
}

// Create assigns the next id and a creation timestamp, then persists the
// record. IDs are (max existing id)+1 and never reused after deletion.
func (s *Store) Create(fields CreateFields) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return nil, errors.NewPersistenceFailureError(err)
	}

	record := Report{
		ID:            nextID(reports),
		Title:         fields.Title,
		Description:   fields.Description,
		Category:      fields.Category,
		Location:      fields.Location,
		Status:        fields.Status,
		ContactInfo:   fields.ContactInfo,
		ImageFilename: fields.ImageFilename,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	reports = append(reports, record)
	if err := s.save(reports); err != nil {
		return nil, errors.NewPersistenceFailureError(err)
	}

	s.logger.Info("report created", map[string]interface{}{"id": record.ID})
	return &record, nil
}

// List returns reports newest first, optionally filtered by status.
func (s *Store) List(statusFilter string) ([]Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return nil, errors.NewPersistenceFailureError(err)
	}

	if statusFilter != "" {
		filtered := reports[:0]
		for _, r := range reports {
			if r.Status == statusFilter {
				filtered = append(filtered, r)
			}
		}
		reports = filtered
	}

	// RFC 3339 timestamps sort lexicographically.
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt > reports[j].CreatedAt
	})

	return reports, nil
}

// Get returns the report with the given id.
func (s *Store) Get(id int) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return nil, errors.NewPersistenceFailureError(err)
	}

	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}
	return nil, errors.NewItemNotFoundError(id)
}

// Update overwrites only the fields the record already carries; unknown keys
// are ignored, not added. Identity fields (id, created_at) are not writable.
func (s *Store) Update(id int, fields map[string]interface{}) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return nil, errors.NewPersistenceFailureError(err)
	}

	for i := range reports {
		if reports[i].ID != id {
			continue
		}

		applyFields(&reports[i], fields)
		if err := s.save(reports); err != nil {
			return nil, errors.NewPersistenceFailureError(err)
		}
		return &reports[i], nil
	}

	return nil, errors.NewItemNotFoundError(id)
}

// Delete removes the report with the given id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.load()
	if err != nil {
		return errors.NewPersistenceFailureError(err)
	}

	for i := range reports {
		if reports[i].ID != id {
			continue
		}

		reports = append(reports[:i], reports[i+1:]...)
		if err := s.save(reports); err != nil {
			return errors.NewPersistenceFailureError(err)
		}
		s.logger.Info("report deleted", map[string]interface{}{"id": id})
		return nil
	}

	return errors.NewItemNotFoundError(id)
}

func applyFields(r *Report, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "title":
			if v, ok := value.(string); ok {
				r.Title = v
			}
		case "description":
			if v, ok := value.(string); ok {
				r.Description = v
			}
		case "category":
			if v, ok := value.(string); ok {
				r.Category = v
			}
		case "location":
			if v, ok := value.(string); ok {
				r.Location = v
			}
		case "status":
			if v, ok := value.(string); ok {
				r.Status = v
			}
		case "contact_info":
			if v, ok := value.(string); ok {
				r.ContactInfo = v
			}
		case "image_filename":
			if value == nil {
				r.ImageFilename = nil
			} else if v, ok := value.(string); ok {
				r.ImageFilename = &v
			}
		}
	}
}

func nextID(reports []Report) int {
	max := 0
	for _, r := range reports {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

func (s *Store) load() ([]Report, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Report{}, nil
		}
		return nil, fmt.Errorf("read report collection: %w", err)
	}

	var reports []Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("decode report collection: %w", err)
	}
	return reports, nil
}

func (s *Store) save(reports []Report) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report collection: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write report collection: %w", err)
	}
	return nil
}
