package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purabshah12/beacon/internal/common/errors"
	"github.com/purabshah12/beacon/internal/common/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "items.json"), logger.NewTestLogger(t))
}

func sampleFields() CreateFields {
	return CreateFields{
		Title:       "Black wallet",
		Description: "Leather wallet with student ID",
		Category:    "accessories",
		Location:    "Main Library",
		Status:      "lost",
		ContactInfo: "student@example.edu",
	}
}

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Create(sampleFields())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.NotEmpty(t, first.CreatedAt)
	_, parseErr := time.Parse(time.RFC3339, first.CreatedAt)
	assert.NoError(t, parseErr)

	second, err := s.Create(sampleFields())
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestStore_IDsNotReusedAfterDeletion(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Create(sampleFields())
	require.NoError(t, err)
	second, err := s.Create(sampleFields())
	require.NoError(t, err)

	require.NoError(t, s.Delete(first.ID))

	third, err := s.Create(sampleFields())
	require.NoError(t, err)
	assert.Equal(t, second.ID+1, third.ID)
}

func TestStore_GetReturnsCreatedRecord(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleFields())
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestStore_GetUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(42)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeItemNotFound, errors.CodeOf(err))
}

func TestStore_ListNewestFirstAndStatusFilter(t *testing.T) {
	s := newTestStore(t)

	lost := sampleFields()
	lost.Status = "lost"
	_, err := s.Create(lost)
	require.NoError(t, err)

	found := sampleFields()
	found.Title = "Silver keys"
	found.Status = "found"
	_, err = s.Create(found)
	require.NoError(t, err)

	all, err := s.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.GreaterOrEqual(t, all[0].CreatedAt, all[1].CreatedAt)

	onlyFound, err := s.List("found")
	require.NoError(t, err)
	require.Len(t, onlyFound, 1)
	assert.Equal(t, "Silver keys", onlyFound[0].Title)
}

func TestStore_UpdateKnownFields(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleFields())
	require.NoError(t, err)

	updated, err := s.Update(created.ID, map[string]interface{}{
		"status": "found",
		"title":  "Black leather wallet",
	})
	require.NoError(t, err)
	assert.Equal(t, "found", updated.Status)
	assert.Equal(t, "Black leather wallet", updated.Title)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "found", got.Status)
}

func TestStore_UpdateIgnoresUnknownFields(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleFields())
	require.NoError(t, err)

	updated, err := s.Update(created.ID, map[string]interface{}{
		"reward": "100 dollars",
	})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestStore_UpdateUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update(42, map[string]interface{}{"status": "found"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeItemNotFound, errors.CodeOf(err))
}

func TestStore_DeleteTwice(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(sampleFields())
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.ID))

	err = s.Delete(created.ID)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeItemNotFound, errors.CodeOf(err))
}

func TestStore_ConcurrentCreatesDoNotLoseUpdates(t *testing.T) {
	s := newTestStore(t)

	const writers = 10
	done := make(chan struct{}, writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, err := s.Create(sampleFields())
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < writers; i++ {
		<-done
	}

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, writers)

	seen := make(map[int]bool)
	for _, r := range all {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
}
