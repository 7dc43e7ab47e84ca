package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, e.GetID())
	assert.Equal(t, e.GetCreatedAt(), e.GetUpdatedAt())
}

func TestRestoreBaseEntity(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	updated := created.Add(48 * time.Hour)

	e := RestoreBaseEntity(id, created, updated)

	assert.Equal(t, id, e.GetID())
	assert.Equal(t, created, e.GetCreatedAt())
	assert.Equal(t, updated, e.GetUpdatedAt())
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	e.UpdatedAt = e.UpdatedAt.Add(-time.Hour)
	stale := e.UpdatedAt

	e.Touch()

	assert.True(t, e.UpdatedAt.After(stale))
	assert.Equal(t, e.CreatedAt, e.GetCreatedAt(), "creation timestamp never moves")
}
