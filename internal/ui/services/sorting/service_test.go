package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_DefaultsToNewest(t *testing.T) {
	s := NewService()
	by, dir := s.Params()
	assert.Equal(t, "createdAt", by)
	assert.Equal(t, "desc", dir)
	assert.Equal(t, "newest", s.String())
}

func TestService_NextCycles(t *testing.T) {
	s := NewService()
	assert.Equal(t, SortName, s.Next())
	by, dir := s.Params()
	assert.Equal(t, "name", by)
	assert.Equal(t, "asc", dir)

	assert.Equal(t, SortRating, s.Next())
	by, _ = s.Params()
	assert.Equal(t, "averageRating", by)

	assert.Equal(t, SortNewest, s.Next())
}

func TestService_SetModeReportsChange(t *testing.T) {
	s := NewService()
	assert.False(t, s.SetMode(SortNewest))
	assert.True(t, s.SetMode(SortRating))
	assert.Equal(t, "best rated", s.String())
}
