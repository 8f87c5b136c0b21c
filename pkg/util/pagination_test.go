package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		offset     int
		limit      int
	}{
		{name: "first page", page: 1, size: 10, offset: 0, limit: 10},
		{name: "third page", page: 3, size: 10, offset: 20, limit: 10},
		{name: "zero page", page: 0, size: 5, offset: 0, limit: 5},
		{name: "default size", page: 2, size: 0, offset: DefaultPageSize, limit: DefaultPageSize},
		{name: "capped size", page: 1, size: 1000, offset: 0, limit: MaxPageSize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			offset, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, ParseIntDefault("", 4))
	assert.Equal(t, 4, ParseIntDefault("x", 4))
	assert.Equal(t, 12, ParseIntDefault("12", 4))
}

func TestNewMeta(t *testing.T) {
	t.Parallel()

	m := NewMeta(2, 10, 10, 25)
	assert.EqualValues(t, 3, m.TotalPages)
	assert.True(t, m.HasPrev)
	assert.True(t, m.HasNext)

	last := NewMeta(3, 20, 10, 25)
	assert.False(t, last.HasNext)
}
