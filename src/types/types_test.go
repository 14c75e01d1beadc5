package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(25, 2, 10)

	assert.Equal(t, int64(25), meta.TotalCount)
	assert.Equal(t, int64(3), meta.TotalPages)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 10, meta.Limit)
}

func TestNewPageMetaExactPages(t *testing.T) {
	meta := NewPageMeta(20, 1, 10)

	assert.Equal(t, int64(2), meta.TotalPages)
}

// Out-of-range paging values fall back to the listing defaults instead of
// dividing by zero.
func TestNewPageMetaClampsBadInput(t *testing.T) {
	meta := NewPageMeta(7, 0, 0)

	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(1), meta.TotalPages)
}
