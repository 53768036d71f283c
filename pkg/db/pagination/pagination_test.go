package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)

	p = Pagination{Page: -3, PerPage: 1000}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := Pagination{Page: 3, PerPage: 10}
	assert.Equal(t, 20, p.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(Pagination{Page: 2, PerPage: 10}, 25)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.PerPage)
	assert.Equal(t, int64(25), info.TotalItems)
	assert.Equal(t, 3, info.TotalPages)

	info = BuildPageInfo(Pagination{Page: 1, PerPage: 10}, 0)
	assert.Equal(t, 0, info.TotalPages)
}
