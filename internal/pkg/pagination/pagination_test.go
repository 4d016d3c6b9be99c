package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Normalize(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = Normalize(3, 10)
	assert.Equal(t, 20, p.Offset)

	p = Normalize(1, 500)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestGetMeta(t *testing.T) {
	params := Normalize(2, 10)
	meta := GetMeta(params, 25)

	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(Normalize(3, 10), 25)
	assert.False(t, meta.HasNext)

	meta = GetMeta(Normalize(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
