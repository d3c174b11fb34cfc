package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	cases := []struct {
		name              string
		page, limit, def  int
		wantPage, wantLim int
	}{
		{"defaults", 0, 0, 10, 1, 10},
		{"negative page", -4, 5, 10, 1, 5},
		{"limit clamped high", 2, 1000, 10, 2, 100},
		{"negative limit", 1, -1, 10, 1, 1},
		{"explicit", 3, 25, 50, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage(tc.page, tc.limit, tc.def)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLim, p.Limit)
		})
	}
}

func TestPage_OffsetAndTotalPages(t *testing.T) {
	p := NewPage(3, 10, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
}
