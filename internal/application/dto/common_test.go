package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		total, page, limit int
		wantPages          int
		wantMore           bool
	}{
		{"vacío", 0, 1, 20, 0, false},
		{"página exacta", 40, 2, 20, 2, false},
		{"resto", 41, 2, 20, 3, true},
		{"primera de varias", 45, 1, 20, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.TotalItems)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.wantMore, p.HasMore)
		})
	}
}
