package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAspectForDims(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   Aspect
	}{
		{"default canvas is wide", 1792, 1024, Aspect16x9},
		{"mild landscape", 1400, 1024, Aspect3x2},
		{"square", 1024, 1024, Aspect1x1},
		{"near-square landscape", 1200, 1024, Aspect1x1},
		{"mild portrait", 800, 1024, Aspect2x3},
		{"tall portrait", 600, 1024, Aspect9x16},
		{"exact 1.5 stays 3:2", 1536, 1024, Aspect3x2},
		{"zero dims fall back to square", 0, 0, Aspect1x1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AspectForDims(tt.width, tt.height))
		})
	}
}

func TestSizeForDims(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   SizeClass
	}{
		{"small", 1024, 768, Size1K},
		{"default canvas", 1792, 1024, Size2K},
		{"exact 2k boundary", 2048, 2048, Size2K},
		{"large", 4096, 1024, Size4K},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeForDims(tt.width, tt.height))
		})
	}
}
