package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGrowth(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"decline", 150, 200, -25},
		{"increase", 300, 200, 50},
		{"flat", 200, 200, 0},
		{"zero baseline zero current", 0, 0, 0},
		{"zero baseline nonzero current", 100, 0, 0},
		{"total drop", 0, 100, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Growth(decimal.NewFromFloat(tt.current), decimal.NewFromFloat(tt.previous))
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)),
				"growth(%v, %v) = %s, want %v", tt.current, tt.previous, got, tt.want)
		})
	}
}

func TestGrowthCount(t *testing.T) {
	assert.True(t, GrowthCount(3, 1).Equal(decimal.NewFromInt(200)))
	assert.True(t, GrowthCount(5, 0).IsZero())
}
