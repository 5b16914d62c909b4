package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMul64(t *testing.T) {
	tests := []struct {
		name string
		a, b int64
		want float64
		sign int
	}{
		{"zero", 0, 12345, 0, 0},
		{"positive", 3, 5, 15, 1},
		{"negative", -3, 5, -15, -1},
		{"both negative", -3, -5, 15, 1},
		{"beyond int64", 1 << 40, 1 << 40, 1 << 80, 1},
		{"negative beyond int64", -(1 << 40), 1 << 40, -(1 << 80), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mul64(tt.a, tt.b)
			assert.Equal(t, tt.sign, got.sign())
			assert.InDelta(t, tt.want, got.float(), 1)
		})
	}
}

func TestInt128AddSub(t *testing.T) {
	big := mul64(1<<40, 1<<40)
	assert.Equal(t, 0, big.sub(big).sign())
	assert.Equal(t, 1, big.add(mul64(-1, 1)).sign())
	assert.Equal(t, -1, mul64(-1, 1).sub(big).sign())
}

func TestOrient(t *testing.T) {
	const big = int64(1) << 31

	tests := []struct {
		name    string
		a, b, c Point
		want    int
	}{
		{"left", Pt(0, 0), Pt(10, 0), Pt(5, 5), 1},
		{"right", Pt(0, 0), Pt(10, 0), Pt(5, -5), -1},
		{"collinear", Pt(0, 0), Pt(10, 10), Pt(20, 20), 0},
		{"large collinear", Pt(-big, -big), Pt(big, big), Pt(big-1, big-1), 0},
		{"large barely left", Pt(-big, -big), Pt(big, big), Pt(big-1, big), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orient(tt.a, tt.b, tt.c))
		})
	}
}
