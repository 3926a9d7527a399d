//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		in      int
		want    uint32
		wantErr bool
	}{
		{0, 0, false},
		{123, 123, false},
		{math.MaxUint32, math.MaxUint32, false},
		{-1, 0, true},
		{math.MaxUint32 + 1, 0, true},
	}
	for _, tt := range tests {
		got, err := IntToUint32(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrOverflow, "in %d", tt.in)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestInt64ToInt(t *testing.T) {
	got, err := Int64ToInt(math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	got, err = Int64ToInt(-5)
	assert.NoError(t, err)
	assert.Equal(t, -5, got)
}
