package globe3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameRejectsEmpty(t *testing.T) {
	_, err := NewFrame(0, 4)
	assert.Error(t, err)
	_, err = NewFrame(4, -1)
	assert.Error(t, err)
}

func TestFrameToNRGBA(t *testing.T) {
	f, err := NewFrame(3, 2)
	require.NoError(t, err)
	f.Set(0, 0, RGB{1, 1, 1})
	f.Set(1, 0, RGB{srgbToLinear[128], srgbToLinear[64], 5})
	f.Set(2, 1, RGB{-1, 0, 0})
	assert.Equal(t, RGB{1, 1, 1}, f.At(0, 0))

	img := f.ToNRGBA(1)
	assert.Equal(t, []uint8{255, 255, 255, 255}, img.Pix[0:4])
	assert.Equal(t, []uint8{128, 64, 255, 255}, img.Pix[4:8])
	p := img.PixOffset(2, 1)
	assert.Equal(t, []uint8{0, 0, 0, 255}, img.Pix[p:p+4])
}

func TestFrameGammaBrightens(t *testing.T) {
	f, err := NewFrame(1, 1)
	require.NoError(t, err)
	f.Set(0, 0, RGB{srgbToLinear[64], srgbToLinear[64], srgbToLinear[64]})
	plain := f.ToNRGBA(1).Pix[0]
	bright := f.ToNRGBA(2).Pix[0]
	dark := f.ToNRGBA(0.5).Pix[0]
	assert.Greater(t, bright, plain)
	assert.Less(t, dark, plain)
}

func TestFrameToNRGBA64(t *testing.T) {
	f, err := NewFrame(2, 1)
	require.NoError(t, err)
	f.Set(0, 0, RGB{1, 0, 1})
	img := f.ToNRGBA64(1)
	assert.Equal(t, []uint8{0xFF, 0xFF, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}, img.Pix[0:8])
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 0, 0xFF, 0xFF}, img.Pix[8:16])
}
