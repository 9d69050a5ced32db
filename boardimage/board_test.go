package boardimage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func sameColor(t *testing.T, want color.RGBA, got color.Color) {
	t.Helper()
	r, g, b, a := got.RGBA()
	wr, wg, wb, wa := want.RGBA()
	assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{r, g, b, a})
}

func TestRenderTokens(t *testing.T) {
	b, err := Render([]bool{true, false}, 2, 7)
	require.NoError(t, err)
	img := decode(t, b)
	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())

	left := (Width - tokenSpacing*4) / 2
	// token centers are off the pips for two-pip rounds, so probe above them
	sameColor(t, success, img.At(left, tokenY-tokenRadius+2))
	sameColor(t, failure, img.At(left+tokenSpacing, tokenY-tokenRadius+2))
	sameColor(t, pending, img.At(left+2*tokenSpacing, tokenY-tokenRadius+2))
	sameColor(t, twoFails, img.At(left+3*tokenSpacing, tokenY-tokenRadius-2))
	sameColor(t, background, img.At(left+2*tokenSpacing, tokenY-tokenRadius-2))

	rejectLeft := (Width - rejectStep*4) / 2
	sameColor(t, failure, img.At(rejectLeft+rejectStep, rejectY))
	sameColor(t, emptySlot, img.At(rejectLeft+2*rejectStep, rejectY))
}

func TestRenderPips(t *testing.T) {
	b, err := Render(nil, 0, 5)
	require.NoError(t, err)
	img := decode(t, b)

	left := (Width - tokenSpacing*4) / 2
	// round one of five players takes two: pips sit left and right of center
	sameColor(t, pip, img.At(left-pipRadius*2, tokenY))
	sameColor(t, pip, img.At(left+pipRadius*2, tokenY))
	sameColor(t, pending, img.At(left, tokenY))
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := Render(nil, 0, 4)
	assert.Error(t, err)
	_, err = Render(make([]bool, 6), 0, 5)
	assert.Error(t, err)
	_, err = Render(nil, 6, 5)
	assert.Error(t, err)
}

func TestRenderIsPure(t *testing.T) {
	a, err := Render([]bool{true, true, false}, 3, 9)
	require.NoError(t, err)
	b, err := Render([]bool{true, true, false}, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
