package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheet(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	a := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	a.SetNRGBA(0, 0, red)
	a.SetNRGBA(1, 0, blue)
	b := image.NewNRGBA(image.Rect(0, 0, 1, 3))
	b.SetNRGBA(0, 2, red)

	sheet := Sheet(3, a, b)

	// gap 6 around and between, images scaled by 3
	assert.Equal(t, image.Rect(0, 0, 6+6+6+3+6, 6+9+6), sheet.Bounds())

	tests := []struct {
		name     string
		x, y     int
		expected color.NRGBA
	}{
		{name: "first pixel top left", x: 6, y: 6, expected: red},
		{name: "first pixel bottom right", x: 8, y: 8, expected: red},
		{name: "second pixel", x: 9, y: 6, expected: blue},
		{name: "second pixel bottom right", x: 11, y: 8, expected: blue},
		{name: "second image last row", x: 18, y: 12, expected: red},
		{name: "second image last pixel", x: 20, y: 14, expected: red},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, sheet.NRGBAAt(test.x, test.y))
		})
	}
}

func TestSheetTransparentShowsChecker(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	sheet := Sheet(1, img)

	light := color.NRGBAModel.Convert(Light)
	dark := color.NRGBAModel.Convert(Dark)
	assert.Equal(t, light, sheet.NRGBAAt(0, 0))
	assert.Equal(t, light, sheet.NRGBAAt(3, 3))
	assert.Equal(t, dark, sheet.NRGBAAt(4, 0))
	assert.Equal(t, dark, sheet.NRGBAAt(0, 4))
	assert.Equal(t, light, sheet.NRGBAAt(4, 4))
}

func TestSheetMinimumScale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Equal(t, Sheet(1, img).Bounds(), Sheet(0, img).Bounds())
}
