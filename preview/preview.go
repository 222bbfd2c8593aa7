// Package preview renders atlases side by side, enlarged, on a checkerboard
// so transparent areas stay visible.
package preview

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/gift"
	"golang.org/x/image/colornames"
)

// Checkerboard colours.
var (
	Light color.Color = colornames.White
	Dark  color.Color = colornames.Lightgray
)

// Sheet enlarges every image by scale and lays them out left to right,
// separated and surrounded by a gap of 2*scale pixels. Scaling uses nearest
// neighbour sampling so every pixel becomes a scale x scale block of the same
// colour. A scale below 1 is treated as 1.
func Sheet(scale int, imgs ...image.Image) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	gap := 2 * scale

	width := gap
	height := 0
	for _, img := range imgs {
		width += img.Bounds().Dx()*scale + gap
		height = max(height, img.Bounds().Dy()*scale)
	}
	height += 2 * gap

	sheet := image.NewNRGBA(image.Rect(0, 0, width, height))
	checker(sheet, 4*scale)

	x := gap
	for _, img := range imgs {
		b := img.Bounds()
		g := gift.New(gift.Resize(b.Dx()*scale, b.Dy()*scale, gift.NearestNeighborResampling))
		g.DrawAt(sheet, img, image.Pt(x, gap), gift.OverOperator)
		x += b.Dx()*scale + gap
	}

	return sheet
}

func checker(dst draw.Image, cell int) {
	b := dst.Bounds()
	light := image.NewUniform(Light)
	dark := image.NewUniform(Dark)
	for y := b.Min.Y; y < b.Max.Y; y += cell {
		for x := b.Min.X; x < b.Max.X; x += cell {
			src := light
			if ((x-b.Min.X)/cell+(y-b.Min.Y)/cell)%2 == 1 {
				src = dark
			}
			draw.Draw(dst, image.Rect(x, y, x+cell, y+cell).Intersect(b), src,
				image.Point{}, draw.Src)
		}
	}
}
