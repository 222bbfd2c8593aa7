package chestconv

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// FaceColors are the fill colours used by DrawNet, one hue per face in Net
// order.
var FaceColors = [6]color.Color{
	North: colorful.Hsv(240, 1, 1),
	East:  colorful.Hsv(120, 1, 1),
	South: colorful.Hsv(60, 1, 1),
	West:  colorful.Hsv(0, 1, 1),
	Up:    colorful.Hsv(30, 1, 1),
	Down:  colorful.Hsv(300, 1, 1),
}

// DrawNet fills every face of net in dst with its FaceColors entry. It is a
// debugging aid for checking box layouts against an atlas.
func DrawNet(dst draw.Image, net Net) {
	origin := dst.Bounds().Min
	for _, f := range Faces {
		draw.Draw(dst, net[f].Add(origin), image.NewUniform(FaceColors[f]),
			image.Point{}, draw.Src)
	}
}
