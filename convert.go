package chestconv

import (
	"fmt"
	"image"
)

// AtlasSize is the width and height of every converted atlas.
const AtlasSize = 64

// Options configures a single conversion.
type Options struct {
	// FlipSingle treats the front and back of a single chest atlas as
	// already swapped. It has no effect on double chests.
	FlipSingle bool
	// Debug paints the face layout into the outputs before copying, so
	// faces that receive no pixels stay coloured.
	Debug bool
}

// NewAtlas allocates a transparent AtlasSize x AtlasSize atlas.
func NewAtlas() *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, AtlasSize, AtlasSize))
}

// ConvertDouble splits a legacy double chest atlas into the left and right
// atlases of the new layout.
func ConvertDouble(src image.Image, opts Options) (left, right *image.NRGBA, err error) {
	left = NewAtlas()
	right = NewAtlas()

	if opts.Debug {
		for _, box := range DoubleBoxes {
			net := box.Half().Net()
			DrawNet(left, net)
			DrawNet(right, net)
		}
	}

	for _, box := range DoubleBoxes {
		err := SplitBox(left, right, src, box, box.Origin)
		if err != nil {
			return nil, nil, fmt.Errorf("chestconv: ConvertDouble: box %dx%dx%d: %w",
				box.Width, box.Height, box.Length, err)
		}
	}

	return left, right, nil
}

// ConvertSingle converts a legacy single chest atlas to the new layout.
func ConvertSingle(src image.Image, opts Options) (*image.NRGBA, error) {
	single := NewAtlas()

	if opts.Debug {
		for _, box := range SingleBoxes {
			DrawNet(single, box.Net())
		}
	}

	for _, box := range SingleBoxes {
		err := FlipBox(single, src, box, box.Origin, opts.FlipSingle)
		if err != nil {
			return nil, fmt.Errorf("chestconv: ConvertSingle: box %dx%dx%d: %w",
				box.Width, box.Height, box.Length, err)
		}
	}

	return single, nil
}
