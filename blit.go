package chestconv

import (
	"image"
	"image/draw"
)

// Mirror selects the axes a copied rectangle is mirrored along.
type Mirror uint8

// Possible mirror flags.
const (
	MirrorX = Mirror(1 << iota)
	MirrorY
	MirrorNone = Mirror(0)
	MirrorXY   = MirrorX | MirrorY
)

// Has returns whether or not all flags of m2 are set in m.
func (m Mirror) Has(m2 Mirror) bool {
	return (m & m2) == m2
}

// CopyRect copies the pixels of sr in src to dr in dst. Only the overlap of
// the two sizes is copied, anchored at the top left of both rectangles.
// offset is added to the source coordinates only. The copied block is
// mirrored according to mirror.
//
// Coordinates are relative to the top left of each image's bounds. If any
// pixel would be read or written outside an image, a *GeometryError is
// returned and nothing is copied.
func CopyRect(dst draw.Image, dr image.Rectangle, src image.Image,
	sr image.Rectangle, offset image.Point, mirror Mirror) error {
	w := min(sr.Dx(), dr.Dx())
	h := min(sr.Dy(), dr.Dy())
	if w <= 0 || h <= 0 {
		return nil
	}

	srcBounds := src.Bounds()
	read := image.Rect(0, 0, w, h).Add(sr.Min).Add(offset).Add(srcBounds.Min)
	if !read.In(srcBounds) {
		return &GeometryError{Op: "read", Rect: read, Bounds: srcBounds}
	}

	dstBounds := dst.Bounds()
	write := image.Rect(0, 0, w, h).Add(dr.Min).Add(dstBounds.Min)
	if !write.In(dstBounds) {
		return &GeometryError{Op: "write", Rect: write, Bounds: dstBounds}
	}

	for y := 0; y < h; y++ {
		uy := y
		if mirror.Has(MirrorY) {
			uy = h - y - 1
		}
		for x := 0; x < w; x++ {
			ux := x
			if mirror.Has(MirrorX) {
				ux = w - x - 1
			}
			dst.Set(write.Min.X+ux, write.Min.Y+uy, src.At(read.Min.X+x, read.Min.Y+y))
		}
	}

	return nil
}
