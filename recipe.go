package chestconv

import (
	"image"
	"image/draw"
)

// faceCopy is one entry of a conversion table: the from face of the source
// net is copied to the to face of the destination net. When shift is set the
// source is read half a box width further right, selecting the second half
// of a double chest face.
type faceCopy struct {
	from   Face
	to     Face
	shift  bool
	mirror Mirror
}

// Split tables. The east face only goes to the left half and the west face
// only to the right half; the other two become the inner seam of the double
// chest and are left empty.
var (
	splitRight = []faceCopy{
		{from: North, to: South, mirror: MirrorXY},
		{from: Up, to: Down, mirror: MirrorY},
		{from: Down, to: Up, mirror: MirrorY},
		{from: West, to: West, mirror: MirrorXY},
		{from: South, to: North, shift: true, mirror: MirrorXY},
	}
	splitLeft = []faceCopy{
		{from: North, to: South, shift: true, mirror: MirrorXY},
		{from: Up, to: Down, shift: true, mirror: MirrorY},
		{from: Down, to: Up, shift: true, mirror: MirrorY},
		{from: East, to: East, mirror: MirrorXY},
		{from: South, to: North, mirror: MirrorXY},
	}
)

// Flip tables.
var (
	flipNormal = []faceCopy{
		{from: Up, to: Down, mirror: MirrorY},
		{from: Down, to: Up, mirror: MirrorY},
		{from: North, to: South, mirror: MirrorXY},
		{from: East, to: East, mirror: MirrorXY},
		{from: West, to: West, mirror: MirrorXY},
		{from: South, to: North, mirror: MirrorXY},
	}
	// Some texture packs ship single chests with front and back already
	// swapped.
	flipSingle = []faceCopy{
		{from: Up, to: Down, mirror: MirrorY},
		{from: Down, to: Up, mirror: MirrorY},
		{from: North, to: North, mirror: MirrorXY},
		{from: East, to: East, mirror: MirrorY},
		{from: West, to: West, mirror: MirrorY},
		{from: South, to: South, mirror: MirrorXY},
	}
)

func applyTable(dst draw.Image, to Net, src image.Image, from Net,
	half int, table []faceCopy) error {
	for _, c := range table {
		var offset image.Point
		if c.shift {
			offset.X = half
		}
		err := CopyRect(dst, to.Face(c.to), src, from.Face(c.from), offset, c.mirror)
		if err != nil {
			return err
		}
	}

	return nil
}

// SplitBox copies box from a legacy double chest atlas into the left and
// right halves of the new layout. The source net is laid out at the box's
// origin, the half width destination nets at the to origin.
func SplitBox(left, right draw.Image, src image.Image, box Box, to image.Point) error {
	from := box.Net()
	dest := box.Half().NetAt(to)
	half := box.Width / 2

	if err := applyTable(right, dest, src, from, half, splitRight); err != nil {
		return err
	}

	return applyTable(left, dest, src, from, half, splitLeft)
}

// FlipBox copies box from a legacy single chest atlas into the new layout.
// When swapped is set, the front and back of the source are treated as
// already swapped.
func FlipBox(dst draw.Image, src image.Image, box Box, to image.Point, swapped bool) error {
	table := flipNormal
	if swapped {
		table = flipSingle
	}

	return applyTable(dst, box.NetAt(to), src, box.Net(), 0, table)
}
