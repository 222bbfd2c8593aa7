package chestconv

import "image"

// Face identifies one side of a box.
type Face int

// Possible faces, in the order they are stored in a Net.
const (
	North Face = iota
	East
	South
	West
	Up
	Down
)

// Faces lists every face in Net order.
var Faces = [6]Face{North, East, South, West, Up, Down}

var faceNames = [6]string{"north", "east", "south", "west", "up", "down"}

func (f Face) String() string {
	if f < North || f > Down {
		return "unknown"
	}
	return faceNames[f]
}

// Net is the unfolded texture layout of a box: one rectangle per face.
type Net [6]image.Rectangle

// Face returns the rectangle of the given face.
func (n Net) Face(f Face) image.Rectangle {
	return n[f]
}

// ComputeNet lays out the faces of a width x height x length box with its
// texture origin at (u, v).
//
// The side faces share one row starting at v+length, in the order west,
// north, east, south. Up and down sit above that row, side by side, starting
// at u + perimeter/2 - width where perimeter is the combined width of the
// four side faces.
func ComputeNet(width, height, length, u, v int) Net {
	var n Net

	perimeter := 2 * (length + width)
	du := u + perimeter/2
	uu := du - width
	n[Up] = image.Rect(uu, v, uu+width, v+length)
	n[Down] = image.Rect(du, v, du+width, v+length)

	sv := v + length
	n[West] = image.Rect(u, sv, u+length, sv+height)

	nu := u + length
	n[North] = image.Rect(nu, sv, nu+width, sv+height)

	eu := nu + width
	n[East] = image.Rect(eu, sv, eu+length, sv+height)

	su := eu + length
	n[South] = image.Rect(su, sv, su+width, sv+height)

	return n
}

// Box is one cuboid of a chest model together with its atlas origin.
type Box struct {
	Width  int
	Height int
	Length int
	Origin image.Point
}

// Net returns the texture layout of the box at its own origin.
func (b Box) Net() Net {
	return b.NetAt(b.Origin)
}

// NetAt returns the texture layout of the box at the given origin.
func (b Box) NetAt(origin image.Point) Net {
	return ComputeNet(b.Width, b.Height, b.Length, origin.X, origin.Y)
}

// Half returns the box with its width halved, as used by each side of a
// split double chest.
func (b Box) Half() Box {
	b.Width /= 2
	return b
}

// Chest model boxes. Double chest boxes are exactly twice as wide as the
// single chest ones; the latch is shared.
var (
	SingleBody = Box{Width: 14, Height: 10, Length: 14, Origin: image.Pt(0, 19)}
	SingleLid  = Box{Width: 14, Height: 5, Length: 14, Origin: image.Pt(0, 0)}
	DoubleBody = Box{Width: 30, Height: 10, Length: 14, Origin: image.Pt(0, 19)}
	DoubleLid  = Box{Width: 30, Height: 5, Length: 14, Origin: image.Pt(0, 0)}
	Latch      = Box{Width: 2, Height: 4, Length: 1, Origin: image.Pt(0, 0)}
)

// SingleBoxes and DoubleBoxes are the boxes converted for each atlas kind,
// in conversion order.
var (
	SingleBoxes = []Box{SingleBody, SingleLid, Latch}
	DoubleBoxes = []Box{DoubleBody, DoubleLid, Latch}
)
