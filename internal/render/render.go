// Package render draws the fixed-size ASCII scenes shown at each story node.
//
// Every function is pure: it returns a text block and never writes anywhere.
// Dimensions are trusted; the story graph rejects scenes smaller than
// MinSize before a session can start.
package render

import (
	"strings"

	"github.com/tatianab/mini-dungeon/internal/models"
)

const (
	Wall     = '◙'
	Player   = '☻'
	Monster  = '☼'
	Trap     = 'x'
	Treasure = '♦'

	// DoorGap is the width of every doorway, in cells.
	DoorGap = 3
)

// Render draws the scene described by spec. Unknown shapes render as an
// empty block.
func Render(spec models.SceneSpec) string {
	switch spec.Shape {
	case models.ShapeWall:
		return ChamberWall(spec.Width, spec.Height)
	case models.ShapeVerticalChamber:
		return VerticalChamber(spec.Width, spec.Height, spec.Stub, spec.Marker)
	case models.ShapeHorizontalChamber:
		return HorizontalChamber(spec.Width, spec.Height, spec.Stub, spec.Marker, spec.DoorClosed, spec.ExitOpen)
	case models.ShapeCorridor:
		return Corridor(spec.Width, spec.Height, spec.Stub)
	}
	return ""
}

// MinSize returns the smallest width and height a shape can be drawn at.
// ok is false for shapes the renderer does not know.
func MinSize(shape models.Shape) (width, height int, ok bool) {
	switch shape {
	case models.ShapeWall:
		return 2, 1, true
	case models.ShapeVerticalChamber:
		// door gap flanked by the stub walls and the chamber corners;
		// the marker sits on the second interior row
		return DoorGap + 4, 4, true
	case models.ShapeHorizontalChamber:
		return DoorGap + 2, 5, true
	case models.ShapeCorridor:
		return DoorGap + 4, 3, true
	}
	return 0, 0, false
}

// MinStub is the shortest corridor stub a shape accepts.
func MinStub(shape models.Shape) int {
	if shape == models.ShapeHorizontalChamber {
		// one cell for the door, one for the player standing in front of it
		return 2
	}
	return 0
}

// ChamberWall draws two wall columns thickness cells apart, height rows tall.
func ChamberWall(thickness, height int) string {
	c := newCanvas(thickness, height)
	for y := 0; y < height; y++ {
		c.set(0, y, Wall)
		c.set(thickness-1, y, Wall)
	}
	return c.String()
}

// VerticalChamber draws a chamber entered from below and left through the
// top, both doors centred. The marker sits on the second interior row.
func VerticalChamber(width, height, stub int, marker models.Marker) string {
	c := newCanvas(width, stub+height+stub)
	mid := width / 2

	c.branch(mid, 0, stub)
	top := stub
	bottom := stub + height - 1
	c.wallWithDoor(0, width-1, top, mid)
	for y := top + 1; y < bottom; y++ {
		c.set(0, y, Wall)
		c.set(width-1, y, Wall)
	}
	c.wallWithDoor(0, width-1, bottom, mid)
	c.branch(mid, bottom+1, stub)

	if g, ok := markerGlyph(marker); ok {
		c.set(mid, top+2, g)
	}
	c.set(mid, bottom, Player)
	return c.String()
}

// HorizontalChamber draws a chamber entered from the left through a corridor
// stub, with the marker at its centre. doorClosed turns the mouth of the
// entry corridor into solid wall; exitOpen cuts a doorway and stub into the
// far wall.
func HorizontalChamber(width, height, stub int, marker models.Marker, doorClosed, exitOpen bool) string {
	total := stub + width
	if exitOpen {
		total += stub
	}
	c := newCanvas(total, height)
	x0, x1 := stub, stub+width-1
	mid := height / 2

	c.hline(x0, x1, 0, Wall)
	c.hline(x0, x1, height-1, Wall)
	for y := 1; y < height-1; y++ {
		if y == mid {
			continue
		}
		c.set(x0, y, Wall)
		c.set(x1, y, Wall)
	}
	if !exitOpen {
		c.set(x1, mid, Wall)
	}

	c.hline(0, x0, mid-1, Wall)
	c.hline(0, x0, mid+1, Wall)
	if exitOpen {
		c.hline(x1, total-1, mid-1, Wall)
		c.hline(x1, total-1, mid+1, Wall)
	}

	if doorClosed {
		c.set(0, mid, Wall)
	}
	c.set(stub-1, mid, Player)
	if g, ok := markerGlyph(marker); ok {
		c.set(x0+width/2, mid, g)
	}
	return c.String()
}

// Corridor draws a straight corridor height rows tall with a doorway in its
// upper wall leading into a stub, and the player a quarter of the way along.
func Corridor(width, height, stub int) string {
	c := newCanvas(width, stub+height)
	mid := width / 2

	c.branch(mid, 0, stub)
	top := stub
	c.wallWithDoor(0, width-1, top, mid)
	c.hline(0, width-1, top+height-1, Wall)
	c.set(width/4, top+1, Player)
	return c.String()
}

func markerGlyph(m models.Marker) (rune, bool) {
	switch m {
	case models.MarkerMonster:
		return Monster, true
	case models.MarkerTrap:
		return Trap, true
	case models.MarkerTreasure:
		return Treasure, true
	}
	return 0, false
}

type canvas struct {
	rows [][]rune
}

func newCanvas(width, height int) *canvas {
	rows := make([][]rune, height)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(" ", width))
	}
	return &canvas{rows: rows}
}

func (c *canvas) set(x, y int, r rune) {
	c.rows[y][x] = r
}

// hline fills columns x0 through x1 inclusive.
func (c *canvas) hline(x0, x1, y int, r rune) {
	for x := x0; x <= x1; x++ {
		c.rows[y][x] = r
	}
}

// wallWithDoor draws a wall with a DoorGap-wide opening centred on mid.
func (c *canvas) wallWithDoor(x0, x1, y, mid int) {
	for x := x0; x <= x1; x++ {
		if x >= mid-DoorGap/2 && x <= mid+DoorGap/2 {
			continue
		}
		c.rows[y][x] = Wall
	}
}

// branch draws the two side walls of a vertical stub leading to a door.
func (c *canvas) branch(mid, y0, length int) {
	for y := y0; y < y0+length; y++ {
		c.set(mid-DoorGap/2-1, y, Wall)
		c.set(mid+DoorGap/2+1, y, Wall)
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.rows {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
