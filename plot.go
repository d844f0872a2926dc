/*
Copyright © 2019 the ForestGrid authors.
This file is part of ForestGrid.

ForestGrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ForestGrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ForestGrid.  If not, see <http://www.gnu.org/licenses/>.
*/

package forestgrid

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// DefaultCellLength is the cell length, in meters, used when a plot is
// created without one.
const DefaultCellLength = 8.

// Plot holds the extent of the simulated area. Its opposite edges are
// adjacent: positions and distances wrap around.
type Plot struct {
	lenX, lenY float64
	cellLength float64
}

// NewPlot returns a plot lenX by lenY meters in size. cellLength is the
// default edge length of grid cells; zero selects DefaultCellLength.
func NewPlot(lenX, lenY, cellLength float64) (*Plot, error) {
	if !(lenX > 0) || !(lenY > 0) {
		return nil, fmt.Errorf("forestgrid: plot lengths must be > 0 but are %g and %g: %w",
			lenX, lenY, ErrInvalidArgument)
	}
	if cellLength < 0 {
		return nil, fmt.Errorf("forestgrid: plot cell length must not be negative but is %g: %w",
			cellLength, ErrInvalidArgument)
	}
	if cellLength == 0 {
		cellLength = DefaultCellLength
	}
	return &Plot{lenX: lenX, lenY: lenY, cellLength: cellLength}, nil
}

// LenX returns the length of the plot in the X direction [m].
func (p *Plot) LenX() float64 { return p.lenX }

// LenY returns the length of the plot in the Y direction [m].
func (p *Plot) LenY() float64 { return p.lenY }

// CellLength returns the default grid cell length [m].
func (p *Plot) CellLength() float64 { return p.cellLength }

// Bounds returns the extent of the plot.
func (p *Plot) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: 0, Y: 0},
		Max: geom.Point{X: p.lenX, Y: p.lenY},
	}
}

// CorrectX folds x into [0, LenX).
func (p *Plot) CorrectX(x float64) float64 { return wrap(x, p.lenX) }

// CorrectY folds y into [0, LenY).
func (p *Plot) CorrectY(y float64) float64 { return wrap(y, p.lenY) }

// Distance returns the shortest distance between two points,
// taking the wrap-around edges into account.
func (p *Plot) Distance(x1, y1, x2, y2 float64) float64 {
	dx := math.Abs(p.CorrectX(x2) - p.CorrectX(x1))
	dy := math.Abs(p.CorrectY(y2) - p.CorrectY(y1))
	if dx > p.lenX/2 {
		dx = p.lenX - dx
	}
	if dy > p.lenY/2 {
		dy = p.lenY - dy
	}
	return math.Hypot(dx, dy)
}

func wrap(v, length float64) float64 {
	v = math.Mod(v, length)
	if v < 0 {
		v += length
	}
	if v >= length { // -tiny + length rounds up to length
		v = 0
	}
	return v
}
