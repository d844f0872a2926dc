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

// PointToCell returns the index of the cell containing point (x, y).
// The point must lie within [0, LenX) and [0, LenY).
func (g *Grid) PointToCell(x, y float64) (ix, iy int, err error) {
	lenX, lenY := g.plot.LenX(), g.plot.LenY()
	if !(x >= 0 && x < lenX && y >= 0 && y < lenY) {
		return 0, 0, fmt.Errorf("forestgrid: grid %s: point (%g, %g) with plot %gx%g: %w",
			g.name, x, y, lenX, lenY, ErrOutOfBounds)
	}
	return axisIndex(x, g.cellX, g.nx), axisIndex(y, g.cellY, g.ny), nil
}

// axisIndex returns the cell index of coordinate v along an axis with n
// cells of length cell.
func axisIndex(v, cell float64, n int) int {
	i := int(math.Floor(v / cell))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// CellToPoint returns the centroid of cell (ix, iy). The last row and
// column may be shorter than the nominal cell length; their centroids
// lie halfway across the remaining length.
func (g *Grid) CellToPoint(ix, iy int) (geom.Point, error) {
	if _, err := g.cell(ix, iy); err != nil {
		return geom.Point{}, err
	}
	ox, oy := float64(ix)*g.cellX, float64(iy)*g.cellY
	return geom.Point{
		X: ox + g.extentX(ix)/2,
		Y: oy + g.extentY(iy)/2,
	}, nil
}

// extentX returns the true X length of column ix.
func (g *Grid) extentX(ix int) float64 {
	if ix == g.nx-1 {
		return g.plot.LenX() - float64(ix)*g.cellX
	}
	return g.cellX
}

// extentY returns the true Y length of row iy.
func (g *Grid) extentY(iy int) float64 {
	if iy == g.ny-1 {
		return g.plot.LenY() - float64(iy)*g.cellY
	}
	return g.cellY
}

// OriginX returns the lowest X coordinate of column ix.
func (g *Grid) OriginX(ix int) (float64, error) {
	if ix < 0 || ix >= g.nx {
		return 0, g.axisError("X", ix, g.nx)
	}
	return float64(ix) * g.cellX, nil
}

// OriginY returns the lowest Y coordinate of row iy.
func (g *Grid) OriginY(iy int) (float64, error) {
	if iy < 0 || iy >= g.ny {
		return 0, g.axisError("Y", iy, g.ny)
	}
	return float64(iy) * g.cellY, nil
}

// EndX returns the highest X coordinate of column ix. For the last
// column this is VerySmall short of the plot edge so that it still maps
// back into the grid.
func (g *Grid) EndX(ix int) (float64, error) {
	if ix < 0 || ix >= g.nx {
		return 0, g.axisError("X", ix, g.nx)
	}
	if ix == g.nx-1 {
		return g.plot.LenX() - VerySmall, nil
	}
	return float64(ix+1) * g.cellX, nil
}

// EndY returns the highest Y coordinate of row iy. For the last row this
// is VerySmall short of the plot edge.
func (g *Grid) EndY(iy int) (float64, error) {
	if iy < 0 || iy >= g.ny {
		return 0, g.axisError("Y", iy, g.ny)
	}
	if iy == g.ny-1 {
		return g.plot.LenY() - VerySmall, nil
	}
	return float64(iy+1) * g.cellY, nil
}

// CellBounds returns the area covered by cell (ix, iy).
func (g *Grid) CellBounds(ix, iy int) (*geom.Bounds, error) {
	if _, err := g.cell(ix, iy); err != nil {
		return nil, err
	}
	ox, oy := float64(ix)*g.cellX, float64(iy)*g.cellY
	return &geom.Bounds{
		Min: geom.Point{X: ox, Y: oy},
		Max: geom.Point{X: ox + g.extentX(ix), Y: oy + g.extentY(iy)},
	}, nil
}

func (g *Grid) axisError(axis string, i, n int) error {
	return fmt.Errorf("forestgrid: grid %s: %s index %d is outside of [0, %d): %w",
		g.name, axis, i, n, ErrInvalidArgument)
}
