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

	"gonum.org/v1/gonum/floats"
)

// AverageFloat returns the mean of floating-point field code over every
// cell touched by the circle of the given radius around (x, y). Each
// touched cell counts once regardless of how much of it lies inside the
// circle. The circle wraps around the plot edges. A radius of zero
// returns the value of the cell containing (x, y).
func (g *Grid) AverageFloat(x, y float64, code int, radius float64) (float64, error) {
	cells, err := g.circleQuery(FloatField, x, y, code, radius)
	if err != nil {
		return 0, err
	}
	return g.mean(FloatField, code, cells), nil
}

// AverageInt is like AverageFloat for integer field code.
func (g *Grid) AverageInt(x, y float64, code int, radius float64) (float64, error) {
	cells, err := g.circleQuery(IntField, x, y, code, radius)
	if err != nil {
		return 0, err
	}
	return g.mean(IntField, code, cells), nil
}

// AverageFloatRect returns the mean of floating-point field code over every
// cell wholly or partly inside the rectangle [fromX, toX] x [fromY, toY].
// The rectangle does not wrap around the plot edges; its corners must lie
// within the plot.
func (g *Grid) AverageFloatRect(fromX, fromY, toX, toY float64, code int) (float64, error) {
	cells, err := g.rectQuery(FloatField, fromX, fromY, toX, toY, code)
	if err != nil {
		return 0, err
	}
	return g.mean(FloatField, code, cells), nil
}

// AverageIntRect is like AverageFloatRect for integer field code.
func (g *Grid) AverageIntRect(fromX, fromY, toX, toY float64, code int) (float64, error) {
	cells, err := g.rectQuery(IntField, fromX, fromY, toX, toY, code)
	if err != nil {
		return 0, err
	}
	return g.mean(IntField, code, cells), nil
}

func (g *Grid) mean(k Kind, code int, cells []*Cell) float64 {
	vals := make([]float64, len(cells))
	for i, c := range cells {
		if k == IntField {
			vals[i] = float64(c.ints[code])
		} else {
			vals[i] = c.floats[code]
		}
	}
	return floats.Sum(vals) / float64(len(vals))
}

func (g *Grid) circleQuery(k Kind, x, y float64, code int, radius float64) ([]*Cell, error) {
	if err := g.checkCode(k, code); err != nil {
		return nil, err
	}
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("forestgrid: grid %s: radius must not be negative but is %g: %w",
			g.name, radius, ErrInvalidArgument)
	}
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return nil, err
	}
	if radius == 0 {
		return []*Cell{&g.cells[ix*g.ny+iy]}, nil
	}
	return g.circleCells(x, y, radius), nil
}

func (g *Grid) rectQuery(k Kind, fromX, fromY, toX, toY float64, code int) ([]*Cell, error) {
	if err := g.checkCode(k, code); err != nil {
		return nil, err
	}
	if fromX > toX || fromY > toY {
		return nil, fmt.Errorf("forestgrid: grid %s: rectangle (%g, %g)-(%g, %g) has negative area: %w",
			g.name, fromX, fromY, toX, toY, ErrInvalidArgument)
	}
	lenX, lenY := g.plot.LenX(), g.plot.LenY()
	for _, p := range [][2]float64{{fromX, fromY}, {toX, toY}} {
		if !(p[0] >= 0 && p[0] <= lenX && p[1] >= 0 && p[1] <= lenY) {
			return nil, fmt.Errorf("forestgrid: grid %s: rectangle corner (%g, %g) with plot %gx%g: %w",
				g.name, p[0], p[1], lenX, lenY, ErrOutOfBounds)
		}
	}
	ixLo, ixHi := axisIndex(fromX, g.cellX, g.nx), upperIndex(fromX, toX, g.cellX, g.nx)
	iyLo, iyHi := axisIndex(fromY, g.cellY, g.ny), upperIndex(fromY, toY, g.cellY, g.ny)
	s := g.newCellSet()
	for iy := iyLo; iy <= iyHi; iy++ {
		s.addSpan(iy, ixLo, ixHi, false)
	}
	return s.cells, nil
}

// upperIndex returns the index of the last cell covered by the interval
// [from, to]. An upper bound lying exactly on a grid line only touches
// the next cell, so that cell is left out.
func upperIndex(from, to, cell float64, n int) int {
	i := axisIndex(to, cell, n)
	if to > from && to == float64(i)*cell && i > 0 {
		i--
	}
	return i
}

// circleCells returns every cell touched by the circle of radius r around
// (cx, cy), folding indices that run off one edge of the grid back in at
// the opposite edge. On an axis where the radius reaches half the plot
// length the search window is clamped to half a plot either side of the
// centre, so each cell along that axis is visited once.
func (g *Grid) circleCells(cx, cy, r float64) []*Cell {
	lenX, lenY := g.plot.LenX(), g.plot.LenY()
	clampX := r >= lenX/2
	clampY := r >= lenY/2
	ry := r
	if clampY {
		ry = lenY / 2
	}

	s := g.newCellSet()
	icx := axisIndex(cx, g.cellX, g.nx)
	icy := axisIndex(cy, g.cellY, g.ny)
	onLine := cx == float64(icx)*g.cellX

	iyLo := unwrappedIndex(cy-ry, g.cellY, g.ny, lenY)
	iyHi := unwrappedIndex(cy+ry, g.cellY, g.ny, lenY)
	if lo, _ := unwrappedEdges(iyLo, g.cellY, g.ny, lenY); !clampY && lo == cy-ry {
		// The circle touches the grid line below it, so the row under that
		// line is reached too.
		iyLo--
	}
	for iy := iyLo; iy <= iyHi; iy++ {
		if clampX {
			s.addSpan(iy, 0, g.nx-1, true)
			continue
		}
		// Distance from the centre to the nearest edge of this row.
		var dy float64
		lo, hi := unwrappedEdges(iy, g.cellY, g.ny, lenY)
		switch {
		case iy < icy:
			dy = cy - hi
		case iy > icy:
			dy = lo - cy
		}
		disc := r*r - dy*dy
		if disc > 0 {
			hw := math.Sqrt(disc)
			s.addSpan(iy,
				unwrappedIndex(cx-hw, g.cellX, g.nx, lenX),
				unwrappedIndex(cx+hw, g.cellX, g.nx, lenX),
				true)
			continue
		}
		// The circle only reaches this row at the point straight above or
		// below its centre. Rows below the centre take both cells sharing
		// that point when it is on a grid line; rows above take the east one.
		s.addSpan(iy, icx, icx, true)
		if iy < icy && onLine {
			s.addSpan(iy, icx-1, icx-1, true)
		}
	}
	return s.cells
}

// unwrappedIndex returns the cell index of coordinate v along an axis
// repeated end to end, so that coordinates below zero or beyond length
// map to indices below zero or beyond n-1.
func unwrappedIndex(v, cell float64, n int, length float64) int {
	k := math.Floor(v / length)
	rem := v - k*length
	if rem >= length {
		rem = 0
		k++
	}
	return int(k)*n + axisIndex(rem, cell, n)
}

// unwrappedEdges returns the lower and upper coordinate of the cell with
// unwrapped index i.
func unwrappedEdges(i int, cell float64, n int, length float64) (lo, hi float64) {
	k := floorDiv(i, n)
	r := i - k*n
	lo = float64(k)*length + float64(r)*cell
	if r == n-1 {
		return lo, float64(k+1) * length
	}
	return lo, lo + cell
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int { return a - floorDiv(a, b)*b }

// cellSet collects cells without repetition.
type cellSet struct {
	g     *Grid
	seen  []bool
	cells []*Cell
}

func (g *Grid) newCellSet() *cellSet {
	return &cellSet{g: g, seen: make([]bool, len(g.cells))}
}

// addSpan adds cells ixLo through ixHi of row iy. With wrap set, indices
// outside the grid are folded back in; otherwise they are skipped.
func (s *cellSet) addSpan(iy, ixLo, ixHi int, wrap bool) {
	g := s.g
	if wrap {
		iy = mod(iy, g.ny)
	} else if iy < 0 || iy >= g.ny {
		return
	}
	for ix := ixLo; ix <= ixHi; ix++ {
		i := ix
		if wrap {
			i = mod(ix, g.nx)
		} else if i < 0 || i >= g.nx {
			continue
		}
		idx := i*g.ny + iy
		if s.seen[idx] {
			continue
		}
		s.seen[idx] = true
		s.cells = append(s.cells, &g.cells[idx])
	}
}
