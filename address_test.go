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
	"errors"
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func TestPointToCell(t *testing.T) {
	g := newTestGrid(t, 25, 10, 10, GridSpec{})
	tests := []struct {
		x, y   float64
		ix, iy int
		err    error
	}{
		{x: 0, y: 0},
		{x: 9.999, y: 9.999, ix: 0, iy: 0},
		{x: 10, y: 5, ix: 1, iy: 0},
		{x: 24.999, y: 9.999, ix: 2, iy: 0},
		{x: 25, y: 0, err: ErrOutOfBounds},
		{x: 0, y: -0.001, err: ErrOutOfBounds},
		{x: math.NaN(), y: 0, err: ErrOutOfBounds},
	}
	for _, tt := range tests {
		ix, iy, err := g.PointToCell(tt.x, tt.y)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("(%g, %g): error %v, want %v", tt.x, tt.y, err, tt.err)
			}
			continue
		}
		if err != nil || ix != tt.ix || iy != tt.iy {
			t.Errorf("(%g, %g) -> (%d, %d, %v), want (%d, %d)", tt.x, tt.y, ix, iy, err, tt.ix, tt.iy)
		}
	}
}

func TestCellToPointRoundTrip(t *testing.T) {
	for _, g := range []*Grid{
		newTestGrid(t, 25, 10, 10, GridSpec{}),
		newTestGrid(t, 100, 60, 0, GridSpec{CellX: 7, CellY: 9}),
	} {
		for ix := 0; ix < g.NumXCells(); ix++ {
			for iy := 0; iy < g.NumYCells(); iy++ {
				p, err := g.CellToPoint(ix, iy)
				if err != nil {
					t.Fatal(err)
				}
				jx, jy, err := g.PointToCell(p.X, p.Y)
				if err != nil || jx != ix || jy != iy {
					t.Errorf("cell (%d, %d) -> %v -> (%d, %d, %v)", ix, iy, p, jx, jy, err)
				}
			}
		}
		// The end of the last cell is still inside the plot.
		lx, ly := g.NumXCells()-1, g.NumYCells()-1
		ex, _ := g.EndX(lx)
		ey, _ := g.EndY(ly)
		jx, jy, err := g.PointToCell(ex, ey)
		if err != nil || jx != lx || jy != ly {
			t.Errorf("end of cell (%d, %d) -> (%d, %d, %v)", lx, ly, jx, jy, err)
		}
	}
}

func TestForeshortenedCell(t *testing.T) {
	g := newTestGrid(t, 25, 10, 10, GridSpec{})
	p, err := g.CellToPoint(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := (geom.Point{X: 22.5, Y: 5}); p != want {
		t.Errorf("centroid %v, want %v", p, want)
	}
	b, err := g.CellBounds(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := &geom.Bounds{Min: geom.Point{X: 20, Y: 0}, Max: geom.Point{X: 25, Y: 10}}
	if *b != *want {
		t.Errorf("bounds %v, want %v", b, want)
	}
	if ex, _ := g.EndX(2); ex != 25-VerySmall {
		t.Errorf("EndX(2) = %g", ex)
	}
	if ex, _ := g.EndX(1); ex != 20 {
		t.Errorf("EndX(1) = %g", ex)
	}
	if ox, _ := g.OriginX(2); ox != 20 {
		t.Errorf("OriginX(2) = %g", ox)
	}
	if oy, _ := g.OriginY(0); oy != 0 {
		t.Errorf("OriginY(0) = %g", oy)
	}
	if _, err := g.OriginY(1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("OriginY(1): %v", err)
	}
	if _, err := g.CellToPoint(3, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("CellToPoint(3, 0): %v", err)
	}
}
