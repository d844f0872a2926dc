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
)

// GridSpec describes the shape of a grid: its name, the number of field
// slots of each kind and the cell edge lengths. A cell length of zero
// selects the plot's default for X and the X cell length for Y.
type GridSpec struct {
	Name                       string
	Ints, Floats, Texts, Bools int
	CellX, CellY               float64
}

// Grid is a spatial data store covering the whole plot with a regular
// array of cells.
type Grid struct {
	name string
	plot *Plot

	cellX, cellY float64 // nominal cell lengths [m]
	nx, ny       int

	cellSchema schema
	pkgSchema  schema

	// pkgSchemaChanged is set by ChangePackageSchema; from then on cell
	// field registrations are no longer mirrored into the package schema.
	pkgSchemaChanged bool

	// pkgsCreated is set when the first package is created and freezes
	// the package schema.
	pkgsCreated bool

	cells []Cell // index: ix*ny + iy
}

// Cell is one element of a grid. Cells are created with the grid and
// live as long as it does.
type Cell struct {
	x, y   int
	ints   []int
	floats []float64
	texts  []string
	bools  []bool
	first  *Package // head of the package list
}

// NewGrid creates a grid over plot with the shape given in spec.
// All fields start out as zero, false or empty. The package schema starts
// out with the same slot counts as the cell schema.
func NewGrid(plot *Plot, spec GridSpec) (*Grid, error) {
	if plot == nil {
		return nil, fmt.Errorf("forestgrid: grid %q: nil plot: %w", spec.Name, ErrInvalidArgument)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("forestgrid: grid name must not be empty: %w", ErrInvalidArgument)
	}
	counts := []int{spec.Ints, spec.Floats, spec.Texts, spec.Bools}
	for i, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("forestgrid: grid %s: %s field count must not be negative but is %d: %w",
				spec.Name, Kind(i), n, ErrInvalidArgument)
		}
	}
	if spec.CellX < 0 || spec.CellY < 0 {
		return nil, fmt.Errorf("forestgrid: grid %s: cell lengths must not be negative but are %g and %g: %w",
			spec.Name, spec.CellX, spec.CellY, ErrInvalidArgument)
	}
	g := &Grid{
		name:       spec.Name,
		plot:       plot,
		cellX:      spec.CellX,
		cellY:      spec.CellY,
		cellSchema: newSchema(spec.Ints, spec.Floats, spec.Texts, spec.Bools),
		pkgSchema:  newSchema(spec.Ints, spec.Floats, spec.Texts, spec.Bools),
	}
	if g.cellX == 0 {
		g.cellX = plot.CellLength()
	}
	if g.cellY == 0 {
		g.cellY = g.cellX
	}
	g.nx = numCells(plot.LenX(), g.cellX)
	g.ny = numCells(plot.LenY(), g.cellY)

	g.cells = make([]Cell, g.nx*g.ny)
	for ix := 0; ix < g.nx; ix++ {
		for iy := 0; iy < g.ny; iy++ {
			c := &g.cells[ix*g.ny+iy]
			c.x, c.y = ix, iy
			c.alloc(&g.cellSchema)
		}
	}
	return g, nil
}

// numCells returns the number of cells of the given length needed to
// cover length, the last one possibly shorter.
func numCells(length, cell float64) int {
	n := int(math.Ceil(length / cell))
	for n > 1 && float64(n-1)*cell >= length {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Cell) alloc(s *schema) {
	if n := s.count(IntField); n > 0 {
		c.ints = make([]int, n)
	}
	if n := s.count(FloatField); n > 0 {
		c.floats = make([]float64, n)
	}
	if n := s.count(TextField); n > 0 {
		c.texts = make([]string, n)
	}
	if n := s.count(BoolField); n > 0 {
		c.bools = make([]bool, n)
	}
}

// Name returns the name of the grid.
func (g *Grid) Name() string { return g.name }

// Plot returns the plot the grid covers.
func (g *Grid) Plot() *Plot { return g.plot }

// NumXCells returns the number of cells in the X direction.
func (g *Grid) NumXCells() int { return g.nx }

// NumYCells returns the number of cells in the Y direction.
func (g *Grid) NumYCells() int { return g.ny }

// CellLengthX returns the nominal cell length in the X direction [m].
func (g *Grid) CellLengthX() float64 { return g.cellX }

// CellLengthY returns the nominal cell length in the Y direction [m].
func (g *Grid) CellLengthY() float64 { return g.cellY }

// cell returns the cell at index (ix, iy).
func (g *Grid) cell(ix, iy int) (*Cell, error) {
	if ix < 0 || ix >= g.nx || iy < 0 || iy >= g.ny {
		return nil, fmt.Errorf("forestgrid: grid %s: cell (%d, %d) is outside of the %dx%d grid: %w",
			g.name, ix, iy, g.nx, g.ny, ErrInvalidArgument)
	}
	return &g.cells[ix*g.ny+iy], nil
}

// ChangePackageSchema gives packages their own number of field slots of
// each kind. It clears any package labels registered so far and stops
// cell field registrations from being mirrored into the package schema.
// It fails with ErrIllegalOperation once any package has been created.
func (g *Grid) ChangePackageSchema(ints, floats, texts, bools int) error {
	if g.pkgsCreated {
		return fmt.Errorf("forestgrid: grid %s: package schema cannot change after packages have been created: %w",
			g.name, ErrIllegalOperation)
	}
	for i, n := range []int{ints, floats, texts, bools} {
		if n < 0 {
			return fmt.Errorf("forestgrid: grid %s: %s package field count must not be negative but is %d: %w",
				g.name, Kind(i), n, ErrInvalidArgument)
		}
	}
	g.pkgSchema = newSchema(ints, floats, texts, bools)
	g.pkgSchemaChanged = true
	return nil
}

// PackageSchemaChanged reports whether ChangePackageSchema has been called.
func (g *Grid) PackageSchemaChanged() bool { return g.pkgSchemaChanged }

// ResetValues sets every cell field to zero, false or the empty string.
// Packages are left alone.
func (g *Grid) ResetValues() {
	for i := range g.cells {
		c := &g.cells[i]
		for j := range c.ints {
			c.ints[j] = 0
		}
		for j := range c.floats {
			c.floats[j] = 0
		}
		for j := range c.texts {
			c.texts[j] = ""
		}
		for j := range c.bools {
			c.bools[j] = false
		}
	}
}

// teardown releases everything the grid owns: packages first, then the
// cell arrays, the cells and finally the label tables. The grid is
// unusable afterwards.
func (g *Grid) teardown() {
	g.DeleteAllPackages()
	for i := range g.cells {
		c := &g.cells[i]
		c.ints, c.floats, c.texts, c.bools = nil, nil, nil, nil
	}
	g.cells = nil
	g.nx, g.ny = 0, 0
	g.cellSchema = schema{}
	g.pkgSchema = schema{}
}
