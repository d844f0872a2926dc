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

import "fmt"

// Package is a record attached to a cell. The packages of a cell form a
// singly-linked list whose order is decided by the caller. Packages are
// created and deleted through their grid.
type Package struct {
	ints   []int
	floats []float64
	texts  []string
	bools  []bool

	next *Package
	cell *Cell // owning cell; nil once deleted
	grid *Grid
}

func (g *Grid) newPackage(c *Cell) *Package {
	p := &Package{cell: c, grid: g}
	s := &g.pkgSchema
	if n := s.count(IntField); n > 0 {
		p.ints = make([]int, n)
	}
	if n := s.count(FloatField); n > 0 {
		p.floats = make([]float64, n)
	}
	if n := s.count(TextField); n > 0 {
		p.texts = make([]string, n)
	}
	if n := s.count(BoolField); n > 0 {
		p.bools = make([]bool, n)
	}
	g.pkgsCreated = true
	return p
}

// CreatePackage creates a package and makes it the first package of
// cell (ix, iy).
func (g *Grid) CreatePackage(ix, iy int) (*Package, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return nil, err
	}
	p := g.newPackage(c)
	p.next = c.first
	c.first = p
	return p, nil
}

// CreatePackageAtPoint creates a package and makes it the first package
// of the cell containing point (x, y).
func (g *Grid) CreatePackageAtPoint(x, y float64) (*Package, error) {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return nil, err
	}
	return g.CreatePackage(ix, iy)
}

// CreatePackageAfter creates a package in the same cell as after and
// links it in directly behind it.
func (g *Grid) CreatePackageAfter(after *Package) (*Package, error) {
	if after == nil {
		return nil, fmt.Errorf("forestgrid: grid %s: cannot create a package after a nil package: %w",
			g.name, ErrInvalidArgument)
	}
	if after.grid != g || after.cell == nil {
		return nil, fmt.Errorf("forestgrid: grid %s: anchor package does not belong to this grid: %w",
			g.name, ErrInvalidArgument)
	}
	p := g.newPackage(after.cell)
	p.next = after.next
	after.next = p
	return p, nil
}

// DeletePackage unlinks p from its cell and releases it. Deleting a nil
// package, or one that has already been deleted, does nothing.
func (g *Grid) DeletePackage(p *Package) {
	if p == nil || p.cell == nil || p.grid != g {
		return
	}
	c := p.cell
	if c.first == p {
		c.first = p.next
	} else {
		for prev := c.first; prev != nil; prev = prev.next {
			if prev.next == p {
				prev.next = p.next
				break
			}
		}
	}
	p.release()
}

func (p *Package) release() {
	p.next = nil
	p.cell = nil
	p.ints, p.floats, p.texts, p.bools = nil, nil, nil, nil
}

// DeleteAllPackages deletes every package of every cell.
func (g *Grid) DeleteAllPackages() {
	for i := range g.cells {
		c := &g.cells[i]
		p := c.first
		c.first = nil
		for p != nil {
			next := p.next
			p.release()
			p = next
		}
	}
}

// FirstPackage returns the first package of cell (ix, iy), or nil if the
// cell has none.
func (g *Grid) FirstPackage(ix, iy int) (*Package, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return nil, err
	}
	return c.first, nil
}

// FirstPackageAtPoint returns the first package of the cell containing
// point (x, y), or nil if the cell has none.
func (g *Grid) FirstPackageAtPoint(x, y float64) (*Package, error) {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return nil, err
	}
	return g.FirstPackage(ix, iy)
}

// PackageCount returns the length of the package list of cell (ix, iy).
func (g *Grid) PackageCount(ix, iy int) (int, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return 0, err
	}
	n := 0
	for p := c.first; p != nil; p = p.next {
		n++
	}
	return n, nil
}

// Next returns the package following p in its cell, or nil.
func (p *Package) Next() *Package { return p.next }

// Cell returns the index of the cell p belongs to. ok is false if p has
// been deleted.
func (p *Package) Cell() (ix, iy int, ok bool) {
	if p.cell == nil {
		return 0, 0, false
	}
	return p.cell.x, p.cell.y, true
}

func (p *Package) checkCode(k Kind, code, n int) error {
	if code < 0 || code >= n {
		name := ""
		if p.grid != nil {
			name = p.grid.name
		}
		return fmt.Errorf("forestgrid: grid %s: %s package field code %d is outside of [0, %d): %w",
			name, k, code, n, ErrInvalidArgument)
	}
	return nil
}

// Int returns the value of integer package field code.
func (p *Package) Int(code int) (int, error) {
	if err := p.checkCode(IntField, code, len(p.ints)); err != nil {
		return 0, err
	}
	return p.ints[code], nil
}

// SetInt sets the value of integer package field code.
func (p *Package) SetInt(code int, v int) error {
	if err := p.checkCode(IntField, code, len(p.ints)); err != nil {
		return err
	}
	p.ints[code] = v
	return nil
}

// Float returns the value of floating-point package field code.
func (p *Package) Float(code int) (float64, error) {
	if err := p.checkCode(FloatField, code, len(p.floats)); err != nil {
		return 0, err
	}
	return p.floats[code], nil
}

// SetFloat sets the value of floating-point package field code.
func (p *Package) SetFloat(code int, v float64) error {
	if err := p.checkCode(FloatField, code, len(p.floats)); err != nil {
		return err
	}
	p.floats[code] = v
	return nil
}

// Text returns the value of text package field code.
func (p *Package) Text(code int) (string, error) {
	if err := p.checkCode(TextField, code, len(p.texts)); err != nil {
		return "", err
	}
	return p.texts[code], nil
}

// SetText sets the value of text package field code.
func (p *Package) SetText(code int, v string) error {
	if err := p.checkCode(TextField, code, len(p.texts)); err != nil {
		return err
	}
	p.texts[code] = v
	return nil
}

// Bool returns the value of boolean package field code.
func (p *Package) Bool(code int) (bool, error) {
	if err := p.checkCode(BoolField, code, len(p.bools)); err != nil {
		return false, err
	}
	return p.bools[code], nil
}

// SetBool sets the value of boolean package field code.
func (p *Package) SetBool(code int, v bool) error {
	if err := p.checkCode(BoolField, code, len(p.bools)); err != nil {
		return err
	}
	p.bools[code] = v
	return nil
}
