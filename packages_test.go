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
	"testing"

	"github.com/kr/pretty"
)

// tags returns the text field 0 of every package of cell (ix, iy), in
// list order.
func (g *Grid) tags(t *testing.T, ix, iy int) []string {
	t.Helper()
	var o []string
	p, err := g.FirstPackage(ix, iy)
	if err != nil {
		t.Fatal(err)
	}
	for ; p != nil; p = p.Next() {
		s, err := p.Text(0)
		if err != nil {
			t.Fatal(err)
		}
		o = append(o, s)
	}
	return o
}

func newPackageGrid(t *testing.T) *Grid {
	g := newTestGrid(t, 10, 10, 5, GridSpec{})
	if err := g.ChangePackageSchema(1, 0, 1, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := g.RegisterPackageText("tag"); err != nil {
		t.Fatal(err)
	}
	return g
}

func (g *Grid) tagged(t *testing.T, p *Package, err error, tag string) *Package {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetText(0, tag); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPackageList(t *testing.T) {
	g := newPackageGrid(t)
	p, err := g.CreatePackage(1, 0)
	a := g.tagged(t, p, err, "a")
	p, err = g.CreatePackage(1, 0)
	b := g.tagged(t, p, err, "b")
	p, err = g.CreatePackageAfter(a)
	c := g.tagged(t, p, err, "c")
	p, err = g.CreatePackageAtPoint(7, 2)
	d := g.tagged(t, p, err, "d")

	want := []string{"d", "b", "a", "c"}
	if diff := pretty.Diff(g.tags(t, 1, 0), want); len(diff) > 0 {
		t.Errorf("list order: %v", diff)
	}
	if n, _ := g.PackageCount(1, 0); n != 4 {
		t.Errorf("count %d", n)
	}
	if ix, iy, ok := c.Cell(); !ok || ix != 1 || iy != 0 {
		t.Errorf("Cell() = %d, %d, %v", ix, iy, ok)
	}

	// Deleting from the middle keeps the order of the rest.
	g.DeletePackage(a)
	want = []string{"d", "b", "c"}
	if diff := pretty.Diff(g.tags(t, 1, 0), want); len(diff) > 0 {
		t.Errorf("after deleting from the middle: %v", diff)
	}
	if _, _, ok := a.Cell(); ok {
		t.Error("deleted package still reports a cell")
	}
	// Deleting the head promotes its successor.
	g.DeletePackage(d)
	first, _ := g.FirstPackageAtPoint(5, 0)
	if first != b {
		t.Errorf("head is %v, want b", first)
	}
	// Deleting again, or deleting nil, does nothing.
	g.DeletePackage(d)
	g.DeletePackage(nil)
	want = []string{"b", "c"}
	if diff := pretty.Diff(g.tags(t, 1, 0), want); len(diff) > 0 {
		t.Errorf("after deleting the head: %v", diff)
	}
	if _, err := g.CreatePackageAfter(a); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("anchor already deleted: %v", err)
	}
}

func TestCreateDeleteRestores(t *testing.T) {
	g := newPackageGrid(t)
	for _, tag := range []string{"x", "y"} {
		p, err := g.CreatePackage(0, 1)
		g.tagged(t, p, err, tag)
	}
	before := g.Fingerprint()
	p, err := g.CreatePackage(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	g.DeletePackage(p)
	if g.Fingerprint() != before {
		t.Error("create then delete changed the grid")
	}
	if n, _ := g.PackageCount(0, 1); n != 2 {
		t.Errorf("count %d", n)
	}
}

func TestPackageErrors(t *testing.T) {
	g := newPackageGrid(t)
	if _, err := g.CreatePackageAfter(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil anchor: %v", err)
	}
	if _, err := g.CreatePackage(2, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad cell: %v", err)
	}
	if _, err := g.CreatePackageAtPoint(10, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("bad point: %v", err)
	}
	p, err := g.CreatePackage(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Float(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("float field without slots: %v", err)
	}
	if err := p.SetInt(1, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("code past the end: %v", err)
	}
	if err := p.SetInt(0, 3); err != nil {
		t.Error(err)
	}
	if v, _ := p.Int(0); v != 3 {
		t.Errorf("Int(0) = %d", v)
	}

	other := newPackageGrid(t)
	if _, err := other.CreatePackageAfter(p); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("anchor from another grid: %v", err)
	}
	other.DeletePackage(p)
	if n, _ := g.PackageCount(0, 0); n != 1 {
		t.Error("package deleted through another grid")
	}
}

func TestDeleteAllPackages(t *testing.T) {
	g := newPackageGrid(t)
	var ps []*Package
	for ix := 0; ix < 2; ix++ {
		for iy := 0; iy < 2; iy++ {
			p, err := g.CreatePackage(ix, iy)
			if err != nil {
				t.Fatal(err)
			}
			ps = append(ps, p)
		}
	}
	g.DeleteAllPackages()
	for ix := 0; ix < 2; ix++ {
		for iy := 0; iy < 2; iy++ {
			if n, _ := g.PackageCount(ix, iy); n != 0 {
				t.Errorf("cell (%d, %d) has %d packages", ix, iy, n)
			}
		}
	}
	for _, p := range ps {
		if _, _, ok := p.Cell(); ok {
			t.Error("package not released")
		}
	}
}
