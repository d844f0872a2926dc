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

package gridmap

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/forestgrid"
)

// Importer loads map descriptions into grids.
type Importer struct {
	// Log receives a line for every import. It defaults to the
	// logrus standard logger.
	Log logrus.FieldLogger
}

// Import loads the description in descs whose name matches g into g,
// using the standard logger. See Importer.Import.
func Import(g *forestgrid.Grid, descs ...*Description) error {
	im := &Importer{Log: logrus.StandardLogger()}
	return im.Import(g, descs...)
}

// Import loads the first description in descs whose name matches the
// name of g. Field labels are translated to g's live field codes.
// Every cell value and package of g is discarded before the description
// is applied, so importing the same description twice gives the same
// grid. Any problem with the description results in an error wrapping
// forestgrid.ErrBadData, in which case g is left unchanged. If no
// description matches, g is left unchanged and nil is returned.
func (im *Importer) Import(g *forestgrid.Grid, descs ...*Description) error {
	log := im.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	var d *Description
	for _, dd := range descs {
		if dd != nil && dd.Name == g.Name() {
			d = dd
			break
		}
	}
	if d == nil {
		log.WithField("grid", g.Name()).Debug("gridmap: no map description for grid")
		return nil
	}

	p, err := compile(g, d)
	if err != nil {
		return fmt.Errorf("gridmap: importing grid %q: %v: %w", g.Name(), err, forestgrid.ErrBadData)
	}

	g.ResetValues()
	g.DeleteAllPackages()
	if err := p.apply(g); err != nil {
		return fmt.Errorf("gridmap: importing grid %q: %v", g.Name(), err)
	}

	log.WithFields(logrus.Fields{
		"grid":        g.Name(),
		"cells":       len(p.cells),
		"packages":    p.numPackages(),
		"fingerprint": g.Fingerprint(),
	}).Info("gridmap: imported map")
	return nil
}

// assignment is a field value that has been translated to a live code
// and converted to its Go type.
type assignment struct {
	kind forestgrid.Kind
	code int
	v    interface{}
}

type cellPlan struct {
	x, y     int
	values   []assignment
	packages [][]assignment
}

// plan is a description that has been fully checked against a grid.
type plan struct {
	cells []cellPlan
}

func (p *plan) numPackages() int {
	n := 0
	for _, c := range p.cells {
		n += len(c.packages)
	}
	return n
}

// translation maps local field numbers to live codes, per kind.
type translation [4]map[int]int

func compile(g *forestgrid.Grid, d *Description) (*plan, error) {
	if err := checkHeader(g, d); err != nil {
		return nil, err
	}
	cellTr, err := translate(g, d, false)
	if err != nil {
		return nil, err
	}
	pkgTr, err := translate(g, d, true)
	if err != nil {
		return nil, err
	}

	p := &plan{cells: make([]cellPlan, 0, len(d.Cells))}
	for i := range d.Cells {
		c := &d.Cells[i]
		if c.X < 0 || c.X >= g.NumXCells() || c.Y < 0 || c.Y >= g.NumYCells() {
			return nil, fmt.Errorf("cell (%d, %d) is outside of the %dx%d grid",
				c.X, c.Y, g.NumXCells(), g.NumYCells())
		}
		cp := cellPlan{x: c.X, y: c.Y}
		cp.values, err = compileValues(c, cellTr)
		if err != nil {
			return nil, fmt.Errorf("cell (%d, %d): %v", c.X, c.Y, err)
		}
		for j := range c.Packages {
			a, err := compileValues(&c.Packages[j], pkgTr)
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d) package %d: %v", c.X, c.Y, j, err)
			}
			cp.packages = append(cp.packages, a)
		}
		p.cells = append(p.cells, cp)
	}
	return p, nil
}

func checkHeader(g *forestgrid.Grid, d *Description) error {
	for _, h := range []struct {
		name string
		want *float64
		have float64
	}{
		{"plot x length", d.PlotLenX, g.Plot().LenX()},
		{"plot y length", d.PlotLenY, g.Plot().LenY()},
		{"cell x length", d.CellLenX, g.CellLengthX()},
		{"cell y length", d.CellLenY, g.CellLengthY()},
	} {
		if h.want != nil && math.Abs(*h.want-h.have) > forestgrid.VerySmall {
			return fmt.Errorf("%s is %g in the map but %g in the grid", h.name, *h.want, h.have)
		}
	}
	return nil
}

// translate resolves the labels of one code table set against the live
// registry of g. A label registered more than once is matched by
// position: the n-th local code carrying it, in declaration order, maps
// to the n-th live slot carrying it, in code order.
func translate(g *forestgrid.Grid, d *Description, pkg bool) (translation, error) {
	var tr translation
	where := "cell"
	if pkg {
		where = "package"
	}
	for _, k := range forestgrid.Kinds {
		tr[k] = make(map[int]int)
		labels := g.Labels(k)
		if pkg {
			labels = g.PackageLabels(k)
		}
		slots := make(map[string][]int)
		for code, l := range labels {
			if l != "" {
				slots[l] = append(slots[l], code)
			}
		}
		used := make(map[string]int)
		for _, c := range d.codes(k, pkg) {
			if _, ok := tr[k][c.Num]; ok {
				return tr, fmt.Errorf("%s %s code %d declared twice", where, k, c.Num)
			}
			live := slots[c.Label]
			n := used[c.Label]
			switch {
			case len(live) == 0:
				return tr, fmt.Errorf("%s %s field %q is not registered", where, k, c.Label)
			case n >= len(live):
				return tr, fmt.Errorf("%s %s field %q is declared %d times but registered %d times",
					where, k, c.Label, n+1, len(live))
			}
			tr[k][c.Num] = live[n]
			used[c.Label] = n + 1
		}
	}
	return tr, nil
}

func compileValues(fv fieldValues, tr translation) ([]assignment, error) {
	var out []assignment
	for _, k := range forestgrid.Kinds {
		for _, v := range fv.values(k) {
			live, ok := tr[k][v.Code]
			if !ok {
				return nil, fmt.Errorf("%s code %d has no label", k, v.Code)
			}
			x, err := literal(k, v.V)
			if err != nil {
				return nil, fmt.Errorf("%s code %d: %v", k, v.Code, err)
			}
			out = append(out, assignment{kind: k, code: live, v: x})
		}
	}
	return out, nil
}

func (p *plan) apply(g *forestgrid.Grid) error {
	for _, c := range p.cells {
		for _, a := range c.values {
			if err := setCell(g, c.x, c.y, a); err != nil {
				return err
			}
		}
		if len(c.packages) == 0 {
			continue
		}
		// Append behind any packages created by an earlier entry for the
		// same cell so that declaration order is kept.
		last, err := g.FirstPackage(c.x, c.y)
		if err != nil {
			return err
		}
		for last != nil && last.Next() != nil {
			last = last.Next()
		}
		for _, values := range c.packages {
			var pkg *forestgrid.Package
			if last == nil {
				pkg, err = g.CreatePackage(c.x, c.y)
			} else {
				pkg, err = g.CreatePackageAfter(last)
			}
			if err != nil {
				return err
			}
			for _, a := range values {
				if err := setPackage(pkg, a); err != nil {
					return err
				}
			}
			last = pkg
		}
	}
	return nil
}

func setCell(g *forestgrid.Grid, x, y int, a assignment) error {
	switch a.kind {
	case forestgrid.IntField:
		return g.SetCellInt(x, y, a.code, a.v.(int))
	case forestgrid.FloatField:
		return g.SetCellFloat(x, y, a.code, a.v.(float64))
	case forestgrid.TextField:
		return g.SetCellText(x, y, a.code, a.v.(string))
	default:
		return g.SetCellBool(x, y, a.code, a.v.(bool))
	}
}

func setPackage(p *forestgrid.Package, a assignment) error {
	switch a.kind {
	case forestgrid.IntField:
		return p.SetInt(a.code, a.v.(int))
	case forestgrid.FloatField:
		return p.SetFloat(a.code, a.v.(float64))
	case forestgrid.TextField:
		return p.SetText(a.code, a.v.(string))
	default:
		return p.SetBool(a.code, a.v.(bool))
	}
}
