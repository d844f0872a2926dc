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
	"github.com/spatialmodel/forestgrid"
)

// Export returns a description of the current contents of g. The code
// tables hold g's live labels under their live codes. Only cells that
// hold a non-zero value or at least one package are included, and zero
// values are left out, since Import resets every value before applying
// a description. Values in fields without a label cannot be imported
// and are not exported.
func Export(g *forestgrid.Grid) (*Description, error) {
	d := &Description{
		Name:     g.Name(),
		PlotLenX: Float64(g.Plot().LenX()),
		PlotLenY: Float64(g.Plot().LenY()),
		CellLenX: Float64(g.CellLengthX()),
		CellLenY: Float64(g.CellLengthY()),
	}
	var cellLabels, pkgLabels [4][]string
	for _, k := range forestgrid.Kinds {
		cellLabels[k] = g.Labels(k)
		pkgLabels[k] = g.PackageLabels(k)
		d.setCodes(k, false, codeTable(cellLabels[k]))
		d.setCodes(k, true, codeTable(pkgLabels[k]))
	}

	for iy := 0; iy < g.NumYCells(); iy++ {
		for ix := 0; ix < g.NumXCells(); ix++ {
			c := CellValues{X: ix, Y: iy}
			empty := true
			for _, k := range forestgrid.Kinds {
				vals, err := exportCell(g, ix, iy, k, cellLabels[k])
				if err != nil {
					return nil, err
				}
				if len(vals) > 0 {
					c.setValues(k, vals)
					empty = false
				}
			}
			p, err := g.FirstPackage(ix, iy)
			if err != nil {
				return nil, err
			}
			for ; p != nil; p = p.Next() {
				var pv PackageValues
				for _, k := range forestgrid.Kinds {
					vals, err := exportPackage(p, k, pkgLabels[k])
					if err != nil {
						return nil, err
					}
					if len(vals) > 0 {
						pv.setValues(k, vals)
					}
				}
				c.Packages = append(c.Packages, pv)
				empty = false
			}
			if !empty {
				d.Cells = append(d.Cells, c)
			}
		}
	}
	return d, nil
}

func codeTable(labels []string) []Code {
	var c []Code
	for i, l := range labels {
		if l != "" {
			c = append(c, Code{Num: i, Label: l})
		}
	}
	return c
}

func exportCell(g *forestgrid.Grid, ix, iy int, k forestgrid.Kind, labels []string) ([]Value, error) {
	return exportValues(labels, func(code int) (interface{}, error) {
		switch k {
		case forestgrid.IntField:
			return g.CellInt(ix, iy, code)
		case forestgrid.FloatField:
			return g.CellFloat(ix, iy, code)
		case forestgrid.TextField:
			return g.CellText(ix, iy, code)
		default:
			return g.CellBool(ix, iy, code)
		}
	})
}

func exportPackage(p *forestgrid.Package, k forestgrid.Kind, labels []string) ([]Value, error) {
	return exportValues(labels, func(code int) (interface{}, error) {
		switch k {
		case forestgrid.IntField:
			return p.Int(code)
		case forestgrid.FloatField:
			return p.Float(code)
		case forestgrid.TextField:
			return p.Text(code)
		default:
			return p.Bool(code)
		}
	})
}

// exportValues reads every labelled field through get and keeps the
// non-zero ones.
func exportValues(labels []string, get func(code int) (interface{}, error)) ([]Value, error) {
	var vals []Value
	for code, l := range labels {
		if l == "" {
			continue
		}
		v, err := get(code)
		if err != nil {
			return nil, err
		}
		if !isZero(v) {
			vals = append(vals, Value{Code: code, V: v})
		}
	}
	return vals, nil
}

func isZero(v interface{}) bool {
	switch t := v.(type) {
	case int:
		return t == 0
	case float64:
		return t == 0
	case string:
		return t == ""
	case bool:
		return !t
	}
	return v == nil
}
