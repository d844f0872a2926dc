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

import "github.com/spatialmodel/forestgrid/internal/hash"

// gridState is the comparable content of a grid.
type gridState struct {
	Name          string
	NX, NY        int
	CellX, CellY  float64
	Labels        [numKinds][]string
	PackageLabels [numKinds][]string
	Cells         []cellState
}

type cellState struct {
	Ints     []int
	Floats   []float64
	Texts    []string
	Bools    []bool
	Packages []cellState
}

// Fingerprint returns a key that is equal for two grids exactly when
// their names, shapes, labels, values and package lists are equal.
func (g *Grid) Fingerprint() string {
	s := gridState{
		Name:  g.name,
		NX:    g.nx,
		NY:    g.ny,
		CellX: g.cellX,
		CellY: g.cellY,
		Cells: make([]cellState, len(g.cells)),
	}
	for _, k := range Kinds {
		s.Labels[k] = g.cellSchema.labels(k)
		s.PackageLabels[k] = g.pkgSchema.labels(k)
	}
	for i := range g.cells {
		c := &g.cells[i]
		cs := cellState{Ints: c.ints, Floats: c.floats, Texts: c.texts, Bools: c.bools}
		for p := c.first; p != nil; p = p.next {
			cs.Packages = append(cs.Packages, cellState{
				Ints: p.ints, Floats: p.floats, Texts: p.texts, Bools: p.bools,
			})
		}
		s.Cells[i] = cs
	}
	return hash.Hash(s)
}
