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
	"github.com/ctessum/sparse"
)

// FloatRaster returns a snapshot of floating-point field code as an array
// of shape [NumYCells, NumXCells].
func (g *Grid) FloatRaster(code int) (*sparse.DenseArray, error) {
	if err := g.checkCode(FloatField, code); err != nil {
		return nil, err
	}
	o := sparse.ZerosDense(g.ny, g.nx)
	for ix := 0; ix < g.nx; ix++ {
		for iy := 0; iy < g.ny; iy++ {
			o.Set(g.cells[ix*g.ny+iy].floats[code], iy, ix)
		}
	}
	return o, nil
}

// IntRaster returns a snapshot of integer field code, converted to
// floating point, as an array of shape [NumYCells, NumXCells].
func (g *Grid) IntRaster(code int) (*sparse.DenseArray, error) {
	if err := g.checkCode(IntField, code); err != nil {
		return nil, err
	}
	o := sparse.ZerosDense(g.ny, g.nx)
	for ix := 0; ix < g.nx; ix++ {
		for iy := 0; iy < g.ny; iy++ {
			o.Set(float64(g.cells[ix*g.ny+iy].ints[code]), iy, ix)
		}
	}
	return o, nil
}
