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

func (g *Grid) checkCode(k Kind, code int) error {
	if n := g.cellSchema.count(k); code < 0 || code >= n {
		return fmt.Errorf("forestgrid: grid %s: %s field code %d is outside of [0, %d): %w",
			g.name, k, code, n, ErrInvalidArgument)
	}
	return nil
}

// CellInt returns the value of integer field code in cell (ix, iy).
func (g *Grid) CellInt(ix, iy, code int) (int, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return 0, err
	}
	if err = g.checkCode(IntField, code); err != nil {
		return 0, err
	}
	return c.ints[code], nil
}

// SetCellInt sets the value of integer field code in cell (ix, iy).
func (g *Grid) SetCellInt(ix, iy, code int, v int) error {
	c, err := g.cell(ix, iy)
	if err != nil {
		return err
	}
	if err = g.checkCode(IntField, code); err != nil {
		return err
	}
	c.ints[code] = v
	return nil
}

// CellFloat returns the value of floating-point field code in cell (ix, iy).
func (g *Grid) CellFloat(ix, iy, code int) (float64, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return 0, err
	}
	if err = g.checkCode(FloatField, code); err != nil {
		return 0, err
	}
	return c.floats[code], nil
}

// SetCellFloat sets the value of floating-point field code in cell (ix, iy).
func (g *Grid) SetCellFloat(ix, iy, code int, v float64) error {
	c, err := g.cell(ix, iy)
	if err != nil {
		return err
	}
	if err = g.checkCode(FloatField, code); err != nil {
		return err
	}
	c.floats[code] = v
	return nil
}

// CellText returns the value of text field code in cell (ix, iy).
func (g *Grid) CellText(ix, iy, code int) (string, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return "", err
	}
	if err = g.checkCode(TextField, code); err != nil {
		return "", err
	}
	return c.texts[code], nil
}

// SetCellText sets the value of text field code in cell (ix, iy).
func (g *Grid) SetCellText(ix, iy, code int, v string) error {
	c, err := g.cell(ix, iy)
	if err != nil {
		return err
	}
	if err = g.checkCode(TextField, code); err != nil {
		return err
	}
	c.texts[code] = v
	return nil
}

// CellBool returns the value of boolean field code in cell (ix, iy).
func (g *Grid) CellBool(ix, iy, code int) (bool, error) {
	c, err := g.cell(ix, iy)
	if err != nil {
		return false, err
	}
	if err = g.checkCode(BoolField, code); err != nil {
		return false, err
	}
	return c.bools[code], nil
}

// SetCellBool sets the value of boolean field code in cell (ix, iy).
func (g *Grid) SetCellBool(ix, iy, code int, v bool) error {
	c, err := g.cell(ix, iy)
	if err != nil {
		return err
	}
	if err = g.checkCode(BoolField, code); err != nil {
		return err
	}
	c.bools[code] = v
	return nil
}

// IntAt returns the value of integer field code in the cell containing
// point (x, y).
func (g *Grid) IntAt(x, y float64, code int) (int, error) {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return 0, err
	}
	return g.CellInt(ix, iy, code)
}

// SetIntAt sets the value of integer field code in the cell containing
// point (x, y).
func (g *Grid) SetIntAt(x, y float64, code int, v int) error {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return err
	}
	return g.SetCellInt(ix, iy, code, v)
}

// FloatAt returns the value of floating-point field code in the cell
// containing point (x, y).
func (g *Grid) FloatAt(x, y float64, code int) (float64, error) {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return 0, err
	}
	return g.CellFloat(ix, iy, code)
}

// SetFloatAt sets the value of floating-point field code in the cell
// containing point (x, y).
func (g *Grid) SetFloatAt(x, y float64, code int, v float64) error {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return err
	}
	return g.SetCellFloat(ix, iy, code, v)
}

// TextAt returns the value of text field code in the cell containing
// point (x, y).
func (g *Grid) TextAt(x, y float64, code int) (string, error) {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return "", err
	}
	return g.CellText(ix, iy, code)
}

// SetTextAt sets the value of text field code in the cell containing
// point (x, y).
func (g *Grid) SetTextAt(x, y float64, code int, v string) error {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return err
	}
	return g.SetCellText(ix, iy, code, v)
}

// BoolAt returns the value of boolean field code in the cell containing
// point (x, y).
func (g *Grid) BoolAt(x, y float64, code int) (bool, error) {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return false, err
	}
	return g.CellBool(ix, iy, code)
}

// SetBoolAt sets the value of boolean field code in the cell containing
// point (x, y).
func (g *Grid) SetBoolAt(x, y float64, code int, v bool) error {
	ix, iy, err := g.PointToCell(x, y)
	if err != nil {
		return err
	}
	return g.SetCellBool(ix, iy, code, v)
}
