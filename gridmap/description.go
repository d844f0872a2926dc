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

// Package gridmap reads and writes map descriptions: snapshots of a grid's
// field labels and values that can be loaded into a live grid whose field
// codes differ from the ones used in the description.
package gridmap

import (
	"github.com/spatialmodel/forestgrid"
)

// Description is a snapshot of one grid. The header fields are optional;
// when present they must match the grid the description is imported into.
// Field values refer to fields by the local numbers declared in the code
// tables, which are translated to live codes by label on import.
type Description struct {
	Name string `toml:"name"`

	PlotLenX *float64 `toml:"plotLenX,omitempty"`
	PlotLenY *float64 `toml:"plotLenY,omitempty"`
	CellLenX *float64 `toml:"cellLenX,omitempty"`
	CellLenY *float64 `toml:"cellLenY,omitempty"`

	Ints   []Code `toml:"intCode,omitempty"`
	Floats []Code `toml:"floatCode,omitempty"`
	Texts  []Code `toml:"textCode,omitempty"`
	Bools  []Code `toml:"boolCode,omitempty"`

	PackageInts   []Code `toml:"packageIntCode,omitempty"`
	PackageFloats []Code `toml:"packageFloatCode,omitempty"`
	PackageTexts  []Code `toml:"packageTextCode,omitempty"`
	PackageBools  []Code `toml:"packageBoolCode,omitempty"`

	Cells []CellValues `toml:"cell,omitempty"`
}

// Code declares the label behind a local field number.
type Code struct {
	Num   int    `toml:"num"`
	Label string `toml:"label"`
}

// CellValues holds the values for one cell, addressed by cell index.
type CellValues struct {
	X int `toml:"x"`
	Y int `toml:"y"`

	Ints   []Value `toml:"int,omitempty"`
	Floats []Value `toml:"float,omitempty"`
	Texts  []Value `toml:"text,omitempty"`
	Bools  []Value `toml:"bool,omitempty"`

	// Packages are created in the cell in the order given.
	Packages []PackageValues `toml:"package,omitempty"`
}

// PackageValues holds the values for one package.
type PackageValues struct {
	Ints   []Value `toml:"int,omitempty"`
	Floats []Value `toml:"float,omitempty"`
	Texts  []Value `toml:"text,omitempty"`
	Bools  []Value `toml:"bool,omitempty"`
}

// Value is a single field value. V holds either a native value or its
// literal text.
type Value struct {
	Code int         `toml:"c"`
	V    interface{} `toml:"v"`
}

// Float64 returns a pointer to v, for filling in optional header fields.
func Float64(v float64) *float64 { return &v }

func (d *Description) codes(k forestgrid.Kind, pkg bool) []Code {
	switch {
	case k == forestgrid.IntField && !pkg:
		return d.Ints
	case k == forestgrid.FloatField && !pkg:
		return d.Floats
	case k == forestgrid.TextField && !pkg:
		return d.Texts
	case k == forestgrid.BoolField && !pkg:
		return d.Bools
	case k == forestgrid.IntField:
		return d.PackageInts
	case k == forestgrid.FloatField:
		return d.PackageFloats
	case k == forestgrid.TextField:
		return d.PackageTexts
	case k == forestgrid.BoolField:
		return d.PackageBools
	}
	return nil
}

func (d *Description) setCodes(k forestgrid.Kind, pkg bool, c []Code) {
	switch {
	case k == forestgrid.IntField && !pkg:
		d.Ints = c
	case k == forestgrid.FloatField && !pkg:
		d.Floats = c
	case k == forestgrid.TextField && !pkg:
		d.Texts = c
	case k == forestgrid.BoolField && !pkg:
		d.Bools = c
	case k == forestgrid.IntField:
		d.PackageInts = c
	case k == forestgrid.FloatField:
		d.PackageFloats = c
	case k == forestgrid.TextField:
		d.PackageTexts = c
	case k == forestgrid.BoolField:
		d.PackageBools = c
	}
}

// fieldValues is implemented by CellValues and PackageValues.
type fieldValues interface {
	values(k forestgrid.Kind) []Value
	setValues(k forestgrid.Kind, v []Value)
}

func (c *CellValues) values(k forestgrid.Kind) []Value {
	return pick(k, c.Ints, c.Floats, c.Texts, c.Bools)
}

func (c *CellValues) setValues(k forestgrid.Kind, v []Value) {
	place(k, v, &c.Ints, &c.Floats, &c.Texts, &c.Bools)
}

func (p *PackageValues) values(k forestgrid.Kind) []Value {
	return pick(k, p.Ints, p.Floats, p.Texts, p.Bools)
}

func (p *PackageValues) setValues(k forestgrid.Kind, v []Value) {
	place(k, v, &p.Ints, &p.Floats, &p.Texts, &p.Bools)
}

func pick(k forestgrid.Kind, ints, floats, texts, bools []Value) []Value {
	switch k {
	case forestgrid.IntField:
		return ints
	case forestgrid.FloatField:
		return floats
	case forestgrid.TextField:
		return texts
	case forestgrid.BoolField:
		return bools
	}
	return nil
}

func place(k forestgrid.Kind, v []Value, ints, floats, texts, bools *[]Value) {
	switch k {
	case forestgrid.IntField:
		*ints = v
	case forestgrid.FloatField:
		*floats = v
	case forestgrid.TextField:
		*texts = v
	case forestgrid.BoolField:
		*bools = v
	}
}
