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

// Kind identifies one of the four scalar field types a grid can hold.
type Kind int

// The scalar field kinds.
const (
	IntField Kind = iota
	FloatField
	TextField
	BoolField
	numKinds
)

// Kinds lists every scalar field kind in storage order.
var Kinds = []Kind{IntField, FloatField, TextField, BoolField}

func (k Kind) String() string {
	switch k {
	case IntField:
		return "int"
	case FloatField:
		return "float"
	case TextField:
		return "text"
	case BoolField:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) valid() bool { return k >= 0 && k < numKinds }

// schema holds one fixed-size label table per kind. The index of a
// label in its table is the field code. An empty string marks a free slot.
type schema struct {
	tables [numKinds][]string
}

func newSchema(ints, floats, texts, bools int) schema {
	var s schema
	for k, n := range [numKinds]int{ints, floats, texts, bools} {
		if n > 0 {
			s.tables[k] = make([]string, n)
		}
	}
	return s
}

// count returns the number of slots for kind k.
func (s *schema) count(k Kind) int { return len(s.tables[k]) }

// free returns the first unused slot for kind k, or NotFound.
func (s *schema) free(k Kind) int {
	for i, l := range s.tables[k] {
		if l == "" {
			return i
		}
	}
	return NotFound
}

// code returns the first slot of kind k holding label, or NotFound.
func (s *schema) code(k Kind, label string) int {
	if !k.valid() {
		return NotFound
	}
	for i, l := range s.tables[k] {
		if l == label {
			return i
		}
	}
	return NotFound
}

func (s *schema) labels(k Kind) []string {
	if !k.valid() {
		return nil
	}
	o := make([]string, len(s.tables[k]))
	copy(o, s.tables[k])
	return o
}

// RegisterInt registers an integer field and returns its code.
func (g *Grid) RegisterInt(label string) (int, error) { return g.register(IntField, label) }

// RegisterFloat registers a floating-point field and returns its code.
func (g *Grid) RegisterFloat(label string) (int, error) { return g.register(FloatField, label) }

// RegisterText registers a text field and returns its code.
func (g *Grid) RegisterText(label string) (int, error) { return g.register(TextField, label) }

// RegisterBool registers a boolean field and returns its code.
func (g *Grid) RegisterBool(label string) (int, error) { return g.register(BoolField, label) }

// RegisterPackageInt registers an integer package field and returns its code.
func (g *Grid) RegisterPackageInt(label string) (int, error) {
	return g.registerPackage(IntField, label)
}

// RegisterPackageFloat registers a floating-point package field and returns its code.
func (g *Grid) RegisterPackageFloat(label string) (int, error) {
	return g.registerPackage(FloatField, label)
}

// RegisterPackageText registers a text package field and returns its code.
func (g *Grid) RegisterPackageText(label string) (int, error) {
	return g.registerPackage(TextField, label)
}

// RegisterPackageBool registers a boolean package field and returns its code.
func (g *Grid) RegisterPackageBool(label string) (int, error) {
	return g.registerPackage(BoolField, label)
}

// register stores label in the first free slot of the cell schema.
// Until the package schema has been changed explicitly, the label is also
// registered in the package schema. Registering a label that already
// exists yields a second, independent field.
func (g *Grid) register(k Kind, label string) (int, error) {
	if label == "" {
		return NotFound, fmt.Errorf("forestgrid: grid %s: empty %s field label: %w",
			g.name, k, ErrInvalidArgument)
	}
	code := g.cellSchema.free(k)
	if code == NotFound {
		return NotFound, fmt.Errorf("forestgrid: grid %s: no room for %s field %q (%d slots): %w",
			g.name, k, label, g.cellSchema.count(k), ErrCapacityExceeded)
	}
	pcode := NotFound
	if !g.pkgSchemaChanged {
		if pcode = g.pkgSchema.free(k); pcode == NotFound {
			return NotFound, fmt.Errorf("forestgrid: grid %s: no room for %s package field %q (%d slots): %w",
				g.name, k, label, g.pkgSchema.count(k), ErrCapacityExceeded)
		}
	}
	g.cellSchema.tables[k][code] = label
	if pcode != NotFound {
		g.pkgSchema.tables[k][pcode] = label
	}
	return code, nil
}

func (g *Grid) registerPackage(k Kind, label string) (int, error) {
	if label == "" {
		return NotFound, fmt.Errorf("forestgrid: grid %s: empty %s package field label: %w",
			g.name, k, ErrInvalidArgument)
	}
	code := g.pkgSchema.free(k)
	if code == NotFound {
		return NotFound, fmt.Errorf("forestgrid: grid %s: no room for %s package field %q (%d slots): %w",
			g.name, k, label, g.pkgSchema.count(k), ErrCapacityExceeded)
	}
	g.pkgSchema.tables[k][code] = label
	return code, nil
}

// IntCode returns the code of the integer field with the given label,
// or NotFound.
func (g *Grid) IntCode(label string) int { return g.cellSchema.code(IntField, label) }

// FloatCode returns the code of the floating-point field with the given
// label, or NotFound.
func (g *Grid) FloatCode(label string) int { return g.cellSchema.code(FloatField, label) }

// TextCode returns the code of the text field with the given label,
// or NotFound.
func (g *Grid) TextCode(label string) int { return g.cellSchema.code(TextField, label) }

// BoolCode returns the code of the boolean field with the given label,
// or NotFound.
func (g *Grid) BoolCode(label string) int { return g.cellSchema.code(BoolField, label) }

// PackageIntCode returns the code of the integer package field with the
// given label, or NotFound.
func (g *Grid) PackageIntCode(label string) int { return g.pkgSchema.code(IntField, label) }

// PackageFloatCode returns the code of the floating-point package field
// with the given label, or NotFound.
func (g *Grid) PackageFloatCode(label string) int { return g.pkgSchema.code(FloatField, label) }

// PackageTextCode returns the code of the text package field with the
// given label, or NotFound.
func (g *Grid) PackageTextCode(label string) int { return g.pkgSchema.code(TextField, label) }

// PackageBoolCode returns the code of the boolean package field with the
// given label, or NotFound.
func (g *Grid) PackageBoolCode(label string) int { return g.pkgSchema.code(BoolField, label) }

// Code returns the code of the cell field of kind k with the given label,
// or NotFound.
func (g *Grid) Code(k Kind, label string) int { return g.cellSchema.code(k, label) }

// PackageCode returns the code of the package field of kind k with the
// given label, or NotFound.
func (g *Grid) PackageCode(k Kind, label string) int { return g.pkgSchema.code(k, label) }

// NumFields returns the number of cell field slots of kind k.
func (g *Grid) NumFields(k Kind) int {
	if !k.valid() {
		return 0
	}
	return g.cellSchema.count(k)
}

// NumPackageFields returns the number of package field slots of kind k.
func (g *Grid) NumPackageFields(k Kind) int {
	if !k.valid() {
		return 0
	}
	return g.pkgSchema.count(k)
}

// Labels returns a copy of the cell label table for kind k, indexed by
// field code. Free slots hold the empty string.
func (g *Grid) Labels(k Kind) []string { return g.cellSchema.labels(k) }

// PackageLabels returns a copy of the package label table for kind k,
// indexed by field code. Free slots hold the empty string.
func (g *Grid) PackageLabels(k Kind) []string { return g.pkgSchema.labels(k) }
