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
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spatialmodel/forestgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standMap = `
[[grid]]
name = "Stand"
plotLenX = 10.0
plotLenY = 10.0
cellLenX = 5.0

[[grid.intCode]]
num = 7
label = "Species"

[[grid.floatCode]]
num = 0
label = "Height"

[[grid.boolCode]]
num = 3
label = "Dead"

[[grid.packageTextCode]]
num = 0
label = "Tag"

[[grid.cell]]
x = 1
y = 0
int = [{c = 7, v = "12"}]
float = [{c = 0, v = 3.5}]
bool = [{c = 3, v = "true"}]

[[grid.cell.package]]
text = [{c = 0, v = "oak"}]

[[grid.cell.package]]
text = [{c = 0, v = "pine"}]

[[grid]]
name = "Light"
`

// newStand returns a 2x2 grid whose live codes differ from the local
// numbers used in standMap.
func newStand(t *testing.T) *forestgrid.Grid {
	t.Helper()
	plot, err := forestgrid.NewPlot(10, 10, 5)
	require.NoError(t, err)
	g, err := forestgrid.NewGrid(plot, forestgrid.GridSpec{
		Name: "Stand", Ints: 2, Floats: 2, Texts: 1, Bools: 2,
	})
	require.NoError(t, err)
	require.NoError(t, g.ChangePackageSchema(0, 0, 1, 0))
	for _, r := range []struct {
		register func(string) (int, error)
		label    string
	}{
		{g.RegisterInt, "Age"},
		{g.RegisterInt, "Species"},
		{g.RegisterFloat, "Height"},
		{g.RegisterText, "Note"},
		{g.RegisterBool, "Alive"},
		{g.RegisterBool, "Dead"},
		{g.RegisterPackageText, "Tag"},
	} {
		_, err := r.register(r.label)
		require.NoError(t, err)
	}
	return g
}

func decodeStand(t *testing.T) []*Description {
	t.Helper()
	descs, err := Decode(strings.NewReader(standMap))
	require.NoError(t, err)
	require.Len(t, descs, 2)
	return descs
}

func quietImporter() (*Importer, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.Level = logrus.DebugLevel
	return &Importer{Log: log}, hook
}

func TestImport(t *testing.T) {
	g := newStand(t)
	im, hook := quietImporter()
	require.NoError(t, im.Import(g, decodeStand(t)...))

	species, err := g.CellInt(1, 0, g.IntCode("Species"))
	require.NoError(t, err)
	assert.Equal(t, 12, species)

	height, err := g.CellFloat(1, 0, g.FloatCode("Height"))
	require.NoError(t, err)
	assert.Equal(t, 3.5, height)

	dead, err := g.CellBool(1, 0, g.BoolCode("Dead"))
	require.NoError(t, err)
	assert.True(t, dead)

	var tags []string
	p, err := g.FirstPackage(1, 0)
	require.NoError(t, err)
	for ; p != nil; p = p.Next() {
		tag, err := p.Text(g.PackageTextCode("Tag"))
		require.NoError(t, err)
		tags = append(tags, tag)
	}
	assert.Equal(t, []string{"oak", "pine"}, tags)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Stand", entry.Data["grid"])
	assert.Equal(t, 2, entry.Data["packages"])
	assert.Equal(t, g.Fingerprint(), entry.Data["fingerprint"])
}

func TestImportIdempotent(t *testing.T) {
	g := newStand(t)
	im, _ := quietImporter()
	descs := decodeStand(t)
	require.NoError(t, im.Import(g, descs...))
	first := g.Fingerprint()
	require.NoError(t, im.Import(g, descs...))
	assert.Equal(t, first, g.Fingerprint())
	n, err := g.PackageCount(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestImportResets(t *testing.T) {
	g := newStand(t)
	require.NoError(t, g.SetCellFloat(0, 1, g.FloatCode("Height"), 9))
	_, err := g.CreatePackage(0, 0)
	require.NoError(t, err)

	im, _ := quietImporter()
	require.NoError(t, im.Import(g, decodeStand(t)...))

	v, err := g.CellFloat(0, 1, g.FloatCode("Height"))
	require.NoError(t, err)
	assert.Equal(t, 0., v)
	n, err := g.PackageCount(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestImportNoMatch(t *testing.T) {
	g := newStand(t)
	require.NoError(t, g.SetCellFloat(0, 0, g.FloatCode("Height"), 1.5))
	before := g.Fingerprint()

	im, hook := quietImporter()
	require.NoError(t, im.Import(g, &Description{Name: "Other"}))
	assert.Equal(t, before, g.Fingerprint())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}

func TestImportBadData(t *testing.T) {
	valid := func() *Description {
		return &Description{
			Name:   "Stand",
			Floats: []Code{{Num: 4, Label: "Height"}},
			Bools:  []Code{{Num: 0, Label: "Dead"}},
			Cells: []CellValues{{
				X: 0, Y: 0,
				Floats: []Value{{Code: 4, V: 2.0}},
				Bools:  []Value{{Code: 0, V: "false"}},
			}},
		}
	}
	tests := []struct {
		name   string
		modify func(d *Description)
	}{
		{"plot length", func(d *Description) { d.PlotLenX = Float64(20) }},
		{"cell length", func(d *Description) { d.CellLenY = Float64(4) }},
		{"unknown label", func(d *Description) { d.Floats[0].Label = "Diameter" }},
		{"duplicate code", func(d *Description) { d.Floats = append(d.Floats, Code{Num: 4, Label: "Height"}) }},
		{"undeclared code", func(d *Description) { d.Cells[0].Floats[0].Code = 5 }},
		{"bad bool", func(d *Description) { d.Cells[0].Bools[0].V = "yes" }},
		{"bad float", func(d *Description) { d.Cells[0].Floats[0].V = "tall" }},
		{"cell outside", func(d *Description) { d.Cells[0].X = 2 }},
		{"package code", func(d *Description) {
			d.Cells[0].Packages = []PackageValues{{Ints: []Value{{Code: 0, V: 1}}}}
		}},
		{"late failure", func(d *Description) {
			d.Cells = append(d.Cells, CellValues{X: 1, Y: 1, Bools: []Value{{Code: 0, V: 1}}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStand(t)
			require.NoError(t, g.SetCellFloat(1, 1, g.FloatCode("Height"), 7))
			_, err := g.CreatePackage(1, 1)
			require.NoError(t, err)
			before := g.Fingerprint()

			d := valid()
			tt.modify(d)
			im, _ := quietImporter()
			err = im.Import(g, d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, forestgrid.ErrBadData), "%v", err)
			assert.Equal(t, before, g.Fingerprint(), "grid modified by failed import")
		})
	}

	g := newStand(t)
	im, _ := quietImporter()
	assert.NoError(t, im.Import(g, valid()))
}

func TestDecodeErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"syntax":      "[[grid]\nname = 1",
		"unknown key": "[[grid]]\nname = \"Stand\"\ncolour = \"red\"\n",
		"no name":     "[[grid]]\nplotLenX = 10.0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, forestgrid.ErrBadData))
		})
	}
}

func TestExport(t *testing.T) {
	g := newStand(t)
	require.NoError(t, g.SetCellFloat(0, 1, g.FloatCode("Height"), 2.5))
	p, err := g.CreatePackage(1, 1)
	require.NoError(t, err)
	require.NoError(t, p.SetText(g.PackageTextCode("Tag"), "x"))
	_, err = g.CreatePackageAfter(p)
	require.NoError(t, err)

	have, err := Export(g)
	require.NoError(t, err)
	want := &Description{
		Name:     "Stand",
		PlotLenX: Float64(10),
		PlotLenY: Float64(10),
		CellLenX: Float64(5),
		CellLenY: Float64(5),
		Ints:     []Code{{Num: 0, Label: "Age"}, {Num: 1, Label: "Species"}},
		Floats:   []Code{{Num: 0, Label: "Height"}},
		Texts:    []Code{{Num: 0, Label: "Note"}},
		Bools:    []Code{{Num: 0, Label: "Alive"}, {Num: 1, Label: "Dead"}},

		PackageTexts: []Code{{Num: 0, Label: "Tag"}},

		Cells: []CellValues{
			{X: 0, Y: 1, Floats: []Value{{Code: 0, V: 2.5}}},
			{X: 1, Y: 1, Packages: []PackageValues{
				{Texts: []Value{{Code: 0, V: "x"}}},
				{},
			}},
		},
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Errorf("Export mismatch (-want +have):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	g := newStand(t)
	im, _ := quietImporter()
	require.NoError(t, im.Import(g, decodeStand(t)...))
	require.NoError(t, g.SetCellInt(0, 1, g.IntCode("Age"), -40))
	require.NoError(t, g.SetCellText(1, 1, g.TextCode("Note"), "edge"))

	d, err := Export(g)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d))

	descs, err := Decode(&buf)
	require.NoError(t, err, buf.String())
	g2 := newStand(t)
	require.NoError(t, im.Import(g2, descs...))
	assert.Equal(t, g.Fingerprint(), g2.Fingerprint())
}

func TestRoundTripDuplicateLabels(t *testing.T) {
	newGrid := func() *forestgrid.Grid {
		plot, err := forestgrid.NewPlot(10, 10, 5)
		require.NoError(t, err)
		g, err := forestgrid.NewGrid(plot, forestgrid.GridSpec{Name: "Twin", Floats: 2})
		require.NoError(t, err)
		for _, want := range []int{0, 1} {
			code, err := g.RegisterFloat("Height")
			require.NoError(t, err)
			require.Equal(t, want, code)
		}
		return g
	}
	g := newGrid()
	require.NoError(t, g.SetCellFloat(1, 0, 0, 1))
	require.NoError(t, g.SetCellFloat(1, 0, 1, 2))

	d, err := Export(g)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, d))
	descs, err := Decode(&buf)
	require.NoError(t, err, buf.String())

	im, _ := quietImporter()
	g2 := newGrid()
	require.NoError(t, im.Import(g2, descs...))
	for code, want := range []float64{1, 2} {
		v, err := g2.CellFloat(1, 0, code)
		require.NoError(t, err)
		assert.Equal(t, want, v, "code %d", code)
	}
	assert.Equal(t, g.Fingerprint(), g2.Fingerprint())

	// A third local "Height" has no live slot left.
	d.Floats = append(d.Floats, Code{Num: 2, Label: "Height"})
	err = im.Import(newGrid(), d)
	assert.True(t, errors.Is(err, forestgrid.ErrBadData), "%v", err)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		kind    forestgrid.Kind
		in      interface{}
		want    interface{}
		wantErr bool
	}{
		{kind: forestgrid.IntField, in: "12", want: 12},
		{kind: forestgrid.IntField, in: " -3 ", want: -3},
		{kind: forestgrid.IntField, in: int64(4), want: 4},
		{kind: forestgrid.IntField, in: 3.0, want: 3},
		{kind: forestgrid.IntField, in: 3.5, wantErr: true},
		{kind: forestgrid.IntField, in: "1.5", wantErr: true},
		{kind: forestgrid.IntField, in: "0x10", wantErr: true},
		{kind: forestgrid.IntField, in: true, wantErr: true},
		{kind: forestgrid.IntField, in: nil, wantErr: true},
		{kind: forestgrid.IntField, in: 1e300, wantErr: true},
		{kind: forestgrid.IntField, in: -1e19, wantErr: true},
		{kind: forestgrid.IntField, in: uint64(1 << 63), wantErr: true},
		{kind: forestgrid.IntField, in: "99999999999999999999", wantErr: true},
		{kind: forestgrid.FloatField, in: "2.5", want: 2.5},
		{kind: forestgrid.FloatField, in: int64(2), want: 2.},
		{kind: forestgrid.FloatField, in: "tall", wantErr: true},
		{kind: forestgrid.FloatField, in: false, wantErr: true},
		{kind: forestgrid.FloatField, in: "NaN", wantErr: true},
		{kind: forestgrid.FloatField, in: "Inf", wantErr: true},
		{kind: forestgrid.FloatField, in: "-infinity", wantErr: true},
		{kind: forestgrid.FloatField, in: math.Inf(1), wantErr: true},
		{kind: forestgrid.FloatField, in: 1e300, want: 1e300},
		{kind: forestgrid.TextField, in: "oak", want: "oak"},
		{kind: forestgrid.TextField, in: int64(5), want: "5"},
		{kind: forestgrid.TextField, in: "", want: ""},
		{kind: forestgrid.TextField, in: nil, wantErr: true},
		{kind: forestgrid.BoolField, in: true, want: true},
		{kind: forestgrid.BoolField, in: "false", want: false},
		{kind: forestgrid.BoolField, in: "True", wantErr: true},
		{kind: forestgrid.BoolField, in: "1", wantErr: true},
		{kind: forestgrid.BoolField, in: int64(1), wantErr: true},
	}
	for _, tt := range tests {
		have, err := literal(tt.kind, tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%s %#v", tt.kind, tt.in)
			continue
		}
		if assert.NoError(t, err, "%s %#v", tt.kind, tt.in) {
			assert.Equal(t, tt.want, have, "%s %#v", tt.kind, tt.in)
		}
	}
}
