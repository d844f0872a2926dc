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

// Package gridutil sets up the grids of a run from a configuration file
// and reads and writes map files on local disk or in blob storage.
package gridutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/forestgrid"
	"github.com/spatialmodel/forestgrid/gridmap"
	"github.com/spf13/cast"
)

// PlotConfig reads the Plot.LenX, Plot.LenY and Plot.CellLength
// configuration variables. Plot.CellLength may be omitted.
func PlotConfig(cfg *viper.Viper) (*forestgrid.Plot, error) {
	var v [3]float64
	for i, key := range []string{"Plot.LenX", "Plot.LenY", "Plot.CellLength"} {
		if !cfg.IsSet(key) {
			if i < 2 {
				return nil, fmt.Errorf("gridutil: you need to specify the %s configuration variable", key)
			}
			continue
		}
		f, err := cast.ToFloat64E(expand(cfg.Get(key)))
		if err != nil {
			return nil, fmt.Errorf("gridutil: %s: %v", key, err)
		}
		v[i] = f
	}
	p, err := forestgrid.NewPlot(v[0], v[1], v[2])
	if err != nil {
		return nil, fmt.Errorf("gridutil: %w", err)
	}
	return p, nil
}

// GridConfig describes one grid of a run.
type GridConfig struct {
	Spec forestgrid.GridSpec

	// Labels holds the cell field labels to register, per kind. The
	// grid gets exactly one slot for each label.
	Labels [4][]string

	// PackageLabels, if not nil, gives the grid its own package schema.
	// Otherwise the package schema mirrors the cell schema.
	PackageLabels *[4][]string
}

// GridConfigs reads the Grids configuration variable: a list of tables
// with the keys Name, CellX, CellY, Ints, Floats, Texts, Bools and an
// optional Package table holding its own Ints, Floats, Texts and Bools
// label lists. The variable can also be given as a JSON string, for
// example when it is set from the environment.
func GridConfigs(cfg *viper.Viper) ([]GridConfig, error) {
	raw := cfg.Get("Grids")
	if s, ok := raw.(string); ok {
		var v []interface{}
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("gridutil: Grids: %v", err)
		}
		raw = v
	}
	if raw == nil {
		return nil, nil
	}
	tables, err := toMapSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("gridutil: Grids: %v", err)
	}
	out := make([]GridConfig, len(tables))
	for i, m := range tables {
		if out[i], err = gridConfig(m); err != nil {
			return nil, fmt.Errorf("gridutil: Grids[%d]: %v", i, err)
		}
	}
	return out, nil
}

func toMapSliceE(v interface{}) ([]map[string]interface{}, error) {
	if ms, ok := v.([]map[string]interface{}); ok {
		return ms, nil
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, len(s))
	for i, e := range s {
		if out[i], err = cast.ToStringMapE(e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func gridConfig(m map[string]interface{}) (GridConfig, error) {
	var c GridConfig
	name, err := cast.ToStringE(expand(lookup(m, "Name")))
	if err != nil {
		return c, fmt.Errorf("Name: %v", err)
	}
	if name == "" {
		return c, fmt.Errorf("missing Name")
	}
	c.Spec.Name = name
	for key, dst := range map[string]*float64{"CellX": &c.Spec.CellX, "CellY": &c.Spec.CellY} {
		if v := lookup(m, key); v != nil {
			if *dst, err = cast.ToFloat64E(expand(v)); err != nil {
				return c, fmt.Errorf("%s: %v", key, err)
			}
		}
	}
	if c.Labels, err = labelLists(m); err != nil {
		return c, err
	}
	c.Spec.Ints = len(c.Labels[forestgrid.IntField])
	c.Spec.Floats = len(c.Labels[forestgrid.FloatField])
	c.Spec.Texts = len(c.Labels[forestgrid.TextField])
	c.Spec.Bools = len(c.Labels[forestgrid.BoolField])

	if p := lookup(m, "Package"); p != nil {
		pm, err := cast.ToStringMapE(p)
		if err != nil {
			return c, fmt.Errorf("Package: %v", err)
		}
		labels, err := labelLists(pm)
		if err != nil {
			return c, fmt.Errorf("Package: %v", err)
		}
		c.PackageLabels = &labels
	}
	return c, nil
}

var labelKeys = [4]string{"Ints", "Floats", "Texts", "Bools"}

func labelLists(m map[string]interface{}) ([4][]string, error) {
	var l [4][]string
	for k, key := range labelKeys {
		v := lookup(m, key)
		if v == nil {
			continue
		}
		s, err := cast.ToStringSliceE(v)
		if err != nil {
			return l, fmt.Errorf("%s: %v", key, err)
		}
		l[k] = expandStringSlice(s)
	}
	return l, nil
}

// lookup returns the value of key in m, ignoring case; configuration
// readers do not agree on the case of nested keys.
func lookup(m map[string]interface{}, key string) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

func expand(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		return os.ExpandEnv(s)
	}
	return v
}

func expandStringSlice(s []string) []string {
	for i := range s {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// setup registers the configured labels in a newly created grid.
func (c GridConfig) setup(g *forestgrid.Grid) error {
	if c.PackageLabels != nil {
		p := c.PackageLabels
		if err := g.ChangePackageSchema(len(p[forestgrid.IntField]), len(p[forestgrid.FloatField]),
			len(p[forestgrid.TextField]), len(p[forestgrid.BoolField])); err != nil {
			return err
		}
	}
	register := map[forestgrid.Kind][2]func(string) (int, error){
		forestgrid.IntField:   {g.RegisterInt, g.RegisterPackageInt},
		forestgrid.FloatField: {g.RegisterFloat, g.RegisterPackageFloat},
		forestgrid.TextField:  {g.RegisterText, g.RegisterPackageText},
		forestgrid.BoolField:  {g.RegisterBool, g.RegisterPackageBool},
	}
	for _, k := range forestgrid.Kinds {
		for _, l := range c.Labels[k] {
			if _, err := register[k][0](l); err != nil {
				return fmt.Errorf("registering %s field %q: %w", k, l, err)
			}
		}
		if c.PackageLabels == nil {
			continue
		}
		for _, l := range c.PackageLabels[k] {
			if _, err := register[k][1](l); err != nil {
				return fmt.Errorf("registering package %s field %q: %w", k, l, err)
			}
		}
	}
	return nil
}

// Build creates the grid described by c in set, or returns the grid of
// the same name if set already holds one.
func (c GridConfig) Build(set *forestgrid.GridSet) (*forestgrid.Grid, error) {
	g, _, err := set.Shared(c.Spec, c.setup)
	return g, err
}

// MapFiles returns the MapFiles configuration variable with environment
// variables expanded.
func MapFiles(cfg *viper.Viper) []string {
	return expandStringSlice(cfg.GetStringSlice("MapFiles"))
}

// Setup builds a GridSet from cfg: it creates the plot and every
// configured grid and then imports every map file into the grids.
// log may be nil, in which case the logrus standard logger is used.
func Setup(ctx context.Context, cfg *viper.Viper, log logrus.FieldLogger) (*forestgrid.GridSet, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	plot, err := PlotConfig(cfg)
	if err != nil {
		return nil, err
	}
	grids, err := GridConfigs(cfg)
	if err != nil {
		return nil, err
	}
	set := forestgrid.NewGridSet(plot)
	set.Log = log
	for _, c := range grids {
		if _, err := c.Build(set); err != nil {
			set.Close()
			return nil, fmt.Errorf("gridutil: %w", err)
		}
	}

	im := &gridmap.Importer{Log: log}
	for _, path := range MapFiles(cfg) {
		descs, err := OpenMap(ctx, path)
		if err != nil {
			set.Close()
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"file":  path,
			"grids": len(descs),
		}).Info("gridutil: read map file")
		for _, name := range set.Names() {
			if err := im.Import(set.Get(name), descs...); err != nil {
				set.Close()
				return nil, fmt.Errorf("gridutil: map file %s: %w", path, err)
			}
		}
	}
	return set, nil
}
