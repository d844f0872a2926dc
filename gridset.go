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
	"fmt"

	"github.com/sirupsen/logrus"
)

// GridSet owns the plot and all of the grids of a simulation run.
// Behaviors look grids up by name; a grid lives until the set is closed.
type GridSet struct {
	plot  *Plot
	grids map[string]*Grid
	names []string

	// Log receives messages about grid creation and teardown.
	Log logrus.FieldLogger
}

// NewGridSet returns an empty set of grids over plot.
func NewGridSet(plot *Plot) *GridSet {
	return &GridSet{
		plot:  plot,
		grids: make(map[string]*Grid),
		Log:   logrus.StandardLogger(),
	}
}

// Plot returns the plot shared by the grids in s.
func (s *GridSet) Plot() *Plot { return s.plot }

// Create creates a grid with the given spec. Grid names are unique within
// a set.
func (s *GridSet) Create(spec GridSpec) (*Grid, error) {
	if _, ok := s.grids[spec.Name]; ok {
		return nil, fmt.Errorf("forestgrid: a grid named %s already exists: %w", spec.Name, ErrInvalidArgument)
	}
	g, err := NewGrid(s.plot, spec)
	if err != nil {
		return nil, err
	}
	s.grids[g.name] = g
	s.names = append(s.names, g.name)
	s.Log.WithFields(logrus.Fields{
		"grid":   g.name,
		"cells":  fmt.Sprintf("%dx%d", g.nx, g.ny),
		"ints":   spec.Ints,
		"floats": spec.Floats,
		"texts":  spec.Texts,
		"bools":  spec.Bools,
	}).Debug("created grid")
	return g, nil
}

// Get returns the grid with the given name, or nil if there is none.
func (s *GridSet) Get(name string) *Grid { return s.grids[name] }

// Names returns the names of the grids in the order they were created.
func (s *GridSet) Names() []string {
	o := make([]string, len(s.names))
	copy(o, s.names)
	return o
}

// Shared returns the grid named spec.Name, creating it if it does not
// exist yet. The first caller creates the grid and runs setup on it, for
// example to register fields; later callers get the same grid back
// without setup being run again. created reports whether this call
// created the grid. If setup fails the new grid is removed again.
func (s *GridSet) Shared(spec GridSpec, setup func(*Grid) error) (g *Grid, created bool, err error) {
	if g = s.grids[spec.Name]; g != nil {
		return g, false, nil
	}
	g, err = s.Create(spec)
	if err != nil {
		return nil, false, err
	}
	if setup != nil {
		if err = setup(g); err != nil {
			s.remove(g.name)
			return nil, false, fmt.Errorf("forestgrid: setting up shared grid %s: %w", spec.Name, err)
		}
	}
	return g, true, nil
}

func (s *GridSet) remove(name string) {
	delete(s.grids, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Close tears down every grid in s and empties the set.
func (s *GridSet) Close() {
	for _, name := range s.names {
		s.grids[name].teardown()
		s.Log.WithField("grid", name).Debug("released grid")
	}
	s.grids = make(map[string]*Grid)
	s.names = nil
}
