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

// Package forestgrid is the spatial data engine of an individual-based forest
// simulator. A Grid partitions a toroidal plot into rectangular cells; every
// cell carries a run-time defined set of integer, floating-point, text and
// boolean fields, plus a singly-linked list of packages for data whose
// cardinality varies from cell to cell (cohorts, scheduled events, ...).
//
// Behaviors register the fields they need once during setup and keep the
// returned codes for constant-time access during the run:
//
//	plot, _ := forestgrid.NewPlot(100, 100, 8)
//	grids := forestgrid.NewGridSet(plot)
//	g, _ := grids.Create(forestgrid.GridSpec{Name: "Light", Floats: 1})
//	glc, _ := g.RegisterFloat("GLI")
//	g.SetFloatAt(12.5, 40, glc, 87)
//	mean, _ := g.AverageFloat(12.5, 40, glc, 15)
//
// The engine is single-threaded: a grid must not be used from more than one
// goroutine at a time.
package forestgrid
