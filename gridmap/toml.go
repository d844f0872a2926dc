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
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/forestgrid"
)

// document is the top level of a map file. A file can hold descriptions
// of several grids.
type document struct {
	Grids []*Description `toml:"grid"`
}

// Decode reads every grid description in the TOML map file r.
// Keys that are not part of the format are an error.
func Decode(r io.Reader) ([]*Description, error) {
	var doc document
	md, err := toml.DecodeReader(r, &doc)
	if err != nil {
		return nil, fmt.Errorf("gridmap: decoding map file: %v: %w", err, forestgrid.ErrBadData)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("gridmap: unknown keys in map file: %s: %w",
			strings.Join(keys, ", "), forestgrid.ErrBadData)
	}
	for i, d := range doc.Grids {
		if d.Name == "" {
			return nil, fmt.Errorf("gridmap: grid description %d has no name: %w", i, forestgrid.ErrBadData)
		}
	}
	return doc.Grids, nil
}

// Encode writes descs to w as a TOML map file.
func Encode(w io.Writer, descs ...*Description) error {
	if err := toml.NewEncoder(w).Encode(document{Grids: descs}); err != nil {
		return fmt.Errorf("gridmap: encoding map file: %v", err)
	}
	return nil
}
