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
	"math"
	"strconv"
	"strings"

	"github.com/spatialmodel/forestgrid"
	"github.com/spf13/cast"
)

// literal converts a description value to the Go type of kind k. Values
// read from a map file arrive either as native TOML values or as strings
// holding their literal text.
func literal(k forestgrid.Kind, v interface{}) (interface{}, error) {
	switch k {
	case forestgrid.IntField:
		return intLiteral(v)
	case forestgrid.FloatField:
		return floatLiteral(v)
	case forestgrid.TextField:
		return textLiteral(v)
	case forestgrid.BoolField:
		return boolLiteral(v)
	}
	return nil, fmt.Errorf("invalid field kind %d", k)
}

func intLiteral(v interface{}) (int, error) {
	switch t := v.(type) {
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t)
		}
		return i, nil
	case bool, nil:
		return 0, fmt.Errorf("%v is not an integer", v)
	case float32:
		return intLiteral(float64(t))
	case float64:
		// float64(math.MinInt) is exact, so its negation is the first value
		// past the top of int.
		if t != math.Trunc(t) || t < float64(math.MinInt) || t >= -float64(math.MinInt) {
			return 0, fmt.Errorf("%v is not an integer in range", t)
		}
	case uint:
		if uint64(t) > math.MaxInt {
			return 0, fmt.Errorf("%v is not an integer in range", t)
		}
	case uint64:
		if t > math.MaxInt {
			return 0, fmt.Errorf("%v is not an integer in range", t)
		}
	}
	return cast.ToIntE(v)
}

func floatLiteral(v interface{}) (float64, error) {
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		return finite(f)
	case bool, nil:
		return 0, fmt.Errorf("%v is not a number", v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	return finite(f)
}

// finite rejects NaN and the infinities, which no grid value may hold.
func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return f, nil
}

func textLiteral(v interface{}) (string, error) {
	if v == nil {
		return "", fmt.Errorf("missing text value")
	}
	return cast.ToStringE(v)
}

func boolLiteral(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch t {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("%#v is not a boolean (want true or false)", v)
}
