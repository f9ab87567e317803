// Public domain.

// Package speedbin holds the latitude binned model of worst case daily
// motion of house cusps and angles.
//
// The model is the file speeds.yaml, compiled in.  For each house system and
// latitude band it gives the least and greatest daily motion, in degrees per
// day, of each of the eight angles and twelve cusps.  The values were found
// by sampling positions over a full sidereal day for latitudes across the
// band and for obliquities of the ecliptic between 23.435 and 23.4533
// degrees.  They only seed a transit search with safe step sizes.
package speedbin

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/unit"
)

//go:embed speeds.yaml
var speedsYAML []byte

// Band is a latitude band, labeled by its upper limit in degrees.
type Band int

// Bands lists the bands of the model in increasing latitude.
var Bands = []Band{10, 20, 30, 40, 50, 60, 66, 70, 80, 85, 88, 90}

// Bounds are least and greatest daily motion in degrees per day.
type Bounds struct {
	Min, Max float64
}

// Undefined reports whether positions cannot be computed in the band.
func (b Bounds) Undefined() bool {
	return math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0)
}

// Degenerate reports whether the bounds carry no motion at all.
func (b Bounds) Degenerate() bool {
	return b.Min == 0 && b.Max == 0
}

// Fallback is returned by Lookup for a system not in the model.
var Fallback = Bounds{3200, 4000}

// Row holds bounds for all objects, indexed by Slot.
type Row [house.NumObjects]Bounds

var model map[house.System]map[Band]*Row

func init() {
	var err error
	if model, err = Parse(speedsYAML); err != nil {
		panic("speedbin: " + err.Error())
	}
}

// Parse decodes a model in the format of speeds.yaml.
func Parse(b []byte) (map[house.System]map[Band]*Row, error) {
	var raw map[string]map[int]map[string][2]float64
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	m := make(map[house.System]map[Band]*Row, len(raw))
	for sc, bands := range raw {
		sys, err := house.ParseSystem(sc)
		if err != nil {
			return nil, err
		}
		sm := make(map[Band]*Row, len(bands))
		for bl, objs := range bands {
			if len(objs) != house.NumObjects {
				return nil, fmt.Errorf("%s band %d: %d objects", sys, bl, len(objs))
			}
			r := new(Row)
			var seen [house.NumObjects]bool
			for on, mm := range objs {
				o, err := house.ParseObject(on)
				if err != nil {
					return nil, err
				}
				if seen[Slot(o)] {
					return nil, fmt.Errorf("%s band %d: %s twice", sys, bl, o)
				}
				seen[Slot(o)] = true
				r[Slot(o)] = Bounds{mm[0], mm[1]}
			}
			sm[Band(bl)] = r
		}
		if len(sm) != len(Bands) {
			return nil, fmt.Errorf("%s: %d bands", sys, len(sm))
		}
		for _, bl := range Bands {
			if sm[bl] == nil {
				return nil, fmt.Errorf("%s: band %d missing", sys, bl)
			}
		}
		m[sys] = sm
	}
	return m, nil
}

// Slot returns the row index of a Valid object.  Angles keep their own
// number, cusp n goes to n+7.
func Slot(o house.Object) int {
	if o.IsCusp() {
		return o.House() + house.NumAngles - 1
	}
	return o.Code()
}

// BandOf selects the band of a latitude.
//
// Bands are ten degrees wide up to 60.  60 to 66 inclusive is band 66, then
// bands 70 and 80.  80 to 88 goes to band 88, so band 85 is never selected.
// 88 and up, including the pole, is band 90.
func BandOf(lat unit.Angle) Band {
	l := math.Abs(lat.Deg())
	switch {
	case l < 60:
		return Band(10 + int(l/10)*10)
	case l <= 66:
		return 66
	case l < 70:
		return 70
	case l < 80:
		return 80
	case l < 88:
		return 88
	}
	return 90
}

// Lookup returns the bounds for object o of system sys at latitude lat.
// A system not in the model gets Fallback.
func Lookup(sys house.System, lat unit.Angle, o house.Object) Bounds {
	sm, ok := model[sys]
	if !ok {
		return Fallback
	}
	return sm[BandOf(lat)][Slot(o)]
}

// Table returns the rows of one system by band.  The rows are shared and
// must not be modified.
func Table(sys house.System) (map[Band]*Row, bool) {
	sm, ok := model[sys]
	return sm, ok
}
