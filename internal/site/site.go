// Public domain.

// Package site reads observer locations from the MPC list of observatory
// codes.
package site

import (
	"errors"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/unit"
)

// Site is an observer location on the Earth.
type Site struct {
	Lon  unit.Angle // east longitude
	Lat  unit.Angle // geographic latitude
	Name string
}

// Fetch gets a fresh copy of the MPC list of observatory codes and writes
// it to the file fn.
func Fetch(fn string) error {
	return mpcformat.FetchObscodeDat(fn)
}

// ReadFile reads an MPC obscode.dat file.  The file as served has column
// headings and enclosing <pre></pre> tags; these are safely ignored.
//
// Lines that do not parse as data are quietly ignored.  The result maps
// 3-character codes to sites.  Codes with both parallax constants zero,
// such as spacecraft, map to nil.
func ReadFile(fn string) (map[string]*Site, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	m := Parse(string(b))
	if len(m) == 0 {
		return nil, errors.New("data unreadable in " + fn)
	}
	return m, nil
}

// Parse parses the text of an obscode.dat file.
func Parse(s string) map[string]*Site {
	m := make(map[string]*Site)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 30 {
			continue // quietly ignore extraneous lines such as <pre>
		}
		lon, ok := field(line[4:13], 0, 360)
		if !ok || lon == 360 {
			// quietly ignore lines with invalid longitude,
			// such as the column heading line.
			continue
		}
		rhoCosPhi, ok := field(line[13:21], 0, 1)
		if !ok {
			continue
		}
		rhoSinPhi, ok := field(line[21:30], -1, 1)
		if !ok {
			continue
		}
		if rhoCosPhi == 0 && rhoSinPhi == 0 {
			m[line[0:3]] = nil
			continue
		}
		m[line[0:3]] = &Site{
			Lon:  unit.AngleFromDeg(lon),
			Lat:  geographic(unit.Angle(math.Atan2(rhoSinPhi, rhoCosPhi))),
			Name: strings.TrimSpace(line[30:]),
		}
	}
	return m
}

// field parses a fixed column number.  Blank fields default to 0.
func field(s string, min, max float64) (float64, bool) {
	ts := strings.TrimSpace(s)
	if ts == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(ts, 64)
	if err != nil || v < min || v > max {
		return 0, false
	}
	return v, true
}

// geographic converts geocentric latitude to geographic latitude at sea
// level.
func geographic(φc unit.Angle) unit.Angle {
	φ := φc
	for i := 0; i < 3; i++ {
		φ = φc + globe.GeocentricLatitudeDifference(φ)
	}
	return φ
}
