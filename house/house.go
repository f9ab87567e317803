// Public domain.

// Package house defines the house cusps, angles and house systems a transit
// search can follow.
package house

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Object identifies an angle or a house cusp.
//
// Object values are opaque and cannot be combined.  Use the package values
// below, Cusp, or ParseObject.  The zero Object is Asc.
type Object struct{ n int8 }

// Angles.
var (
	Asc    = Object{0}
	MC     = Object{1}
	ARMC   = Object{2}
	Vertex = Object{3}
	EquAsc = Object{4} // equatorial ascendant, "east point"
	Coasc1 = Object{5} // co-ascendant, W. Koch
	Coasc2 = Object{6} // co-ascendant, M. Munkasey
	Polasc = Object{7} // polar ascendant, M. Munkasey
)

// Cusps.
var (
	House1  = Object{-1}
	House2  = Object{-2}
	House3  = Object{-3}
	House4  = Object{-4}
	House5  = Object{-5}
	House6  = Object{-6}
	House7  = Object{-7}
	House8  = Object{-8}
	House9  = Object{-9}
	House10 = Object{-10}
	House11 = Object{-11}
	House12 = Object{-12}
)

// NumAngles is the number of angles, NumObjects the number of angles and
// cusps together.
const (
	NumAngles  = 8
	NumObjects = NumAngles + 12
)

// Objects lists all angles in order, then cusps 1 through 12.
var Objects = []Object{
	Asc, MC, ARMC, Vertex, EquAsc, Coasc1, Coasc2, Polasc,
	House1, House2, House3, House4, House5, House6,
	House7, House8, House9, House10, House11, House12,
}

var angleName = [NumAngles]string{
	"asc", "mc", "armc", "vertex", "equasc", "coasc1", "coasc2", "polasc"}

// invalid is returned by Cusp and ParseObject when there is no such object.
var invalid = Object{-13}

// Cusp returns the Object for cusp n, 1 <= n <= 12.  Other n give an
// Object that is not Valid.
func Cusp(n int) Object {
	if n < 1 || n > 12 {
		return invalid
	}
	return Object{int8(-n)}
}

// Code returns the number of o: 0 through 7 for the angles in the order
// of Objects, minus the house number for a cusp.
func (o Object) Code() int { return int(o.n) }

// Valid reports whether o is one of the defined angles or cusps.
func (o Object) Valid() bool {
	return o.n >= -12 && o.n < NumAngles
}

// IsCusp reports whether o is a house cusp.
func (o Object) IsCusp() bool { return o.n < 0 }

// House returns the house number of a cusp, 0 for an angle.
func (o Object) House() int {
	if o.n < 0 {
		return int(-o.n)
	}
	return 0
}

func (o Object) String() string {
	switch {
	case !o.Valid():
		return "Object(" + strconv.Itoa(o.Code()) + ")"
	case o.n < 0:
		return "h" + strconv.Itoa(o.House())
	}
	return angleName[o.n]
}

// ErrUnknownObject is returned by ParseObject.
var ErrUnknownObject = errors.New("unknown house object")

// ParseObject parses the names produced by Object.String, case insensitive.
// Cusps may also be given as plain house numbers.
func ParseObject(s string) (Object, error) {
	ls := strings.ToLower(strings.TrimSpace(s))
	for i, n := range angleName {
		if ls == n {
			return Object{int8(i)}, nil
		}
	}
	ls = strings.TrimPrefix(ls, "h")
	if n, err := strconv.Atoi(ls); err == nil && n >= 1 && n <= 12 {
		return Cusp(n), nil
	}
	return invalid, fmt.Errorf("%w: %q", ErrUnknownObject, s)
}

// System is a house system, identified by its one letter code.
type System byte

const (
	Placidus      System = 'P'
	Koch          System = 'K'
	Porphyry      System = 'O'
	Regiomontanus System = 'R'
	Campanus      System = 'C'
	Equal         System = 'E'
	Vehlow        System = 'V'
	Meridian      System = 'X' // axial rotation
	Horizontal    System = 'H' // azimuthal
	PolichPage    System = 'T' // topocentric
	Alcabitius    System = 'B'
)

// Systems lists the supported house systems.
var Systems = []System{
	Placidus, Koch, Porphyry, Regiomontanus, Campanus, Equal,
	Vehlow, Meridian, Horizontal, PolichPage, Alcabitius,
}

var systemName = map[System]string{
	Placidus:      "Placidus",
	Koch:          "Koch",
	Porphyry:      "Porphyry",
	Regiomontanus: "Regiomontanus",
	Campanus:      "Campanus",
	Equal:         "Equal",
	Vehlow:        "Vehlow",
	Meridian:      "Meridian",
	Horizontal:    "Horizontal",
	PolichPage:    "Polich-Page",
	Alcabitius:    "Alcabitius",
}

// known house system letters without daily motion bounds.
var unsupportedName = map[System]string{
	'G': "Gauquelin sectors",
	'M': "Morinus",
	'U': "Krusinski",
	'W': "whole sign",
}

// Valid reports whether s is a supported house system.
func (s System) Valid() bool {
	_, ok := systemName[s]
	return ok
}

// Name returns the long name of the system.
func (s System) Name() string {
	if n, ok := systemName[s]; ok {
		return n
	}
	if n, ok := unsupportedName[s]; ok {
		return n
	}
	return "unknown"
}

func (s System) String() string {
	if s >= ' ' && s <= '~' {
		return string(rune(s))
	}
	return "System(" + strconv.Itoa(int(s)) + ")"
}

// ErrUnsupportedSystem is returned by ParseSystem.
var ErrUnsupportedSystem = errors.New("unsupported house system")

// ParseSystem accepts a one letter code or a long name, case insensitive.
func ParseSystem(s string) (System, error) {
	ts := strings.TrimSpace(s)
	if len(ts) == 1 {
		sys := System(strings.ToUpper(ts)[0])
		if sys.Valid() {
			return sys, nil
		}
		if n, ok := unsupportedName[sys]; ok {
			return 0, fmt.Errorf("%w: %s (%s)", ErrUnsupportedSystem, sys, n)
		}
	}
	for sys, n := range systemName {
		if strings.EqualFold(ts, n) {
			return sys, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedSystem, s)
}

// Positions holds the result of a house computation, in degrees.
type Positions struct {
	Cusps  [12]float64        // cusp n at index n-1
	Angles [NumAngles]float64 // by Code
}

// Value returns the position of o.  o must be Valid.
func (p *Positions) Value(o Object) float64 {
	if o.n < 0 {
		return p.Cusps[-o.n-1]
	}
	return p.Angles[o.n]
}

// Set stores v as the position of o.  o must be Valid.
func (p *Positions) Set(o Object, v float64) {
	if o.n < 0 {
		p.Cusps[-o.n-1] = v
		return
	}
	p.Angles[o.n] = v
}
