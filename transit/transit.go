// Public domain.

// Package transit defines what a transit search needs to know about the
// quantity it follows, and implements it for house cusps and angles.
//
// A transit search brackets the moment a quantity reaches a target value
// (the offset) using the least and greatest rate at which the quantity can
// change, then samples it with Calc until the moment is found to the
// requested precision.  The search itself is not part of this package.
package transit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/unit"
)

// Calculator is the contract between a transit search and the quantity
// it follows.  Speeds are in units of the quantity per day.
type Calculator interface {
	// Calc samples the quantity at Julian day jd.
	Calc(jd float64) (float64, error)
	MinSpeed() float64
	MaxSpeed() float64
	// TimePrecision converts a precision of the quantity to days.
	TimePrecision(degPrec float64) float64
	// DegreePrecision is the precision the quantity can be found to.
	DegreePrecision(jd float64) float64
	// Rollover reports whether the quantity wraps at 360.
	Rollover() bool
	Offset() float64
	SetOffset(float64)
}

// HouseCalculator computes house cusps and angles for an observer at east
// longitude lon and latitude lat.
type HouseCalculator interface {
	Houses(jd float64, lon, lat unit.Angle, sys house.System, flags Flags) (house.Positions, error)
}

// Flags select what a transit search follows and how positions are
// computed.
type Flags uint32

const (
	TransitLongitude Flags = 1 << iota
	TransitLatitude
	TransitDistance
	Sidereal // sidereal zodiac, handled by the HouseCalculator

	modeMask  = TransitLongitude | TransitLatitude | TransitDistance
	validMask = modeMask | Sidereal
)

var flagName = []string{"longitude", "latitude", "distance", "sidereal"}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var s []string
	for i, n := range flagName {
		if f&(1<<uint(i)) != 0 {
			s = append(s, n)
		}
	}
	if r := f &^ validMask; r != 0 {
		s = append(s, fmt.Sprintf("%#x", uint32(r)))
	}
	return strings.Join(s, "|")
}

// Mode returns the transit mode bits of f.  No mode means longitude.
func (f Flags) Mode() Flags {
	if m := f & modeMask; m != 0 {
		return m
	}
	return TransitLongitude
}

// ErrInvalidArgument is wrapped by errors from constructors and setters.
var ErrInvalidArgument = errors.New("invalid argument")

func invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, a...))
}

// CalcError reports a failure of the underlying computation at JD.
type CalcError struct {
	JD   float64
	Code int // return code of the computation, -1 if it gave none
	Err  error
}

func (e *CalcError) Error() string {
	return fmt.Sprintf("calculation failed at JD %.6f (code %d): %v",
		e.JD, e.Code, e.Err)
}

func (e *CalcError) Unwrap() error { return e.Err }

// returnCode extracts the code of an error from a HouseCalculator.
func returnCode(err error) int {
	var rc interface{ ReturnCode() int }
	if errors.As(err, &rc) {
		return rc.ReturnCode()
	}
	return -1
}
