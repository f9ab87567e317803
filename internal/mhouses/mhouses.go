// Public domain.

// Package mhouses computes house angles and the cusps of the ecliptic
// division house systems from meeus sidereal time and nutation.
//
// It serves the cusptransit command and tests.  Quadrant systems such as
// Placidus need an external HouseCalculator.
package mhouses

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/transit"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// Error is returned for requests the calculator cannot serve.  Its return
// code is always -1, as for a failed house computation.
type Error struct {
	Err    error // ErrSystem or ErrSidereal
	Detail string
}

func (e *Error) Error() string   { return e.Err.Error() + ": " + e.Detail }
func (e *Error) Unwrap() error   { return e.Err }
func (e *Error) ReturnCode() int { return -1 }

var (
	ErrSystem   = errors.New("house system not computed")
	ErrSidereal = errors.New("sidereal positions not computed")
)

// Calculator implements transit.HouseCalculator.
type Calculator struct{}

var _ transit.HouseCalculator = Calculator{}

// Systems lists the house systems Calculator computes.
var Systems = []house.System{house.Equal, house.Vehlow, house.Porphyry, house.Meridian}

// ARMC returns the right ascension of the meridian at jd (UT) for east
// longitude lon, and the true obliquity of the ecliptic.
func ARMC(jd float64, lon unit.Angle) (armc, ε unit.Angle) {
	_, Δε := nutation.Nutation(jd)
	ε = nutation.MeanObliquity(jd) + Δε
	armc = unit.AngleFromDeg(deg(unit.Angle(sidereal.Apparent(jd).Rad()).Deg() + lon.Deg()))
	return
}

// Houses computes positions at jd (UT) for an observer at east longitude
// lon and latitude lat.
func (Calculator) Houses(jd float64, lon, lat unit.Angle, sys house.System, flags transit.Flags) (p house.Positions, err error) {
	if flags&transit.Sidereal != 0 {
		return p, &Error{ErrSidereal, flags.String()}
	}
	th, ε := ARMC(jd, lon)
	Angles(th.Deg(), lat.Deg(), ε, &p)
	return p, Cusps(sys, th.Deg(), ε, &p)
}

// Cusps fills p.Cusps for ARMC th, degrees.  p.Angles must already hold
// the angles for th.
func Cusps(sys house.System, th float64, ε unit.Angle, p *house.Positions) error {
	ac, mc := p.Value(house.Asc), p.Value(house.MC)
	switch sys {
	case house.Equal:
		for i := range p.Cusps {
			p.Cusps[i] = deg(ac + 30*float64(i))
		}
	case house.Vehlow:
		for i := range p.Cusps {
			p.Cusps[i] = deg(ac - 15 + 30*float64(i))
		}
	case house.Meridian:
		for i := range p.Cusps {
			// cusp 10 on the meridian, then 30° steps of right ascension
			p.Cusps[i] = eclLon(th+30*float64(i+3), ε)
		}
	case house.Porphyry:
		q := deg(ac - mc)
		p.Cusps[0] = ac
		p.Cusps[1] = deg(ac + (180-q)/3)
		p.Cusps[2] = deg(ac + (180-q)*2/3)
		p.Cusps[9] = mc
		p.Cusps[10] = deg(mc + q/3)
		p.Cusps[11] = deg(mc + q*2/3)
		for i := 3; i < 9; i++ {
			p.Cusps[i] = deg(p.Cusps[(i+6)%12] + 180)
		}
	default:
		return &Error{ErrSystem, fmt.Sprintf("%s (%s)", sys, sys.Name())}
	}
	return nil
}

// Angles fills p.Angles for ARMC th and latitude fi, both in degrees.
func Angles(th, fi float64, ε unit.Angle, p *house.Positions) {
	mc := eclLon(th, ε)
	p.Set(house.ARMC, deg(th))
	p.Set(house.MC, mc)
	ac := asc(th+90, fi, ε)
	// inside the polar circle the ascendant is kept east of the MC
	if math.Abs(fi) >= 90-ε.Deg() && diff(ac, mc) < 0 {
		ac = deg(ac + 180)
	}
	p.Set(house.Asc, ac)
	f := 90 - fi
	if fi < 0 {
		f = -90 - fi
	}
	vx := asc(th-90, f, ε)
	// in the tropics the vertex is kept west of the MC
	if math.Abs(fi) <= ε.Deg() && diff(vx, mc) > 0 {
		vx = deg(vx + 180)
	}
	p.Set(house.Vertex, vx)
	p.Set(house.EquAsc, asc(th+90, 0, ε))
	pa := asc(th-90, fi, ε)
	p.Set(house.Polasc, pa)
	p.Set(house.Coasc1, deg(pa+180))
	p.Set(house.Coasc2, asc(th+90, f, ε))
}

// asc returns the ecliptic longitude rising at pole height f for the
// equator point x.
func asc(x, f float64, ε unit.Angle) float64 {
	xr := unit.AngleFromDeg(x)
	sε, cε := math.Sincos(ε.Rad())
	return deg(unit.Angle(math.Atan2(xr.Sin(),
		xr.Cos()*cε-math.Tan(f*math.Pi/180)*sε)).Deg())
}

// eclLon returns the ecliptic longitude of the equator point at right
// ascension ra, degrees.
func eclLon(ra float64, ε unit.Angle) float64 {
	r := unit.AngleFromDeg(ra)
	return deg(unit.Angle(math.Atan2(r.Sin(), r.Cos()*ε.Cos())).Deg())
}

func deg(d float64) float64 { return unit.PMod(d, 360) }

// diff returns a-b in (-180, 180].
func diff(a, b float64) float64 {
	d := unit.PMod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	return d
}
