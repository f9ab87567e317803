// Public domain.

package mhouses

import (
	"errors"
	"math"
	"testing"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/transit"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

var ε2000 = unit.AngleFromDeg(23.4393)

func near(a, b, tol float64) bool { return math.Abs(diff(a, b)) <= tol }

func TestAngles(t *testing.T) {
	var p house.Positions
	Angles(0, 45, ε2000, &p)
	if !near(p.Value(house.MC), 0, 1e-12) || !near(p.Value(house.ARMC), 0, 1e-12) {
		t.Fatal("mc", p.Angles)
	}
	Angles(90, 45, ε2000, &p)
	if !near(p.Value(house.MC), 90, 1e-12) {
		t.Fatal("mc", p.Value(house.MC))
	}
	// on the equator the ascendant is the east point
	for _, th := range []float64{0, 37, 123, 250} {
		Angles(th, 0, ε2000, &p)
		if !near(p.Value(house.Asc), p.Value(house.EquAsc), 1e-9) {
			t.Fatal("asc", th, p.Angles)
		}
		if !near(p.Value(house.Coasc1), p.Value(house.Polasc)+180, 1e-9) {
			t.Fatal("coasc1", th, p.Angles)
		}
	}
	Angles(0, 0, ε2000, &p)
	if !near(p.Value(house.Asc), 90, 1e-9) {
		t.Fatal("asc", p.Value(house.Asc))
	}
}

func TestPolarAscendant(t *testing.T) {
	var p house.Positions
	for th := 0.; th < 360; th += 7.5 {
		Angles(th, 75, ε2000, &p)
		if d := diff(p.Value(house.Asc), p.Value(house.MC)); d < 0 {
			t.Fatal("ascendant west of mc", th, d)
		}
	}
}

// At tropical latitudes the vertex stays on the western side of the MC.
func TestTropicalVertex(t *testing.T) {
	var p house.Positions
	for _, fi := range []float64{0.5, 5, -5, 15, -23} {
		for th := 0.; th < 360; th += 2.5 {
			Angles(th, fi, ε2000, &p)
			if d := diff(p.Value(house.Vertex), p.Value(house.MC)); d > 0 {
				t.Fatal("vertex east of mc", fi, th, d)
			}
		}
	}
	// the plain formula falls east for much of the day
	east := 0
	for th := 0.; th < 360; th += 2.5 {
		if diff(asc(th-90, 85, ε2000), eclLon(th, ε2000)) > 0 {
			east++
		}
	}
	if east == 0 {
		t.Fatal("vertex formula never east of mc at latitude 5")
	}
}

func TestCusps(t *testing.T) {
	jd := julian.CalendarGregorianToJD(2000, 1, 1.5)
	lon, lat := unit.AngleFromDeg(-71.06), unit.AngleFromDeg(42.36)
	var c Calculator
	for _, sys := range Systems {
		p, err := c.Houses(jd, lon, lat, sys, transit.TransitLongitude)
		if err != nil {
			t.Fatal(sys, err)
		}
		for i := 0; i < 6; i++ {
			if !near(p.Cusps[i+6], p.Cusps[i]+180, 1e-9) {
				t.Fatal(sys, "opposite cusps", i+1, p.Cusps)
			}
		}
		switch sys {
		case house.Equal:
			if p.Cusps[0] != p.Value(house.Asc) || !near(p.Cusps[4], p.Cusps[0]+120, 1e-9) {
				t.Fatal(sys, p.Cusps)
			}
		case house.Vehlow:
			if !near(p.Cusps[0], p.Value(house.Asc)-15, 1e-9) {
				t.Fatal(sys, p.Cusps)
			}
		case house.Porphyry:
			if p.Cusps[0] != p.Value(house.Asc) || p.Cusps[9] != p.Value(house.MC) {
				t.Fatal(sys, p.Cusps)
			}
			// equal trisection of the quadrant mc..asc
			q := unit.PMod(p.Cusps[0]-p.Cusps[9], 360)
			if !near(p.Cusps[10], p.Cusps[9]+q/3, 1e-9) {
				t.Fatal(sys, p.Cusps)
			}
		case house.Meridian:
			if !near(p.Cusps[9], p.Value(house.MC), 1e-9) {
				t.Fatal(sys, p.Cusps)
			}
		}
	}
	th, _ := ARMC(jd, lon)
	if p, _ := c.Houses(jd, lon, lat, house.Equal, 0); !near(p.Value(house.ARMC), th.Deg(), 1e-12) {
		t.Fatal("armc")
	}
}

func TestUnsupported(t *testing.T) {
	var c Calculator
	_, err := c.Houses(2451545, 0, unit.AngleFromDeg(50), house.Placidus, 0)
	if !errors.Is(err, ErrSystem) {
		t.Fatal(err)
	}
	_, err = c.Houses(2451545, 0, unit.AngleFromDeg(50), house.Equal, transit.Sidereal)
	if !errors.Is(err, ErrSidereal) {
		t.Fatal(err)
	}
	h, err := transit.NewHouses(c, house.House11, house.Koch, 0, unit.AngleFromDeg(50), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = h.Calc(2451545)
	var ce *transit.CalcError
	if !errors.As(err, &ce) || ce.Code != -1 || !errors.Is(err, ErrSystem) {
		t.Fatal(err)
	}
}

// Motion measured over a day stays within the bounds of the speed model.
func TestSpeedWithinBounds(t *testing.T) {
	jd0 := julian.CalendarGregorianToJD(1990, 1, 1)
	const dt = 1e-5
	objs := []house.Object{house.Asc, house.MC, house.ARMC, house.Vertex,
		house.EquAsc, house.Polasc, house.House2, house.House11, house.House12}
	for _, sys := range Systems {
		for _, lat := range []float64{5, 15, 30, 52.5, -65} {
			for _, o := range objs {
				h, err := transit.NewHouses(Calculator{}, o, sys,
					unit.AngleFromDeg(10), unit.AngleFromDeg(lat), 0, 0)
				if err != nil {
					t.Fatal(err)
				}
				tol := .5 + 1e-3*math.Max(math.Abs(h.MinSpeed()), math.Abs(h.MaxSpeed()))
				for i := 0; i < 288; i++ {
					jd := jd0 + float64(i)/288
					v0, err0 := h.Calc(jd - dt)
					v1, err1 := h.Calc(jd + dt)
					if err0 != nil || err1 != nil {
						t.Fatal(err0, err1)
					}
					s := diff(v1, v0) / (2 * dt)
					if s < h.MinSpeed()-tol || s > h.MaxSpeed()+tol {
						t.Fatalf("%s %s lat %g jd %.4f: speed %.3f outside %.3f..%.3f",
							sys, o, lat, jd, s, h.MinSpeed(), h.MaxSpeed())
					}
				}
			}
		}
	}
}
