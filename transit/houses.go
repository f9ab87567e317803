// Public domain.

package transit

import (
	"fmt"
	"math"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/internal/speedbin"
	"github.com/soniakeys/unit"
)

// Houses follows the longitude of one house cusp or angle.
//
// Speed bounds come from the compiled in model of worst case daily motion
// for the house system and the latitude band of the observer.
//
// A Houses is not safe for concurrent use.
type Houses struct {
	hc       HouseCalculator
	obj      house.Object
	sys      house.System
	lon, lat unit.Angle
	flags    Flags
	offset   float64
	min, max float64
}

var _ Calculator = (*Houses)(nil)

// NewHouses validates its arguments and looks up the speed bounds for obj.
//
// It fails with an error wrapping ErrInvalidArgument for unrecognized flags,
// a transit mode other than longitude, an object or house system that is
// not valid, a latitude outside ±90°, or a latitude where the house system
// gives obj no usable motion.
func NewHouses(hc HouseCalculator, obj house.Object, sys house.System,
	lon, lat unit.Angle, flags Flags, offset float64) (*Houses, error) {
	if hc == nil {
		return nil, invalid("nil house calculator")
	}
	if r := flags &^ validMask; r != 0 {
		return nil, invalid("unrecognized flags %#x", uint32(r))
	}
	switch m := flags.Mode(); {
	case m&(m-1) != 0:
		return nil, invalid("more than one transit mode: %s", m)
	case m != TransitLongitude:
		return nil, invalid("house positions have no %s", m)
	}
	if !obj.Valid() {
		return nil, invalid("house object %d", obj.Code())
	}
	if !sys.Valid() {
		return nil, invalid("house system %s (%s)", sys, sys.Name())
	}
	h := &Houses{
		hc:    hc,
		obj:   obj,
		sys:   sys,
		flags: flags,
	}
	if err := h.SetLocation(lon, lat); err != nil {
		return nil, err
	}
	h.offset = h.checkOffset(offset)
	return h, nil
}

// SetLocation moves the observer and looks up speed bounds for the new
// latitude.  On error h is left unchanged.
func (h *Houses) SetLocation(lon, lat unit.Angle) error {
	if d := lat.Deg(); !(d >= -90 && d <= 90) {
		return invalid("latitude %g", d)
	}
	b := speedbin.Lookup(h.sys, lat, h.obj)
	switch {
	case b.Undefined():
		return invalid("%s motion undefined in %s houses at latitude %g",
			h.obj, h.sys.Name(), lat.Deg())
	case b.Degenerate():
		return invalid("%s houses degenerate for %s at latitude %g",
			h.sys.Name(), h.obj, lat.Deg())
	}
	h.lon, h.lat = lon, lat
	h.min, h.max = b.Min, b.Max
	return nil
}

// Calc returns the longitude of the object at jd, in degrees.
func (h *Houses) Calc(jd float64) (float64, error) {
	p, err := h.hc.Houses(jd, h.lon, h.lat, h.sys, h.flags)
	if err != nil {
		return 0, &CalcError{JD: jd, Code: returnCode(err), Err: err}
	}
	return unit.PMod(p.Value(h.obj), 360), nil
}

// MinSpeed returns the least daily motion, in degrees per day.
func (h *Houses) MinSpeed() float64 { return h.min }

// MaxSpeed returns the greatest daily motion, in degrees per day.
func (h *Houses) MaxSpeed() float64 { return h.max }

// TimePrecision returns the time in days the object needs at most to move
// degPrec degrees.
func (h *Houses) TimePrecision(degPrec float64) float64 {
	v := math.Max(math.Abs(h.min), math.Abs(h.max))
	if v == 0 {
		return 1e-9
	}
	return degPrec / v
}

// DegreePrecision is a quarter arc second.
func (h *Houses) DegreePrecision(jd float64) float64 {
	return 1. / 3600 / 2 / 2
}

// Rollover is true.  All house objects are ecliptic longitudes.
func (h *Houses) Rollover() bool { return true }

func (h *Houses) Offset() float64 { return h.offset }

// SetOffset sets the target longitude, normalized to [0, 360).
func (h *Houses) SetOffset(v float64) { h.offset = h.checkOffset(v) }

func (h *Houses) checkOffset(v float64) float64 {
	if h.Rollover() {
		return unit.PMod(v, 360)
	}
	return v
}

func (h *Houses) Object() house.Object { return h.obj }
func (h *Houses) System() house.System { return h.sys }
func (h *Houses) Flags() Flags         { return h.flags }

// Location returns the observer's east longitude and latitude.
func (h *Houses) Location() (lon, lat unit.Angle) { return h.lon, h.lat }

// ObjectIdentifiers returns the object followed.
func (h *Houses) ObjectIdentifiers() []house.Object {
	return []house.Object{h.obj}
}

func (h *Houses) String() string {
	return fmt.Sprintf("[House object: %s (%d); system %s (%s); lon %g; lat %g; offset %f]",
		h.obj, h.obj.Code(), h.sys, h.sys.Name(), h.lon.Deg(), h.lat.Deg(), h.offset)
}
