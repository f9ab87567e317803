// Public domain.

// Package speedgen samples the daily motion of house cusps and angles to
// build rows of the speedbin model.
//
// Positions come from mhouses, so only the angles and the systems mhouses
// computes can be sampled.  Speeds are found by central differences in
// ARMC over a full sidereal day, for latitudes spread across each band and
// for each obliquity given.
package speedgen

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/internal/mhouses"
	"github.com/soniakeys/cusptransit/internal/speedbin"
	"github.com/soniakeys/unit"
)

// SiderealRate is the daily motion of ARMC in degrees.
const SiderealRate = 360.98564736629

// h is half the ARMC interval of a central difference, degrees.
const h = 1e-4

// Options control a sampling run.
type Options struct {
	Step      float64   // ARMC step, degrees
	Obliquity []float64 // degrees
}

// Default reproduces the sampling of the compiled in model.
var Default = Options{
	Step:      .25,
	Obliquity: []float64{23.435, 23.4533},
}

// Latitudes returns the latitudes sampled for band b: one degree apart for
// bands at least six degrees wide, half a degree apart otherwise.  Band 88
// includes the latitudes of band 85.
func Latitudes(b speedbin.Band) []float64 {
	lo := 0.
	for _, x := range speedbin.Bands {
		if x == b {
			break
		}
		lo = float64(x)
	}
	l := latitudes(lo, float64(b))
	if b == 88 {
		l = append(latitudes(80, 85), l...)
	}
	return l
}

func latitudes(lo, hi float64) []float64 {
	step := 1.
	if hi-lo < 6 {
		step = .5
	}
	n := int(math.Round((hi - lo) / step))
	l := make([]float64, n+1)
	for i := range l {
		l[i] = lo + step*float64(i)
	}
	// the vertex is undefined on the equator, and everything at the pole
	if l[0] == 0 {
		l[0] = .5
	}
	if l[n] == 90 {
		l[n] = 89.99
	}
	return l
}

// Sample measures least and greatest daily motion of all objects of sys
// over the latitudes of band b.
//
// Differences of a hundredth of a degree or more over the ARMC interval
// are taken as 180° flips of a position rather than motion and skipped.
func Sample(sys house.System, b speedbin.Band, opt Options) (*speedbin.Row, error) {
	if opt.Step <= 0 || len(opt.Obliquity) == 0 {
		return nil, fmt.Errorf("speedgen: options %+v", opt)
	}
	r := new(speedbin.Row)
	for i := range r {
		r[i] = speedbin.Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	}
	n := int(math.Round(360 / opt.Step))
	var p0, p1 house.Positions
	for _, e := range opt.Obliquity {
		ε := unit.AngleFromDeg(e)
		for _, fi := range Latitudes(b) {
			for k := 0; k < n; k++ {
				th := float64(k) * opt.Step
				if err := positions(sys, th-h, fi, ε, &p0); err != nil {
					return nil, err
				}
				if err := positions(sys, th+h, fi, ε, &p1); err != nil {
					return nil, err
				}
				for _, o := range house.Objects {
					d := unit.PMod(p1.Value(o)-p0.Value(o)+180, 360) - 180
					if !(math.Abs(d) < 1e-2) {
						continue
					}
					v := d / (2 * h) * SiderealRate
					bd := &r[speedbin.Slot(o)]
					bd.Min = math.Min(bd.Min, v)
					bd.Max = math.Max(bd.Max, v)
				}
			}
		}
	}
	r[speedbin.Slot(house.ARMC)] = speedbin.Bounds{Min: SiderealRate, Max: SiderealRate}
	if b == 90 {
		// tabulated as 0/0 at the pole
		r[speedbin.Slot(house.Asc)] = speedbin.Bounds{}
		r[speedbin.Slot(house.Polasc)] = speedbin.Bounds{}
	}
	return r, nil
}

func positions(sys house.System, th, fi float64, ε unit.Angle, p *house.Positions) error {
	mhouses.Angles(th, fi, ε, p)
	return mhouses.Cusps(sys, th, ε, p)
}

// Table samples all bands of sys.
func Table(sys house.System, opt Options) (map[speedbin.Band]*speedbin.Row, error) {
	t := make(map[speedbin.Band]*speedbin.Row, len(speedbin.Bands))
	for _, b := range speedbin.Bands {
		r, err := Sample(sys, b, opt)
		if err != nil {
			return nil, err
		}
		t[b] = r
	}
	return t, nil
}

// Encode writes tables in the format of the compiled in model, systems in
// the order given.
func Encode(w io.Writer, systems []house.System, tabs map[house.System]map[speedbin.Band]*speedbin.Row) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, sys := range systems {
		bands := &yaml.Node{Kind: yaml.MappingNode}
		for _, b := range speedbin.Bands {
			r := tabs[sys][b]
			if r == nil {
				return fmt.Errorf("speedgen: %s band %d missing", sys, b)
			}
			objs := &yaml.Node{Kind: yaml.MappingNode}
			for _, o := range house.Objects {
				bd := r[speedbin.Slot(o)]
				seq := &yaml.Node{
					Kind:    yaml.SequenceNode,
					Style:   yaml.FlowStyle,
					Content: []*yaml.Node{number(bd.Min), number(bd.Max)},
				}
				if bd.Degenerate() {
					seq.LineComment = "# ?"
				}
				objs.Content = append(objs.Content, scalar("!!str", o.String()), seq)
			}
			bands.Content = append(bands.Content, scalar("!!int", strconv.Itoa(int(b))), objs)
		}
		key := scalar("!!str", sys.String())
		key.HeadComment = "# " + sys.Name()
		doc.Content = append(doc.Content, key, bands)
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(doc); err != nil {
		return err
	}
	return e.Close()
}

func scalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func number(v float64) *yaml.Node {
	switch {
	case math.IsInf(v, 1):
		return scalar("!!float", ".inf")
	case math.IsInf(v, -1):
		return scalar("!!float", "-.inf")
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if s == "-0.000000" {
		s = "0.000000"
	}
	return scalar("!!float", s)
}
