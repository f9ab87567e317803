// Public domain.

package speedgen_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/internal/mhouses"
	"github.com/soniakeys/cusptransit/internal/speedbin"
	"github.com/soniakeys/cusptransit/internal/speedgen"
)

// coarse samples a subset of the ARMC values and obliquities of Default.
var coarse = speedgen.Options{Step: 2, Obliquity: []float64{23.4533}}

func TestLatitudes(t *testing.T) {
	for _, c := range []struct {
		b         speedbin.Band
		n         int
		first, lt float64
	}{
		{10, 11, .5, 10},
		{20, 11, 10, 20},
		{66, 7, 60, 66},
		{70, 9, 66, 70},
		{85, 11, 80, 85},
		{88, 18, 80, 88},
		{90, 5, 88, 89.99},
	} {
		l := speedgen.Latitudes(c.b)
		if len(l) != c.n || l[0] != c.first || l[len(l)-1] != c.lt {
			t.Errorf("band %d: %v", c.b, l)
		}
	}
}

// A fresh coarse sample stays within the compiled in model.
func TestModelContainsSample(t *testing.T) {
	for _, sys := range mhouses.Systems {
		tab, ok := speedbin.Table(sys)
		if !ok {
			t.Fatal("no model for", sys)
		}
		for _, b := range speedbin.Bands {
			r, err := speedgen.Sample(sys, b, coarse)
			if err != nil {
				t.Fatal(err)
			}
			for _, o := range house.Objects {
				want := tab[b][speedbin.Slot(o)]
				got := r[speedbin.Slot(o)]
				if want.Degenerate() {
					if !got.Degenerate() {
						t.Errorf("%s band %d %s: %+v, want 0/0", sys, b, o, got)
					}
					continue
				}
				tol := 1e-3 + 1e-6*math.Max(math.Abs(want.Min), math.Abs(want.Max))
				if got.Undefined() || got.Min < want.Min-tol || got.Max > want.Max+tol {
					t.Errorf("%s band %d %s: sampled %+v outside %+v", sys, b, o, got, want)
				}
			}
			// extremes of the MC fall on the coarse grid
			want, got := tab[b][speedbin.Slot(house.MC)], r[speedbin.Slot(house.MC)]
			if math.Abs(got.Min-want.Min) > .01 || math.Abs(got.Max-want.Max) > .01 {
				t.Errorf("%s band %d mc: sampled %+v, model %+v", sys, b, got, want)
			}
		}
	}
}

func TestSampleErrors(t *testing.T) {
	if _, err := speedgen.Sample(house.Placidus, 20, coarse); !errors.Is(err, mhouses.ErrSystem) {
		t.Fatal(err)
	}
	if _, err := speedgen.Sample(house.Equal, 20, speedgen.Options{Step: 1}); err == nil {
		t.Fatal("no obliquity accepted")
	}
}

// Encoded tables load as a model.
func TestEncode(t *testing.T) {
	tabs := map[house.System]map[speedbin.Band]*speedbin.Row{}
	for _, sys := range []house.System{house.Vehlow, house.Equal} {
		tab, err := speedgen.Table(sys, speedgen.Options{Step: 15, Obliquity: []float64{23.44}})
		if err != nil {
			t.Fatal(err)
		}
		tabs[sys] = tab
	}
	var buf bytes.Buffer
	if err := speedgen.Encode(&buf, []house.System{house.Vehlow, house.Equal}, tabs); err != nil {
		t.Fatal(err)
	}
	y := buf.String()
	if !strings.Contains(y, "# Vehlow") || !strings.Contains(y, "# ?") {
		t.Fatal(y)
	}
	m, err := speedbin.Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	for sys, tab := range tabs {
		for _, b := range speedbin.Bands {
			for i, want := range tab[b] {
				got := m[sys][b][i]
				if math.Abs(got.Min-want.Min) > 1e-6 || math.Abs(got.Max-want.Max) > 1e-6 {
					t.Fatalf("%s band %d slot %d: %+v, want %+v", sys, b, i, got, want)
				}
			}
		}
	}
	if err := speedgen.Encode(&buf, []house.System{house.Porphyry}, tabs); err == nil {
		t.Fatal("missing system encoded")
	}
}
