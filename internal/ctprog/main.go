// Public domain.

// Package ctprog implements the cusptransit command.
package ctprog

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/meeus/v3/julian"
	sexagesimal "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
	"github.com/spf13/cobra"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/internal/mhouses"
	"github.com/soniakeys/cusptransit/internal/site"
	"github.com/soniakeys/cusptransit/internal/speedbin"
	"github.com/soniakeys/cusptransit/transit"
)

const versionString = "cusptransit version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()
	log.SetFlags(0)
	if err := NewCommand().Execute(); err != nil {
		exit.Log(err)
	}
}

// options shared by the subcommands.  flags override the config file.
type options struct {
	config   string
	cfg      *Config
	system   string
	object   string
	lat, lon float64
	obs      string
	obscodes string
}

// NewCommand builds the command tree.
func NewCommand() *cobra.Command {
	opt := &options{}
	root := &cobra.Command{
		Use:           "cusptransit",
		Short:         "Speed bounds and positions of house cusps for transit searches",
		Version:       versionString + "\n" + copyrightString,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ReadConfig(opt.config, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			opt.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opt.config, "config", "c", DefaultConfig, "config file")
	root.AddCommand(boundsCmd(opt), tableCmd(opt), calcCmd(opt), siteCmd(opt))
	return root
}

func positionFlags(cmd *cobra.Command, opt *options) {
	f := cmd.Flags()
	f.StringVarP(&opt.system, "system", "s", "", "house system, letter code or name")
	f.StringVarP(&opt.object, "object", "o", "asc", "angle or cusp: asc, mc, armc, vertex, equasc, coasc1, coasc2, polasc, h1..h12")
	f.Float64Var(&opt.lat, "lat", 0, "latitude, degrees, north positive")
	f.Float64Var(&opt.lon, "lon", 0, "longitude, degrees, east positive")
	f.StringVar(&opt.obs, "obs", "", "take the location from this MPC observatory code")
	f.StringVar(&opt.obscodes, "obscodes", "", "obscode.dat file (default from config)")
}

// houses builds the transit calculator described by the flags and config.
func (opt *options) houses(cmd *cobra.Command, offset float64) (*transit.Houses, error) {
	f := cmd.Flags()
	sysName := opt.system
	if !f.Changed("system") {
		sysName = opt.cfg.System
	}
	sys, err := house.ParseSystem(sysName)
	if err != nil {
		return nil, err
	}
	obj, err := house.ParseObject(opt.object)
	if err != nil {
		return nil, err
	}
	lon, lat := opt.cfg.Longitude, opt.cfg.Latitude
	if f.Changed("lon") {
		lon = opt.lon
	}
	if f.Changed("lat") {
		lat = opt.lat
	}
	if opt.obs != "" {
		s, err := opt.site(opt.obs)
		if err != nil {
			return nil, err
		}
		lon, lat = s.Lon.Deg(), s.Lat.Deg()
	}
	return transit.NewHouses(mhouses.Calculator{}, obj, sys,
		unit.AngleFromDeg(lon), unit.AngleFromDeg(lat), 0, offset)
}

func boundsCmd(opt *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Show worst case daily motion of a cusp or angle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := opt.houses(cmd, 0)
			if err != nil {
				return err
			}
			lon, lat := h.Location()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s houses (%s), %s, lon %g lat %g, band %d\n",
				h.System().Name(), h.System(), h.Object(), lon.Deg(), lat.Deg(),
				speedbin.BandOf(lat))
			fmt.Fprintf(w, "min speed %12.6f °/day\n", h.MinSpeed())
			fmt.Fprintf(w, "max speed %12.6f °/day\n", h.MaxSpeed())
			dp := h.DegreePrecision(0)
			fmt.Fprintf(w, "%.2d in %.3e days\n",
				sexagesimal.FmtAngle(unit.AngleFromDeg(dp)), h.TimePrecision(dp))
			return nil
		},
	}
	positionFlags(cmd, opt)
	return cmd
}

func tableCmd(opt *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the speed model of a house system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sysName := opt.system
			if !cmd.Flags().Changed("system") {
				sysName = opt.cfg.System
			}
			sys, err := house.ParseSystem(sysName)
			if err != nil {
				return err
			}
			tab, ok := speedbin.Table(sys)
			if !ok {
				return fmt.Errorf("no speed model for %s", sys.Name())
			}
			return writeTable(cmd.OutOrStdout(), sys, tab)
		},
	}
	cmd.Flags().StringVarP(&opt.system, "system", "s", "", "house system, letter code or name")
	return cmd
}

func writeTable(w io.Writer, sys house.System, tab map[speedbin.Band]*speedbin.Row) error {
	if _, err := fmt.Fprintf(w, "%s houses (%s), degrees per day\n", sys.Name(), sys); err != nil {
		return err
	}
	bands := make([]int, 0, len(tab))
	for b := range tab {
		bands = append(bands, int(b))
	}
	sort.Ints(bands)
	for _, b := range bands {
		fmt.Fprintf(w, "band %d\n", b)
		r := tab[speedbin.Band(b)]
		for _, o := range house.Objects {
			writeRow(w, o, r[speedbin.Slot(o)])
		}
	}
	return nil
}

func writeRow(w io.Writer, o house.Object, b speedbin.Bounds) {
	switch {
	case b.Undefined():
		fmt.Fprintf(w, "  %-7s undefined\n", o)
	default:
		fmt.Fprintf(w, "  %-7s %14.6f %14.6f\n", o, b.Min, b.Max)
	}
}

func calcCmd(opt *options) *cobra.Command {
	var jd float64
	var date string
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the longitude of a cusp or angle",
		Long: `Compute the longitude of a cusp or angle with the built in calculator.
It computes the angles and the Equal, Vehlow, Porphyry and Meridian systems.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case cmd.Flags().Changed("jd") && date != "":
				return errors.New("give only one of --jd and --date")
			case date != "":
				t, err := time.Parse(time.RFC3339, date)
				if err != nil {
					return err
				}
				jd = julian.TimeToJD(t.UTC())
			case !cmd.Flags().Changed("jd"):
				jd = julian.TimeToJD(time.Now().UTC())
			}
			h, err := opt.houses(cmd, 0)
			if err != nil {
				return err
			}
			v, err := h.Calc(jd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s JD %.6f: %.6f° %.1d\n",
				h.System(), h.Object(), jd, v,
				sexagesimal.FmtAngle(unit.AngleFromDeg(v)))
			return nil
		},
	}
	positionFlags(cmd, opt)
	cmd.Flags().Float64Var(&jd, "jd", 0, "Julian day, UT")
	cmd.Flags().StringVar(&date, "date", "", "date and time, RFC 3339 (default now)")
	return cmd
}

func siteCmd(opt *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site CODE",
		Short: "Show the location of an MPC observatory code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opt.site(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s lon %.5f lat %.5f %s\n",
				args[0], s.Lon.Deg(), s.Lat.Deg(), s.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&opt.obscodes, "obscodes", "", "obscode.dat file (default from config)")
	return cmd
}

// fetch downloads the obscode file.  Tests replace it.
var fetch = site.Fetch

// site looks up an observatory code, downloading the obscode file if it
// cannot be read.
func (opt *options) site(code string) (*site.Site, error) {
	fn := opt.obscodes
	if fn == "" {
		fn = opt.cfg.Obscodes
	}
	m, readErr := site.ReadFile(fn)
	if readErr != nil {
		// that didn't work.  try getting a fresh copy.
		if err := fetch(fn); err != nil {
			log.Println(readErr) // show error from read attempt,
			return nil, err      // and error from download attempt
		}
		// retry with downloaded file.
		if m, readErr = site.ReadFile(fn); readErr != nil {
			return nil, readErr
		}
	}
	s, ok := m[code]
	switch {
	case !ok:
		return nil, errors.New("observatory code not recognized: " + strconv.Quote(code))
	case s == nil:
		return nil, errors.New("observatory " + code + " has no location on the Earth")
	}
	return s, nil
}
