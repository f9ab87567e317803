/*
Command speedgen regenerates rows of the speed model compiled into
cusptransit.

The model, internal/speedbin/speeds.yaml, is distributed with cusptransit,
so you do not need to run speedgen at all.  The program is provided for
those interested in how the rows were made and for checking them.

speedgen samples positions with the built in house calculator, so it
writes the rows of the Equal, Vehlow, Porphyry and Meridian systems.  The
angles in those rows are the same for every system away from the poles.
Rows of the other systems were sampled the same way with formulas outside
this repository.

Usage

   speedgen [-s systems] [--step degrees] [output file]

The default is all four systems, a step in ARMC of a quarter degree and the
obliquities used for the compiled in model.  Output goes to the named file,
or to standard output.  At the default step a run takes some seconds.

-------------
Public domain.
*/
package main

import (
	"log"
	"os"
	"strings"

	"github.com/soniakeys/exit"
	"github.com/spf13/cobra"

	"github.com/soniakeys/cusptransit/house"
	"github.com/soniakeys/cusptransit/internal/speedbin"
	"github.com/soniakeys/cusptransit/internal/speedgen"
)

const versionString = "speedgen version 0.1"
const copyrightString = "Public domain."

func main() {
	defer exit.Handler()
	log.SetFlags(0)
	if err := command().Execute(); err != nil {
		exit.Log(err)
	}
}

func command() *cobra.Command {
	var letters string
	opt := speedgen.Default
	cmd := &cobra.Command{
		Use:           "speedgen [output file]",
		Short:         "Sample daily motion of house cusps and angles",
		Version:       versionString + "\n" + copyrightString,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var systems []house.System
			for _, l := range strings.Split(letters, "") {
				sys, err := house.ParseSystem(l)
				if err != nil {
					return err
				}
				systems = append(systems, sys)
			}
			tabs := make(map[house.System]map[speedbin.Band]*speedbin.Row)
			for _, sys := range systems {
				log.Println("sampling", sys.Name())
				tab, err := speedgen.Table(sys, opt)
				if err != nil {
					return err
				}
				tabs[sys] = tab
			}
			if len(args) == 0 {
				return speedgen.Encode(cmd.OutOrStdout(), systems, tabs)
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err = speedgen.Encode(f, systems, tabs); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&letters, "systems", "s", "EVOX", "house system letters")
	cmd.Flags().Float64Var(&opt.Step, "step", opt.Step, "ARMC step, degrees")
	return cmd
}
