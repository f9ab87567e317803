/*
Command cusptransit shows how fast house cusps and angles can move, the
figures a transit search needs to bracket the moment a cusp reaches a
given longitude.

Contents

  Program overview
  Command line usage
  Configuration file
  Speed model

Program overview

A transit search finds the time a quantity reaches a target value.  It
steps through time using the least and greatest speed of the quantity,
then samples it until the crossing is found.  For house cusps these
speeds depend strongly on the house system and on the latitude of the
observer, and near the poles cusps may move arbitrarily fast or not be
defined at all.

Package transit (github.com/soniakeys/cusptransit/transit) implements the
quantity side of such a search for the eight house angles (ascendant, MC,
ARMC, vertex, equatorial ascendant, the two co-ascendants and the polar
ascendant) and the twelve cusps of eleven house systems.  This command
exposes the speed model and a built in calculator.

Command line usage

  cusptransit bounds [-s system] [-o object] [--lat deg] [--lon deg] [--obs code]
  cusptransit table [-s system]
  cusptransit calc [-s system] [-o object] [--lat deg] [--lon deg] [--jd jd | --date time]
  cusptransit site code
  cusptransit --version

Systems are given by letter or name:

  P  Placidus         K  Koch             O  Porphyry
  R  Regiomontanus    C  Campanus         E  Equal
  V  Vehlow           X  Meridian         H  Horizontal
  T  Polich-Page      B  Alcabitius

Objects are asc, mc, armc, vertex, equasc, coasc1, coasc2, polasc and the
cusps h1 through h12.

Sample run:

  $ cusptransit bounds -s P -o asc --lat 11
  Placidus houses (P), asc, lon 0 lat 11, band 20
  min speed   319.225068 °/day
  max speed   467.280896 °/day
  0″.25 in 1.486e-07 days

The last line is the precision a transit search finds the cusp to, and
the time the cusp needs at most to move that far.

Calc computes the angles and the cusps of the Equal, Vehlow, Porphyry and
Meridian systems from apparent sidereal time and true obliquity.  Other
systems need an external house calculator.

With --obs, the location is taken from the MPC list of observatory codes.
If the file named by --obscodes or the config file cannot be read, a fresh
copy is downloaded from the Minor Planet Center.

Configuration file

The file cusptransit.yaml in the current directory, or a file named with -c,
gives defaults for options not on the command line:

  system: K
  latitude: 52.22
  longitude: 11.0
  obscodes: obscode.dat

A file named with -c must exist.

Speed model

Speeds are tabulated for latitude bands ending at 10, 20, 30, 40, 50, 60,
66, 70, 80, 88 and 90 degrees.  Placidus and Koch cusps cannot be computed
inside the polar circle, and neither can any of their angles, so those
systems fail for latitudes above 66 degrees.  At the pole, in band 90, the
ascendant and polar ascendant have bounds of zero and also fail.

-------------
Public domain.
*/
package main
