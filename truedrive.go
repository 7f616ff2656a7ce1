// This file is part of TrueDrive.
//
// TrueDrive is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TrueDrive is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TrueDrive.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/viceteam/truedrive/drivesound"
	"github.com/viceteam/truedrive/hardware"
	"github.com/viceteam/truedrive/hardware/disk"
	"github.com/viceteam/truedrive/hardware/drive"
	"github.com/viceteam/truedrive/logger"
	"github.com/viceteam/truedrive/statsview"
	"github.com/viceteam/truedrive/version"
)

// blankDisk is a Medium that serves an unformatted disk. It stands in for
// the file-format parsers, which are not part of this project.
type blankDisk struct{}

func (b *blankDisk) ReadImage(img *disk.Image) error {
	for i := 0; i < 70; i += 2 {
		img.GCR.Tracks[i].Data = make([]byte, 7928)
		img.GCR.Tracks[i].Size = 7928
	}
	if img.Format.Flux() {
		for i := 0; i < 70; i += 2 {
			img.P64.PulseStreams[i] = make([]uint32, 0)
		}
	}
	return nil
}

func (b *blankDisk) WriteBack(img *disk.Image) error {
	return nil
}

func (b *blankDisk) WriteP64Image(img *disk.Image) error {
	return nil
}

func parseFormat(s string) disk.Format {
	switch strings.ToUpper(s) {
	case "D64":
		return disk.FormatD64
	case "D67":
		return disk.FormatD67
	case "D71":
		return disk.FormatD71
	case "G64":
		return disk.FormatG64
	case "G71":
		return disk.FormatG71
	case "P64":
		return disk.FormatP64
	case "X64":
		return disk.FormatX64
	}
	return disk.FormatNone
}

func run(output io.Writer, args []string) error {
	flgs := flag.NewFlagSet("run", flag.ContinueOnError)
	format := flgs.String("format", "D64", "image format to attach (D64, D67, D71, G64, G71, P64)")
	model := flgs.Int("model", int(drive.Type1541II), "drive model at unit 8")
	cycles := flgs.Int("cycles", 1000000, "number of cycles to run")
	snap := flgs.String("snapshot", "", "write a snapshot file when the run ends")
	sound := flgs.String("drivesound", "", "record drive noise to a WAV file")
	stats := flgs.Bool("statsview", false, "run stats server")
	echo := flgs.Bool("log", false, "echo log entries to stderr")

	if err := flgs.Parse(args); err != nil {
		return err
	}

	if *echo {
		logger.SetEcho(os.Stderr)
	}
	if *stats {
		if statsview.Available() {
			statsview.Launch(output)
		} else {
			fmt.Fprintln(output, "statsview not available in this build")
		}
	}

	m := hardware.NewMachine("VIC20")
	if err := m.Drives.SetUnitType(8, drive.Type(*model)); err != nil {
		return err
	}

	var rec *drivesound.Recorder
	if *sound != "" {
		rec = drivesound.New(*sound)
		m.Drives.SetNotify(rec)
	}

	img := &disk.Image{
		Format: parseFormat(*format),
		Name:   "blank." + strings.ToLower(*format),
		Medium: &blankDisk{},
	}

	if err := m.Drives.Attach(img, 8, 0); err != nil {
		return err
	}

	// sweep the head across the disk so that a drive noise recording has
	// something to record
	for ht := 2; ht <= 40; ht += 2 {
		if err := m.Drives.Seek(8, 0, ht, 0); err != nil {
			return err
		}
	}

	m.Step(*cycles)
	fmt.Fprintf(output, "ran %d cycles; raster at line %d cycle %d\n", *cycles, m.VIC.RasterLine, m.VIC.RasterCycle)

	if *snap != "" {
		f, err := os.Create(*snap)
		if err != nil {
			return err
		}
		if err := m.SnapshotWrite(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(output, "snapshot written to %s\n", *snap)
	}

	if err := m.Drives.Detach(img, 8, 0); err != nil {
		return err
	}

	if rec != nil {
		if err := rec.End(); err != nil {
			return err
		}
	}

	return nil
}

func restore(output io.Writer, args []string) error {
	flgs := flag.NewFlagSet("restore", flag.ContinueOnError)
	if err := flgs.Parse(args); err != nil {
		return err
	}
	if flgs.NArg() != 1 {
		return fmt.Errorf("restore: one snapshot file required")
	}

	f, err := os.Open(flgs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	m := hardware.NewMachine("VIC20")
	if err := m.SnapshotRead(f); err != nil {
		return err
	}

	fmt.Fprintf(output, "restored; clock %d, raster at line %d cycle %d\n", m.Clk, m.VIC.RasterLine, m.VIC.RasterCycle)
	return nil
}

func dump(output io.Writer, args []string) error {
	flgs := flag.NewFlagSet("dump", flag.ContinueOnError)
	out := flgs.String("o", "truedrive.dot", "graphviz output file")
	if err := flgs.Parse(args); err != nil {
		return err
	}

	m := hardware.NewMachine("VIC20")
	if err := m.Drives.SetUnitType(8, drive.Type1541II); err != nil {
		return err
	}

	img := &disk.Image{
		Format: disk.FormatD64,
		Name:   "blank.d64",
		Medium: &blankDisk{},
	}
	if err := m.Drives.Attach(img, 8, 0); err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, m)
	fmt.Fprintf(output, "machine graph written to %s\n", *out)
	return nil
}

func usage(output io.Writer) {
	fmt.Fprintf(output, "%s (%s)\n", version.ApplicationName, version.Version)
	fmt.Fprintln(output, "available modes: RUN, RESTORE, DUMP")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(10)
	}

	var err error

	switch strings.ToUpper(os.Args[1]) {
	case "RUN":
		err = run(os.Stdout, os.Args[2:])
	case "RESTORE":
		err = restore(os.Stdout, os.Args[2:])
	case "DUMP":
		err = dump(os.Stdout, os.Args[2:])
	case "VERSION":
		usage(os.Stdout)
	default:
		usage(os.Stdout)
		os.Exit(10)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}
}
