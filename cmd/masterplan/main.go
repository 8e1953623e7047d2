package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"masterplan/internal/config"
	"masterplan/internal/geom"
	"masterplan/internal/tui"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "convert" {
		if err := convert(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "convert:", err)
			os.Exit(1)
		}
		return
	}

	fs := config.NewFlagSet("masterplan")
	cfg, err := config.Load(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.Debug() {
		f, err := tea.LogToFile(cfg.DebugLog(), "masterplan")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	opts, err := cfg.CanvasOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	m := tui.NewWithPaths(opts, cfg.Plan(), cfg.Rows())
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// convert turns an SVG or GeoJSON plan into the plots JSON format, written
// to the second argument or to w.
func convert(args []string, w io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: masterplan convert <plan.svg|plan.geojson> [out.json]")
	}
	pl, err := geom.LoadPlan(args[0])
	if err != nil {
		return err
	}
	if len(args) == 2 {
		f, cerr := os.Create(args[1])
		if cerr != nil {
			return cerr
		}
		err = writeAndClose(f, pl)
	} else {
		err = writePlan(w, pl)
	}
	if err != nil {
		return err
	}
	log.Printf("converted %s: %d plots", args[0], len(pl.Shapes))
	return nil
}

func writePlan(w io.Writer, pl geom.Plan) error {
	if err := geom.EncodePlan(w, pl); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// writeAndClose returns the first of the write and close errors.
func writeAndClose(wc io.WriteCloser, pl geom.Plan) error {
	if err := writePlan(wc, pl); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close plan: %w", err)
	}
	return nil
}
