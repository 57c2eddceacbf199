package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"

	"geoenvelope/internal/envelope"
	"geoenvelope/internal/geom"
)

type bboxRow struct {
	Name     string            `json:"name"`
	Envelope envelope.Envelope `json:"bbox"`
	Width    *float64          `json:"width,omitempty"`
	Height   *float64          `json:"height,omitempty"`
	Area     *float64          `json:"area,omitempty"`
	WidthGC  *float64          `json:"width_m,omitempty"`
	HeightGC *float64          `json:"height_m,omitempty"`
	AreaGC   *float64          `json:"area_m2,omitempty"`
}

func newBBoxCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix + "_BBOX"}
	sc.Cmd = &cobra.Command{
		Use:   "bbox FILE...",
		Short: "Print the envelope of each file and of all files together",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBBox(cmd.OutOrStdout(), sc, args)
		},
	}
	flags := sc.Cmd.Flags()
	flags.Float64P("radius", "r", 0, "Grow every envelope by this distance on each side.")
	flags.Bool("gc", false, "Add great-circle width, height and area in meters.")
	flags.StringP("format", "f", "text", "Output format: text, json or wkt.")
	return sc
}

func runBBox(w io.Writer, sc *SubCommand, files []string) error {
	radius := sc.Conf.GetFloat64("radius")
	gc := sc.Conf.GetBool("gc")
	format := sc.Conf.GetString("format")
	switch format {
	case "text", "json", "wkt":
	default:
		return errors.Errorf("unknown format %q", format)
	}

	var rows []bboxRow
	total := envelope.Empty()
	for _, f := range files {
		l, err := geom.Load(f)
		if err != nil {
			return err
		}
		e, err := l.Envelope.ExpandBy(radius)
		if err != nil {
			return err
		}
		logger.Debug("loaded", zap.String("file", f), zap.String("counts", l.Counts()),
			zap.Stringer("envelope", e))
		if e.IsEmpty() {
			logger.Warn("file has no coordinates", zap.String("file", f))
		}
		total = total.ExpandEnvelope(e)
		rows = append(rows, newBBoxRow(f, e, gc))
	}
	if len(files) > 1 {
		rows = append(rows, newBBoxRow("total", total, gc))
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "wkt":
		for _, r := range rows {
			s := "POLYGON EMPTY"
			if !r.Envelope.IsEmpty() {
				p, err := r.Envelope.Polygon()
				if err != nil {
					return err
				}
				if s, err = wkt.Marshal(p); err != nil {
					return err
				}
			}
			fmt.Fprintf(w, "%s\t%s\n", r.Name, s)
		}
		return nil
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s", r.Name, r.Envelope)
		if r.Width != nil {
			fmt.Fprintf(w, "\twidth=%g height=%g area=%g", *r.Width, *r.Height, *r.Area)
		}
		if r.WidthGC != nil {
			fmt.Fprintf(w, "\twidth_m=%.1f height_m=%.1f area_m2=%.1f", *r.WidthGC, *r.HeightGC, *r.AreaGC)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func newBBoxRow(name string, e envelope.Envelope, gc bool) bboxRow {
	r := bboxRow{Name: name, Envelope: e}
	if e.IsEmpty() {
		return r
	}
	w, _ := e.Width()
	h, _ := e.Height()
	a, _ := e.Area()
	r.Width, r.Height, r.Area = &w, &h, &a
	if gc {
		wm, _ := e.WidthGC()
		hm, _ := e.HeightGC()
		am, _ := e.AreaGC()
		r.WidthGC, r.HeightGC, r.AreaGC = &wm, &hm, &am
	}
	return r
}
