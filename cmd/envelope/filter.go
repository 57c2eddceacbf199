package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoenvelope/internal/envelope"
	"geoenvelope/internal/geom"
	"geoenvelope/internal/index"
)

func newFilterCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix + "_FILTER"}
	sc.Cmd = &cobra.Command{
		Use:   "filter FILE",
		Short: "List the features whose envelopes meet a box or cover a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.OutOrStdout(), sc, args[0])
		},
	}
	flags := sc.Cmd.Flags()
	flags.String("bbox", "", "Query box as minx,miny,maxx,maxy.")
	flags.String("point", "", "Query point as x,y.")
	return sc
}

func runFilter(w io.Writer, sc *SubCommand, file string) error {
	bbox, point := sc.Conf.GetString("bbox"), sc.Conf.GetString("point")
	if (bbox == "") == (point == "") {
		return errors.New("exactly one of --bbox and --point is required")
	}
	l, err := geom.Load(file)
	if err != nil {
		return err
	}
	ix := index.New()
	for i, f := range l.Features {
		if err := ix.Insert(i, f.Envelope); err != nil {
			return errors.Wrapf(err, "feature %d", i)
		}
	}
	logger.Debug("indexed", zap.String("file", file), zap.Int("features", len(l.Features)),
		zap.Int("indexed", ix.Len()))

	var hits []int
	if bbox != "" {
		vals, err := parseFloats(bbox, 4)
		if err != nil {
			return errors.Wrap(err, "--bbox")
		}
		q, err := envelope.New(vals[0], vals[1], vals[2], vals[3])
		if err != nil {
			return errors.Wrap(err, "--bbox")
		}
		if hits, err = ix.Search(q); err != nil {
			return errors.Wrap(err, "--bbox")
		}
	} else {
		vals, err := parseFloats(point, 2)
		if err != nil {
			return errors.Wrap(err, "--point")
		}
		if hits, err = ix.Containing(envelope.Point{vals[0], vals[1]}); err != nil {
			return errors.Wrap(err, "--point")
		}
	}

	for _, i := range hits {
		f := l.Features[i]
		props, err := json.Marshal(f.Properties)
		if err != nil {
			return err
		}
		id := strconv.Itoa(i)
		if f.ID != nil {
			id = fmt.Sprint(f.ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, f.Envelope, props)
	}
	return nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.Wrapf(envelope.ErrInvalidArgument, "want %d comma separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(envelope.ErrInvalidArgument, "%q is not a number", p)
		}
		out[i] = v
	}
	return out, nil
}
