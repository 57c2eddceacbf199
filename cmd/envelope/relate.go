package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoenvelope/internal/envelope"
	"geoenvelope/internal/geom"
)

func newRelateCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix + "_RELATE"}
	sc.Cmd = &cobra.Command{
		Use:   "relate A B",
		Short: "Report contains, within and intersects between two envelopes",
		Long: `
relate compares the envelopes of two files, or of two WKT geometries when
--wkt is set. Touching boundaries count as intersecting and contained.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelate(cmd.OutOrStdout(), sc, args[0], args[1])
		},
	}
	sc.Cmd.Flags().Bool("wkt", false, "Treat A and B as WKT text instead of file paths.")
	return sc
}

func runRelate(w io.Writer, sc *SubCommand, a, b string) error {
	load := geom.Load
	if sc.Conf.GetBool("wkt") {
		load = geom.ParseWKT
	}
	la, err := load(a)
	if err != nil {
		return err
	}
	lb, err := load(b)
	if err != nil {
		return err
	}
	ea, eb := la.Envelope, lb.Envelope
	logger.Debug("relate", zap.Stringer("a", ea), zap.Stringer("b", eb))

	contains, err := envelope.Contains(ea, eb)
	if err != nil {
		return err
	}
	within, err := envelope.Within(ea, eb)
	if err != nil {
		return err
	}
	intersects, err := envelope.Intersects(ea, eb)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "A\t%s\nB\t%s\n", ea, eb)
	fmt.Fprintf(w, "contains\t%v\nwithin\t%v\nintersects\t%v\n", contains, within, intersects)
	return nil
}
