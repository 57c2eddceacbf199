package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geoenvelope/internal/tui"
)

func newViewCmd() *SubCommand {
	sc := &SubCommand{EnvPrefix: envPrefix + "_VIEW"}
	sc.Cmd = &cobra.Command{
		Use:   "view [FILE]",
		Short: "Open the terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m tui.Model
			if len(args) == 1 {
				m = tui.NewWithPath(args[0])
			} else {
				m = tui.New()
			}
			opts := []tea.ProgramOption{tea.WithAltScreen()}
			if sc.Conf.GetBool("mouse") {
				opts = append(opts, tea.WithMouseAllMotion())
			}
			logger.Debug("starting viewer", zap.Strings("args", args))
			_, err := tea.NewProgram(m, opts...).Run()
			return err
		},
	}
	sc.Cmd.Flags().Bool("mouse", true, "Track the mouse for hover coordinates.")
	return sc
}
