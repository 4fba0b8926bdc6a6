package cmd

import (
	"fmt"

	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/chord"
	"github.com/spf13/cobra"
)

var renderFlags chartFlags

func init() {
	renderFlags.register(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [chart-file]",
	Short: "Renders a chart",
	Long:  `Renders a chart with chords placed above the lyrics, transposed and optionally as Nashville numbers.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := renderFlags.load(cmd.Context(), args)
		if err != nil {
			return err
		}
		opts := renderFlags.options(song)
		if song.Name != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%v (key %v)\n\n", song.Name, chord.DisplayKey(song.Key, opts.Shift, opts.UseFlats))
		}
		fmt.Fprint(cmd.OutOrStdout(), chart.Render(chart.Parse(song.Lyrics, opts)))
		return nil
	},
}
