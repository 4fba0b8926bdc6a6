package cmd

import (
	"fmt"
	"strings"

	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/spf13/cobra"
)

var inspectFlags chartFlags

func init() {
	inspectFlags.register(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [chart-file]",
	Short: "Inspects how a chart is classified",
	Long:  `Prints every classified line of a chart with its kind and section.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		song, err := inspectFlags.load(cmd.Context(), args)
		if err != nil {
			return err
		}
		inspect(cmd, chart.Parse(song.Lyrics, inspectFlags.options(song)))
		return nil
	},
}

func inspect(cmd *cobra.Command, lines []chart.Line) {
	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintf(out, "%3d %-8v %-11v %v\n", l.SourceLine+1, l.Kind, l.SectionType, describe(l))
	}
}

func describe(l chart.Line) string {
	switch l.Kind {
	case chart.Section:
		return fmt.Sprintf("%q %v", l.Label, l.Color)
	case chart.Paired:
		var chords []string
		for _, c := range l.Chords {
			chords = append(chords, fmt.Sprintf("%v@%v", c.Chord, c.Offset))
		}
		return fmt.Sprintf("%v | %q", strings.Join(chords, " "), l.Lyric)
	case chart.Inline:
		var parts []string
		for _, s := range l.Segments {
			if s.IsChord {
				parts = append(parts, "["+s.Text+"]")
			} else {
				parts = append(parts, fmt.Sprintf("%q", s.Text))
			}
		}
		return strings.Join(parts, " ")
	case chart.Plain:
		return fmt.Sprintf("%q", l.Text)
	}
	return ""
}
