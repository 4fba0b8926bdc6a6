package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/rlackeyseattle/vynl-pro/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a catalog report",
	Long:  `Creates a report of every chart in the catalog: line kinds, sections and chords.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := LoadCatalog()
		if err != nil {
			return err
		}
		songs, err := cat.Songs(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), songs)
		return nil
	},
}

func report(out io.Writer, songs []model.Song) {
	var total chart.Stats
	sizes := make([]int, 0, len(songs))
	for _, song := range songs {
		s := chart.Summarize(chart.Parse(song.Lyrics, chart.Options{}))
		sizes = append(sizes, len(song.Lyrics))
		fmt.Fprintf(out, "%v (%v): %v lines, %v sections, %v chords (%v distinct), %v paired, %v inline\n",
			song.Name, song.Id, s.Lines, s.Sections, s.Chords, s.Distinct, s.Paired, s.Inline)

		total.Lines += s.Lines
		total.Sections += s.Sections
		total.Chords += s.Chords
	}
	fmt.Fprintf(out, "\n%v songs, %v of chart text\n", humanize.Comma(int64(len(songs))), humanize.Bytes(util.Sum(sizes)))
	fmt.Fprintf(out, "%v lines, %v sections, %v chords\n",
		humanize.Comma(int64(total.Lines)), humanize.Comma(int64(total.Sections)), humanize.Comma(int64(total.Chords)))
}
