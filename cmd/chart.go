package cmd

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/catalog"
	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/chord"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/spf13/cobra"
)

// chartFlags select a chart and how to transform it.
type chartFlags struct {
	song      string
	key       string
	transpose int
	capo      int
	flats     bool
	nashville bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.song, "song", "", "song id to load from the catalog instead of a file")
	cmd.Flags().StringVar(&f.key, "key", "", "song key, overrides the catalog key")
	cmd.Flags().IntVarP(&f.transpose, "transpose", "t", 0, "semitones to transpose by")
	cmd.Flags().IntVarP(&f.capo, "capo", "c", 0, "capo fret")
	cmd.Flags().BoolVar(&f.flats, "flats", false, "spell accidentals as flats")
	cmd.Flags().BoolVarP(&f.nashville, "nashville", "n", false, "show Nashville numbers")
}

// load reads the chart from the catalog, a file argument or stdin.
func (f *chartFlags) load(ctx context.Context, args []string) (model.Song, error) {
	var song model.Song
	switch {
	case f.song != "":
		cat, err := LoadCatalog()
		if err != nil {
			return song, err
		}
		song, err = catalog.FindSong(ctx, cat, f.song)
		if err != nil {
			return song, err
		}
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return song, errors.Wrap(err, "could not read chart")
		}
		song = model.Song{Id: args[0], Name: args[0], Lyrics: string(data)}
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return song, errors.Wrap(err, "could not read chart from stdin")
		}
		song = model.Song{Id: "stdin", Lyrics: string(data)}
	}
	if f.key != "" {
		song.Key = f.key
	}
	return song, nil
}

func (f *chartFlags) options(song model.Song) chart.Options {
	shift := f.transpose - max(f.capo, 0)
	key, _ := chord.EffectiveKey(song.Key, shift, f.flats)
	return chart.Options{
		Shift:     shift,
		UseFlats:  f.flats,
		Nashville: f.nashville,
		Key:       key,
	}
}
