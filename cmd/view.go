package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hako/durafmt"
	"github.com/rlackeyseattle/vynl-pro/broadcast"
	"github.com/rlackeyseattle/vynl-pro/catalog"
	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/chord"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/model"
	"github.com/spf13/cobra"
)

var viewFlags struct {
	server     string
	session    string
	transpose  int
	capo       int
	nashville  bool
	flats      bool
	lineHeight int
	viewHeight int
}

func init() {
	f := viewCmd.Flags()
	f.StringVar(&viewFlags.server, "server", constants.GetStageServer(), "stage server to poll")
	f.StringVar(&viewFlags.session, "session", constants.DefaultSession, "broadcast session id")
	f.IntVarP(&viewFlags.transpose, "transpose", "t", 0, "local transpose on top of the host's")
	f.IntVarP(&viewFlags.capo, "capo", "c", 0, "local capo on top of the host's")
	f.BoolVarP(&viewFlags.nashville, "nashville", "n", false, "force Nashville numbers on or off")
	f.BoolVar(&viewFlags.flats, "flats", false, "force flat or sharp spelling")
	f.IntVar(&viewFlags.lineHeight, "line-height", 24, "rendered height of a chart row in px")
	f.IntVar(&viewFlags.viewHeight, "view-height", 600, "height of the visible area in px")
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Follows a live broadcast",
	Long:  `Polls a host's broadcast and renders the chart it is on, with optional local overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		local := broadcast.Overrides{Transpose: viewFlags.transpose, Capo: viewFlags.capo}
		if cmd.Flags().Changed("nashville") {
			local.Nashville = &viewFlags.nashville
		}
		if cmd.Flags().Changed("flats") {
			local.UseFlats = &viewFlags.flats
		}
		return view(cmd.Context(), cmd.OutOrStdout(), viewFlags.server, viewFlags.session, local)
	},
}

// songCache fetches the song list again when the host picks a song it
// has not seen.
type songCache struct {
	mu      sync.Mutex
	catalog catalog.Catalog
	songs   map[string]model.Song
}

func (c *songCache) get(ctx context.Context, id string) (model.Song, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.songs[id]; ok {
		return s, true
	}
	songs, err := c.catalog.Songs(ctx)
	if err != nil {
		return model.Song{}, false
	}
	c.songs = make(map[string]model.Song, len(songs))
	for _, s := range songs {
		c.songs[s.Id] = s
	}
	s, ok := c.songs[id]
	return s, ok
}

// liveRenderer owns the output. The chart is redrawn only when the song
// or transform changes; scroll moves print a position line.
type liveRenderer struct {
	mu         sync.Mutex
	out        io.Writer
	lineHeight int
	viewHeight int

	drawn     string // fingerprint of the chart on screen, empty when none
	waiting   string
	rows      int
	row       int
	scrolling bool
}

func newLiveRenderer(out io.Writer, lineHeight int, viewHeight int) *liveRenderer {
	return &liveRenderer{
		out:        out,
		lineHeight: max(lineHeight, 1),
		viewHeight: max(viewHeight, 0),
	}
}

func (r *liveRenderer) printf(format string, a ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, a...)
}

// draw shows song with opts. A nil song prints the waiting line once per
// song id and leaves nothing drawn, so the next state retries.
func (r *liveRenderer) draw(state model.PlaybackState, song *model.Song, opts chart.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if song == nil {
		r.drawn = ""
		if r.waiting != state.SongId {
			r.waiting = state.SongId
			fmt.Fprintln(r.out, "LIVE FROM HOST: waiting for song...")
		}
		return
	}
	r.waiting = ""

	fingerprint := fmt.Sprintf("%v|%+v", song.Id, opts)
	if fingerprint == r.drawn {
		return
	}
	r.drawn = fingerprint

	lines := chart.Parse(song.Lyrics, opts)
	r.rows = 0
	for _, l := range lines {
		r.rows += len(chart.Rows(l))
	}
	r.row = -1

	key := state.SongKey
	if key == "" {
		key = song.Key
	}
	fmt.Fprintf(r.out, "\nLIVE FROM HOST: %v - %v (key %v)\n\n", song.Name, song.Artist, chord.DisplayKey(key, opts.Shift, opts.UseFlats))
	fmt.Fprint(r.out, chart.Render(lines))
}

// contentHeight is the drawn chart's height in px, zero when nothing is drawn.
func (r *liveRenderer) contentHeight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawn == "" {
		return 0
	}
	return r.rows * r.lineHeight
}

// follow reports the top visible row whenever it or the play state moves.
func (r *liveRenderer) follow(offset int, scrolling bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawn == "" {
		return
	}
	row := offset / r.lineHeight
	if row == r.row && scrolling == r.scrolling {
		return
	}
	r.row, r.scrolling = row, scrolling

	mode := "paused"
	if scrolling {
		mode = "scrolling"
	}
	fmt.Fprintf(r.out, "-- at row %d of %d, %v --\n", row+1, r.rows, mode)
}

// follower applies every polled state to the renderer.
type follower struct {
	viewer   *broadcast.Viewer
	songs    *songCache
	renderer *liveRenderer
}

func (f *follower) update(ctx context.Context, state model.PlaybackState) {
	opts, _ := f.viewer.Options()
	song, ok := f.songs.get(ctx, state.SongId)
	if !ok {
		f.renderer.draw(state, nil, opts)
		return
	}
	f.renderer.draw(state, &song, opts)

	if offset, ok := f.viewer.ScrollTarget(f.renderer.contentHeight(), f.renderer.viewHeight); ok {
		f.renderer.follow(offset, state.IsScrolling)
	}
}

func view(ctx context.Context, out io.Writer, server string, session string, local broadcast.Overrides) error {
	viewer := broadcast.NewViewer(broadcast.NewClient(server, session), clock.Real{})
	viewer.SetOverrides(local)
	renderer := newLiveRenderer(out, viewFlags.lineHeight, viewFlags.viewHeight)
	f := &follower{
		viewer:   viewer,
		songs:    &songCache{catalog: catalog.NewRemote(server)},
		renderer: renderer,
	}
	viewer.OnState(func(state model.PlaybackState) {
		f.update(ctx, state)
	})

	renderer.printf("Waiting for host to start broadcasting...\n")
	viewer.Start()
	defer viewer.Stop()

	staleness := clock.Real{}.Every(5*time.Second, func(now time.Time) {
		last := viewer.LastSuccess()
		if !last.IsZero() && now.Sub(last) > 3*constants.PollInterval {
			renderer.printf("(host last heard %v ago)\n", durafmt.Parse(now.Sub(last)).LimitFirstN(2))
		}
	})
	defer staleness.Stop()

	<-ctx.Done()
	return nil
}
