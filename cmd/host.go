package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rlackeyseattle/vynl-pro/broadcast"
	"github.com/rlackeyseattle/vynl-pro/catalog"
	"github.com/rlackeyseattle/vynl-pro/chart"
	"github.com/rlackeyseattle/vynl-pro/clock"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/scroll"
	"github.com/rlackeyseattle/vynl-pro/stage"
	"github.com/spf13/cobra"
)

var hostFlags struct {
	server     string
	session    string
	token      string
	song       string
	setlist    string
	speed      float64
	lineHeight int
	viewHeight int
	autoscroll bool
}

func init() {
	f := hostCmd.Flags()
	f.StringVar(&hostFlags.server, "server", constants.GetStageServer(), "stage server to publish to")
	f.StringVar(&hostFlags.session, "session", "", "existing session id, a new session is created when empty")
	f.StringVar(&hostFlags.token, "token", "", "host token of an existing session")
	f.StringVar(&hostFlags.song, "song", "", "song id to open")
	f.StringVar(&hostFlags.setlist, "setlist", "", "setlist id to open")
	f.Float64Var(&hostFlags.speed, "speed", constants.DefaultScrollSpeed, "scroll speed in px/s")
	f.IntVar(&hostFlags.lineHeight, "line-height", 24, "rendered height of a chart row in px")
	f.IntVar(&hostFlags.viewHeight, "view-height", 600, "height of the visible area in px")
	f.BoolVar(&hostFlags.autoscroll, "autoscroll", false, "start scrolling right away")
	rootCmd.AddCommand(hostCmd)
}

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Broadcasts a song or setlist",
	Long: `Opens a song or setlist and publishes the playback state for viewers.

Commands are read from stdin, one per line:
  n / p       next or previous song in the setlist
  + / -       transpose up or down a semitone
  capo+ capo- raise or lower the capo
  flats       toggle flat spelling
  nash        toggle Nashville numbers
  s           start or stop scrolling
  q           stop broadcasting and quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if hostFlags.song == "" && hostFlags.setlist == "" {
			return errors.New("one of --song or --setlist is required")
		}
		return host(cmd.Context(), os.Stdin, cmd.OutOrStdout())
	},
}

// layout sizes the scroll controller to the chart as it is rendered now.
func layout(s *stage.Session) {
	rows := 0
	for _, l := range s.Chart() {
		rows += len(chart.Rows(l))
	}
	s.Scroll.SetGeometry(rows*hostFlags.lineHeight, hostFlags.viewHeight)
}

// applyCommand runs one stdin command against the session. It reports
// whether the command was understood.
func applyCommand(s *stage.Session, command string) bool {
	state := s.Snapshot()
	switch command {
	case "n":
		s.Next()
	case "p":
		s.Prev()
	case "+":
		s.SetTranspose(state.Transpose + 1)
	case "-":
		s.SetTranspose(state.Transpose - 1)
	case "capo+":
		s.SetCapo(state.Capo + 1)
	case "capo-":
		s.SetCapo(state.Capo - 1)
	case "flats":
		s.SetUseFlats(!state.UseFlats)
	case "nash":
		s.SetNashville(!state.NashvilleMode)
	case "s":
		s.Scroll.Toggle()
	default:
		return false
	}
	return true
}

func status(s *stage.Session) string {
	song, ok := s.Song()
	if !ok {
		return "no song"
	}
	state := s.Snapshot()
	return fmt.Sprintf("%v in %v (transpose %+d, capo %d, scroll %.0f%%)",
		song.Name, s.DisplayedKey(), state.Transpose, state.Capo, state.ScrollPct*100)
}

func host(ctx context.Context, in io.Reader, out io.Writer) error {
	cat := catalog.NewRemote(hostFlags.server)
	client := broadcast.NewClient(hostFlags.server, hostFlags.session)
	client.HostToken = hostFlags.token
	if hostFlags.session == "" {
		info, err := client.CreateSession(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Broadcasting on session %v\n", info.SessionId)
	}

	sc := scroll.New(clock.Real{})
	sc.SetSpeed(hostFlags.speed)
	session := stage.New(sc)
	if hostFlags.setlist != "" {
		setlist, err := cat.Setlist(ctx, hostFlags.setlist)
		if err != nil {
			return err
		}
		if len(setlist.Songs) == 0 {
			return errors.Errorf("setlist %v has no songs", setlist.Id)
		}
		session.LoadSetlist(setlist)
	} else {
		song, err := catalog.FindSong(ctx, cat, hostFlags.song)
		if err != nil {
			return err
		}
		session.SelectSong(song)
	}
	layout(session)

	broadcaster := broadcast.NewHost(client, session.Snapshot, clock.Real{})
	sc.OnStop(broadcaster.Changed)
	broadcaster.Start()
	defer broadcaster.Stop()
	defer sc.Stop()

	if hostFlags.autoscroll {
		sc.Start()
	}
	fmt.Fprintln(out, status(session))

	commands := make(chan string)
	go func() {
		defer close(commands)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case commands <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case command, ok := <-commands:
			if !ok || command == "q" {
				return nil
			}
			if !applyCommand(session, command) {
				fmt.Fprintf(out, "unknown command %q\n", command)
				continue
			}
			layout(session)
			broadcaster.Changed()
			fmt.Fprintln(out, status(session))
		}
	}
}
