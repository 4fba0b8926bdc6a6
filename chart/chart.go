package chart

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rlackeyseattle/vynl-pro/chord"
	"github.com/rlackeyseattle/vynl-pro/constants"
	"github.com/rlackeyseattle/vynl-pro/util"
)

type Kind int

const (
	Blank Kind = iota
	Section
	Paired
	Inline
	Plain
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Section:
		return "section"
	case Paired:
		return "paired"
	case Inline:
		return "inline"
	case Plain:
		return "plain"
	}
	return "unknown"
}

// ChordAt is a rendered chord and the rune offset of its bracket in the
// chord line.
type ChordAt struct {
	Offset int
	Chord  string
}

// Segment is either literal lyric text or a rendered chord.
type Segment struct {
	Text    string
	IsChord bool
}

// Line is one display line. Which fields are set depends on Kind.
type Line struct {
	Kind Kind

	// section type whose color this line is drawn in
	SectionType string
	Color       string

	Label    string    // Section
	Chords   []ChordAt // Paired
	Lyric    string    // Paired
	Segments []Segment // Inline
	Text     string    // Plain

	// index of the first source line
	SourceLine int
}

// Options is the transform applied to every chord found.
type Options struct {
	Shift     int
	UseFlats  bool
	Nashville bool

	// Key root Nashville degrees are relative to, already shifted.
	// Nashville conversion is skipped while it is empty.
	Key string
}

// Chord transposes first and converts to Nashville second, the key is
// the apparent key after the shift.
func (o Options) Chord(token string) string {
	c := token
	if util.Mod(o.Shift, 12) != 0 {
		c = chord.Transpose(c, o.Shift, o.UseFlats)
	}
	if o.Nashville && o.Key != "" {
		c = chord.ToNashville(c, o.Key)
	}
	return c
}

var (
	bracketGroup  = regexp.MustCompile(`\[(.*?)\]`)
	bracketHeader = regexp.MustCompile(`^\[([^\]]+)\]$`)
	keywordHeader = regexp.MustCompile(`(?i)^(Verse|Chorus|Bridge|Outro|Intro|Solo|Pre-Chorus|Interlude|Hook)\s*\d*:?\s*$`)
)

// IsChordLine reports whether a line carries brackets and little else.
func IsChordLine(line string) bool {
	if !strings.Contains(line, "[") {
		return false
	}
	stripped := strings.TrimSpace(bracketGroup.ReplaceAllString(line, ""))
	return utf8.RuneCountInString(stripped) < constants.ChordOnlyThreshold
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Parse classifies raw chart text into display lines. It is a pure
// function of its inputs.
func Parse(text string, opts Options) []Line {
	if text == "" {
		return nil
	}
	lines := splitLines(text)
	res := make([]Line, 0, len(lines))
	current := DefaultSection

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		out := Line{SourceLine: i}

		switch {
		case trimmed == "":
			out.Kind = Blank
			i++
		case bracketHeader.MatchString(trimmed):
			if t, ok := SectionType(trimmed); ok {
				current = t
			}
			out.Kind = Section
			out.Label = bracketHeader.FindStringSubmatch(trimmed)[1]
			i++
		case keywordHeader.MatchString(trimmed):
			if t, ok := SectionType(trimmed); ok {
				current = t
			}
			out.Kind = Section
			out.Label = strings.TrimSuffix(trimmed, ":")
			i++
		case IsChordLine(line) && i+1 < len(lines) && !IsChordLine(lines[i+1]) && strings.TrimSpace(lines[i+1]) != "":
			out.Kind = Paired
			out.Chords = chordRow(line, opts)
			out.Lyric = lines[i+1]
			i += 2
		case strings.Contains(line, "["):
			out.Kind = Inline
			out.Segments = segments(line, opts)
			i++
		default:
			out.Kind = Plain
			out.Text = line
			i++
		}

		out.SectionType = current
		out.Color = SectionColor(current)
		res = append(res, out)
	}
	return res
}

func chordRow(line string, opts Options) []ChordAt {
	var res []ChordAt
	for _, loc := range bracketGroup.FindAllStringSubmatchIndex(line, -1) {
		token := line[loc[2]:loc[3]]
		res = append(res, ChordAt{
			Offset: utf8.RuneCountInString(line[:loc[0]]),
			Chord:  opts.Chord(token),
		})
	}
	return res
}

func segments(line string, opts Options) []Segment {
	var res []Segment
	last := 0
	for _, loc := range bracketGroup.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] > last {
			res = append(res, Segment{Text: line[last:loc[0]]})
		}
		res = append(res, Segment{Text: opts.Chord(line[loc[2]:loc[3]]), IsChord: true})
		last = loc[1]
	}
	if last < len(line) {
		res = append(res, Segment{Text: line[last:]})
	}
	return res
}

// Chords lists every rendered chord of the chart in reading order.
func Chords(lines []Line) []string {
	var res []string
	for _, l := range lines {
		switch l.Kind {
		case Paired:
			for _, c := range l.Chords {
				res = append(res, c.Chord)
			}
		case Inline:
			for _, s := range l.Segments {
				if s.IsChord {
					res = append(res, s.Text)
				}
			}
		}
	}
	return res
}
