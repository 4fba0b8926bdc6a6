package chart

import (
	"strings"
	"unicode/utf8"
)

// Render lays the chart out as monospaced text with chords above lyrics.
func Render(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		for _, row := range Rows(l) {
			b.WriteString(row)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Rows is the text form of a single line, one or two rows.
func Rows(l Line) []string {
	switch l.Kind {
	case Section:
		return []string{"== " + l.Label + " =="}
	case Paired:
		return []string{placeChords(l.Chords), l.Lyric}
	case Inline:
		return inlineRows(l.Segments)
	case Plain:
		return []string{l.Text}
	}
	return []string{""}
}

// placeChords puts each chord at its offset, pushing it right when the
// previous chord has not ended yet.
func placeChords(chords []ChordAt) string {
	var b strings.Builder
	col := 0
	for i, c := range chords {
		target := c.Offset
		if i > 0 && target <= col {
			target = col + 1
		}
		b.WriteString(strings.Repeat(" ", target-col))
		b.WriteString(c.Chord)
		col = target + utf8.RuneCountInString(c.Chord)
	}
	return b.String()
}

func inlineRows(segs []Segment) []string {
	var chords []ChordAt
	var lyric strings.Builder
	col := 0
	for _, s := range segs {
		if s.IsChord {
			chords = append(chords, ChordAt{Offset: col, Chord: s.Text})
			continue
		}
		lyric.WriteString(s.Text)
		col += utf8.RuneCountInString(s.Text)
	}
	return []string{placeChords(chords), strings.TrimRight(lyric.String(), " ")}
}

type Stats struct {
	Lines    int
	Sections int
	Paired   int
	Inline   int
	Plain    int
	Blank    int
	Chords   int
	Distinct int
}

func Summarize(lines []Line) Stats {
	var s Stats
	s.Lines = len(lines)
	for _, l := range lines {
		switch l.Kind {
		case Section:
			s.Sections++
		case Paired:
			s.Paired++
		case Inline:
			s.Inline++
		case Plain:
			s.Plain++
		case Blank:
			s.Blank++
		}
	}
	seen := make(map[string]bool)
	for _, c := range Chords(lines) {
		s.Chords++
		seen[c] = true
	}
	s.Distinct = len(seen)
	return s
}
