package chart

import "strings"

type sectionColor struct {
	name  string
	color string
}

// ordered, lookup is first prefix match
var sectionColors = []sectionColor{
	{"intro", "#9d50bb"},
	{"verse", "#00d2ff"},
	{"chorus", "#ffbf47"},
	{"bridge", "#ff6b6b"},
	{"outro", "#9d50bb"},
	{"solo", "#50bb6e"},
	{"pre-chorus", "#ff9f43"},
	{"interlude", "#a29bfe"},
	{"hook", "#ffbf47"},
}

// DefaultSection colors everything before the first recognized header.
const DefaultSection = "verse"

// SectionType matches a header ("[Chorus 2]", "pre-chorus:") against the
// known vocabulary, case-insensitively by prefix.
func SectionType(header string) (string, bool) {
	clean := strings.NewReplacer("[", "", "]", "").Replace(header)
	clean = strings.ToLower(strings.TrimSpace(clean))
	for _, sc := range sectionColors {
		if strings.HasPrefix(clean, sc.name) {
			return sc.name, true
		}
	}
	return "", false
}

// SectionColor is the display color for a section type, or "" if unknown.
func SectionColor(sectionType string) string {
	for _, sc := range sectionColors {
		if sc.name == sectionType {
			return sc.color
		}
	}
	return ""
}
