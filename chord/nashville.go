package chord

import (
	"strings"

	"github.com/rlackeyseattle/vynl-pro/util"
)

var degrees = [12]string{"1", "b2", "2", "b3", "3", "4", "b5", "5", "b6", "6", "b7", "7"}

// ToNashville rewrites a chord token as a scale degree relative to keyRoot.
// The conversion is lossy: "Bdim7" and "B°" both become "7°" in C.
// Tokens whose root or key do not resolve come back unchanged.
func ToNashville(token string, keyRoot string) string {
	key, ok := ParseChord(keyRoot)
	if !ok {
		return token
	}
	if upper, lower, isSlash := splitSlash(token); isSlash {
		return ToNashville(upper, keyRoot) + "/" + ToNashville(lower, keyRoot)
	}
	c, ok := ParseChord(token)
	if !ok {
		return token
	}
	return nashvilleDegree(c.Root, key.Root, c.Quality)
}

func nashvilleDegree(root Note, key Note, quality string) string {
	degree := degrees[util.Mod(root-key, 12)]
	switch {
	case strings.HasPrefix(quality, "m") && !strings.HasPrefix(quality, "maj"):
		// digits have no case, so minor keeps its "m"
		return strings.ToLower(degree) + "m" + quality[1:]
	case strings.HasPrefix(quality, "dim") || strings.HasPrefix(quality, "°"):
		return degree + "°"
	case strings.HasPrefix(quality, "aug") || strings.HasPrefix(quality, "+"):
		return degree + "+"
	default:
		return degree + quality
	}
}

// EffectiveKey is the root of key after shifting it, spelled for display.
func EffectiveKey(key string, semitones int, useFlats bool) (string, bool) {
	c, ok := ParseChord(key)
	if !ok {
		return "", false
	}
	return c.Root.Transpose(semitones).Spell(useFlats), true
}

// DisplayKey renders a song key after a shift, keeping its quality
// ("Am" up 2 is "Bm"). Missing keys show as "?".
func DisplayKey(key string, semitones int, useFlats bool) string {
	if key == "" {
		return "?"
	}
	if util.Mod(semitones, 12) == 0 {
		return key
	}
	c, ok := ParseChord(key)
	if !ok {
		return key
	}
	return c.Root.Transpose(semitones).Spell(useFlats) + c.Quality
}
