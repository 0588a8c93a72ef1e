package voice

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// maxEditDistance is the Levenshtein distance at which a transcript word is
// still accepted as a keyword. Distance 1 covers single dropped or swapped
// letters without letting "let" match "right".
const maxEditDistance = 1

// matchFuzzy is the fallback pass for transcripts with no literal keyword.
// Each transcript word is compared against the single-word keywords of every
// command, first by Double Metaphone phonetic code, then by edit distance.
// Multi-word keywords are skipped; they already had their containment check.
func matchFuzzy(text string) Command {
	words := strings.Fields(text)
	if len(words) == 0 {
		return CmdNone
	}

	for _, p := range patterns {
		for _, kw := range p.keywords {
			if strings.ContainsRune(kw, ' ') {
				continue
			}
			for _, w := range words {
				if soundsLike(w, kw) || levenshtein.ComputeDistance(w, kw) <= maxEditDistance {
					return p.cmd
				}
			}
		}
	}
	return CmdNone
}

// soundsLike reports whether two words share a Double Metaphone code.
// Very short words produce degenerate codes, so they are compared literally.
func soundsLike(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return a == b
	}
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	if ap == "" || bp == "" {
		return false
	}
	return ap == bp || (as != "" && as == bs)
}
