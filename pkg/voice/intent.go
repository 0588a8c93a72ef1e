// Package voice implements keyword detection on speech transcripts and maps
// recognized commands onto the shared control state and the input simulator.
//
// Matching is substring containment against ordered keyword lists. Each list
// carries common speech-recognition misreadings of its command ("dop" for
// "stop", "night" for "right") so that imperfect transcripts still land on
// the intended command. The first matching command wins; list order is the
// priority order.
package voice

import "strings"

// Command is a recognized voice command.
type Command int

const (
	// CmdNone means no command matched the transcript.
	CmdNone Command = iota
	// CmdStop disables scroll actions.
	CmdStop
	// CmdStart re-enables scroll actions.
	CmdStart
	// CmdRecalibrate drops calibration and restarts the hold.
	CmdRecalibrate
	// CmdZoomIn zooms the page in.
	CmdZoomIn
	// CmdZoomOut zooms the page out.
	CmdZoomOut
	// CmdZoomReset restores the default zoom level.
	CmdZoomReset
	// CmdScrollUp scrolls up once.
	CmdScrollUp
	// CmdScrollDown scrolls down once.
	CmdScrollDown
	// CmdScrollLeft navigates left once.
	CmdScrollLeft
	// CmdScrollRight navigates right once.
	CmdScrollRight
)

var commandNames = map[Command]string{
	CmdNone:        "none",
	CmdStop:        "stop",
	CmdStart:       "start",
	CmdRecalibrate: "recalibrate",
	CmdZoomIn:      "zoom in",
	CmdZoomOut:     "zoom out",
	CmdZoomReset:   "zoom reset",
	CmdScrollUp:    "scroll up",
	CmdScrollDown:  "scroll down",
	CmdScrollLeft:  "scroll left",
	CmdScrollRight: "scroll right",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Directional reports whether the command is a one-shot scroll command.
func (c Command) Directional() bool {
	switch c {
	case CmdScrollUp, CmdScrollDown, CmdScrollLeft, CmdScrollRight:
		return true
	}
	return false
}

// pattern pairs a command with the keyword list that triggers it.
type pattern struct {
	cmd      Command
	keywords []string
}

// patterns is the ordered command table. Earlier entries win; in particular
// "stop" is checked before "start" and the zoom commands before the bare
// directionals, so "zoom out" never matches as a stray "out".
var patterns = []pattern{
	{CmdStop, []string{"stop", "pause", "dop", "top", "was", "cause"}},
	{CmdStart, []string{"start", "resume", "dark", "star", "st", "stat", "that", "presume"}},
	{CmdRecalibrate, []string{
		"situation", "sitting", "acqusition", "position", "reposition",
		"barate", "deliberately", "deliberate", "calibrate", "celebrate",
		"gallery", "recallibrate", "recal", "call", "callibrate",
		"bread", "break", "brate", "rate", "ate", "at", "eat",
		"libe", "libre", "lib",
	}},
	{CmdZoomIn, []string{
		"zoom in", "soon in", "room in", "gum in", "go in", "do min",
		"boomin", "no mean", "domain", "you mean", "zoomin", "zooming",
	}},
	{CmdZoomOut, []string{
		"zoom out", "soon out", "room out", "doom out", "go out",
		"boom out", "zoomout",
	}},
	{CmdZoomReset, []string{
		"reset zoom", "default zoom", "normal zoom", "zoom reset",
		"zoom default", "zoom normal", "original", "reset", "default",
		"default view", "reset view", "research zoom", "default real",
		"said view", "research you",
	}},
	{CmdScrollUp, []string{
		"up", "cup", "hub", "pup", "sub", "hup", "dup", "tup", "sup",
		"zup", "bup", "op", "pop",
	}},
	{CmdScrollDown, []string{
		"down", "drown", "downry", "dong", "lawn", "lown", "don't",
		"don", "dowd", "dome", "nown", "now",
	}},
	{CmdScrollLeft, []string{
		"left", "let", "let's", "this", "listen", "lefty", "lost",
		"loft", "less", "lives", "life", "live",
	}},
	{CmdScrollRight, []string{
		"right", "night", "plight", "height", "knight", "light",
		"fight", "might", "flight",
	}},
}

// Matcher maps transcripts to commands. With fuzzy matching enabled,
// transcripts that contain no keyword get a second pass of per-word phonetic
// and edit-distance comparison.
type Matcher struct {
	fuzzy bool
}

// NewMatcher creates a matcher. fuzzy enables the phonetic fallback pass.
func NewMatcher(fuzzy bool) *Matcher {
	return &Matcher{fuzzy: fuzzy}
}

// Match returns the first command whose keyword list matches the transcript,
// or CmdNone. The transcript is lower-cased and trimmed before matching, so
// callers may pass raw recognizer output.
func (m *Matcher) Match(transcript string) Command {
	text := strings.ToLower(strings.TrimSpace(transcript))
	if text == "" {
		return CmdNone
	}

	for _, p := range patterns {
		for _, kw := range p.keywords {
			if strings.Contains(text, kw) {
				return p.cmd
			}
		}
	}

	if m.fuzzy {
		return matchFuzzy(text)
	}
	return CmdNone
}
