package transcript

import (
	"regexp"
	"strings"

	"github.com/samber/mo"
)

// Search looks the query up in the cue texts and seeks to the first match.
// It reports whether any cue matched. Empty queries and patterns that fail to
// compile are ignored silently.
func (e *Engine) Search(query string) bool {
	if query == "" || len(e.items) == 0 {
		return false
	}

	e.logger.Debugf("search %q (%s)", query, e.options.Policy)

	switch e.options.Policy {
	case PolicySingle:
		return e.searchFirst(query)
	default:
		return e.searchAll(query)
	}
}

// Activate seeks to a cue the user picked in the panel by searching for its text.
func (e *Engine) Activate(index int) bool {
	if index < 0 || index >= len(e.items) {
		return false
	}

	text := e.track.Cues[index].Text
	if e.options.Policy == PolicyMulti {
		text = regexp.QuoteMeta(text)
	}
	return e.Search(text)
}

func (e *Engine) searchAll(query string) bool {
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		e.logger.Debugf("search %q: %v", query, err)
		return false
	}

	first := mo.None[int]()
	for i, cue := range e.track.Cues {
		if !re.MatchString(cue.Text) {
			e.items[i].Active = false
			e.items[i].Hit = false
			continue
		}

		e.items[i].Active = true
		e.items[i].Hit = true
		if first.IsAbsent() {
			first = mo.Some(i)
		}
	}

	i, ok := first.Get()
	if !ok {
		return false
	}

	e.focus(i)
	e.state.SearchMatch = mo.Some(i)
	e.seekTo(e.track.Cues[i].Start)
	return true
}

func (e *Engine) searchFirst(query string) bool {
	for i, cue := range e.track.Cues {
		if !strings.Contains(cue.Text, query) {
			continue
		}

		if m, ok := e.state.SearchMatch.Get(); ok {
			e.items[m].Hit = false
		}
		if h, ok := e.state.LastHighlighted.Get(); ok {
			e.items[h].Active = false
		}

		e.items[i].Hit = true
		e.state.SearchMatch = mo.Some(i)
		e.seekTo(cue.Start)
		return true
	}
	return false
}

func (e *Engine) focus(index int) {
	for i := range e.items {
		e.items[i].Focused = i == index
	}
}
