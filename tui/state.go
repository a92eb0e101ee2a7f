package tui

type state int

const (
	loadingState state = iota
	errorState
	playerState
	searchState
)

func (s state) String() string {
	switch s {
	case loadingState:
		return "loading"
	case errorState:
		return "error"
	case playerState:
		return "player"
	case searchState:
		return "search"
	default:
		return "unknown"
	}
}
