package domain

// InstallState is a step of a single tool installation.
type InstallState string

const (
	// StateStart is the initial state.
	StateStart InstallState = "start"
	// StateCacheCheck queries the tool cache.
	StateCacheCheck InstallState = "cache_check"
	// StateCached means the cache returned a previous installation.
	StateCached InstallState = "cached"
	// StateMiss means the cache had no entry.
	StateMiss InstallState = "miss"
	// StateDownloading fetches the archive.
	StateDownloading InstallState = "downloading"
	// StateExtracting unpacks the archive.
	StateExtracting InstallState = "extracting"
	// StatePathRegistered means the binary directory is on the search path.
	StatePathRegistered InstallState = "path_registered"
	// StateCacheWrite stores the binary in the tool cache.
	StateCacheWrite InstallState = "cache_write"
	// StateDone is the successful terminal state.
	StateDone InstallState = "done"
	// StateFailed is the terminal state reached through any propagated error.
	StateFailed InstallState = "failed"
)

var transitions = map[InstallState][]InstallState{
	StateStart:          {StateCacheCheck},
	StateCacheCheck:     {StateCached, StateMiss, StateFailed},
	StateCached:         {StatePathRegistered, StateFailed},
	StateMiss:           {StateDownloading, StateFailed},
	StateDownloading:    {StateExtracting, StateFailed},
	StateExtracting:     {StatePathRegistered, StateFailed},
	StatePathRegistered: {StateCacheWrite, StateDone, StateFailed},
	StateCacheWrite:     {StateDone, StateFailed},
}

// IsTerminal reports whether no transition leaves the state.
func (s InstallState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether next may follow s.
func (s InstallState) CanTransition(next InstallState) bool {
	for _, candidate := range transitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
