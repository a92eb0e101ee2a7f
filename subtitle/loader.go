package subtitle

import (
	"context"
	"errors"
	"sync"

	"github.com/seekscript/seekscript/log"
	"github.com/seekscript/seekscript/transcript"
)

// Loader reads a set of subtitle files in the background and signals once
// every file has been processed. Files that fail to load are skipped.
type Loader struct {
	paths  []string
	loaded chan []*transcript.Track

	once sync.Once
	mu   sync.Mutex
	errs []error
}

// NewLoader creates a loader for the given files. Nothing is read until Start.
func NewLoader(paths ...string) *Loader {
	return &Loader{
		paths:  paths,
		loaded: make(chan []*transcript.Track, 1),
	}
}

// Start loads the files on a separate goroutine. Further calls do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

// Loaded delivers the loaded tracks once, in the order the files were given,
// and is closed afterwards. It is closed without a value if ctx is cancelled.
func (l *Loader) Loaded() <-chan []*transcript.Track {
	return l.loaded
}

// Err returns the joined load errors. Only meaningful once Loaded fired.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Join(l.errs...)
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.loaded)

	tracks := make([]*transcript.Track, 0, len(l.paths))
	for _, path := range l.paths {
		if ctx.Err() != nil {
			return
		}

		track, err := Load(path)
		if err != nil {
			log.Warnf("load subtitles: %v", err)
			l.mu.Lock()
			l.errs = append(l.errs, err)
			l.mu.Unlock()
			continue
		}

		log.Debugf("loaded %d cues from %s", len(track.Cues), path)
		tracks = append(tracks, track)
	}

	select {
	case l.loaded <- tracks:
	case <-ctx.Done():
	}
}
