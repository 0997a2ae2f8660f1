package runtime

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"

	cfgpkg "github.com/rzbill/reel/internal/config"
	"github.com/rzbill/reel/internal/journal"
	"github.com/rzbill/reel/pkg/clock"
	logpkg "github.com/rzbill/reel/pkg/log"
)

var (
	// ErrInvalidJournalName is returned when a name fails the configured
	// name pattern.
	ErrInvalidJournalName = errors.New("runtime: invalid journal name")
	// ErrMaxJournals is returned when creating a journal would exceed the
	// configured cap.
	ErrMaxJournals = errors.New("runtime: journal limit reached")
	// ErrClosed is returned by operations on a closed runtime.
	ErrClosed = errors.New("runtime: closed")
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
	Clock  clock.Clock
}

// Runtime wires config, logging, and the named-journal registry for a
// single in-process instance. Runtimes are fully independent of each
// other; nothing here is process-global.
type Runtime struct {
	config cfgpkg.Config
	logger logpkg.Logger
	clock  clock.Clock
	nameRe *regexp.Regexp

	mu       sync.Mutex
	journals map[string]*journal.Log[[]byte]
	closed   bool
}

// Open validates the configuration and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	cfg := opts.Config
	if cfg.JournalNameRegex == "" {
		cfg = cfgpkg.Default()
	}
	re, err := regexp.Compile("^" + cfg.JournalNameRegex + "$")
	if err != nil {
		return nil, fmt.Errorf("runtime: bad journal name regex: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	c := opts.Clock
	if c == nil {
		c = clock.System()
	}
	return &Runtime{
		config:   cfg,
		logger:   logger.With(logpkg.Component("runtime")),
		clock:    c,
		nameRe:   re,
		journals: map[string]*journal.Log[[]byte]{},
	}, nil
}

// EnsureJournal returns the journal registered under name, creating and
// opening it if absent. Idempotent: an existing journal is returned as-is.
func (r *Runtime) EnsureJournal(name string) (*journal.Log[[]byte], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if j, ok := r.journals[name]; ok {
		return j, nil
	}
	if !r.nameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJournalName, name)
	}
	if r.config.MaxJournals > 0 && len(r.journals) >= r.config.MaxJournals {
		return nil, fmt.Errorf("%w: max %d", ErrMaxJournals, r.config.MaxJournals)
	}
	jlog := r.logger.With(logpkg.Str("journal", name))
	j := journal.New(
		journal.WithClock[[]byte](r.clock),
		journal.WithHooks(journal.Hooks[[]byte]{
			OnOpen:  func() { jlog.Debug("journal opened") },
			OnClose: func() { jlog.Debug("journal closed") },
			OnClear: func() { jlog.Debug("journal cleared") },
			OnAppend: func(data []byte) {
				jlog.Debug("entry buffered", logpkg.Int("bytes", len(data)))
			},
			OnCommit: func(c journal.Commit) {
				jlog.Debug("commit sealed", logpkg.Int("transactions", len(c.TransactionIDs)))
			},
		}),
	)
	if err := j.Open(); err != nil {
		return nil, err
	}
	r.journals[name] = j
	return j, nil
}

// Journal returns the journal registered under name, if any.
func (r *Runtime) Journal(name string) (*journal.Log[[]byte], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.journals[name]
	return j, ok
}

// Journals lists registered journal names in sorted order.
func (r *Runtime) Journals() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.journals))
	for name := range r.journals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Close closes every registered journal and marks the runtime closed.
// Journals a caller already closed are left alone.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	for _, j := range r.journals {
		if j.IsOpen() {
			_ = j.Close()
		}
	}
	r.closed = true
	return nil
}

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the runtime's base logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }
