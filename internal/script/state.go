package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/logging"
)

// Default limits.
const (
	DefaultTimeout          = 5 * time.Second
	DefaultInstructionLimit = 10_000_000
)

// State is a sandboxed Lua interpreter. Runs are serialized; the underlying
// LState never sees two goroutines at once.
type State struct {
	L  *lua.LState
	mu sync.Mutex

	timeout  time.Duration
	limit    int64
	count    int64
	limitHit bool
	out      io.Writer
	bopts    []builder.Option[rune]

	// owned holds builders made by seq.new during the current run.
	owned []*builder.Builder[rune]

	closed bool
}

// Option configures a State.
type Option func(*State)

// WithTimeout bounds each run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithInstructionLimit sets the per-run budget of calls from Lua into Go.
// Zero disables the budget.
func WithInstructionLimit(n int64) Option {
	return func(s *State) {
		s.limit = n
	}
}

// WithOutput sends Lua print output to w. The default is stderr.
func WithOutput(w io.Writer) Option {
	return func(s *State) {
		s.out = w
	}
}

// WithBuilderOptions applies opts to builders created by seq.new.
func WithBuilderOptions(opts ...builder.Option[rune]) Option {
	return func(s *State) {
		s.bopts = opts
	}
}

// NewState creates a sandboxed state with the seq module installed.
func NewState(opts ...Option) *State {
	s := &State{
		timeout: DefaultTimeout,
		limit:   DefaultInstructionLimit,
		out:     os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.installSandbox()
	s.installSeq()
	return s
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// Run executes code with input bound to the global "input".
func (s *State) Run(ctx context.Context, code string, input *builder.Builder[rune]) error {
	return s.run(ctx, "<string>", input, func() error { return s.L.DoString(code) })
}

// RunFile executes the script at path with input bound to the global
// "input".
func (s *State) RunFile(ctx context.Context, path string, input *builder.Builder[rune]) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return s.run(ctx, path, input, func() error {
		fn, err := s.L.Load(bytes.NewReader(code), path)
		if err != nil {
			return err
		}
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

func (s *State) run(ctx context.Context, name string, input *builder.Builder[rune], fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	s.count, s.limitHit = 0, false
	defer s.release()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	if input != nil {
		s.L.SetGlobal("input", s.newUserData(input))
		defer s.L.SetGlobal("input", lua.LNil)
	}

	log := logging.Logger().With("script", name)
	start := time.Now()
	err := doWithRecovery(fn)

	switch {
	case s.limitHit:
		err = fmt.Errorf("%w: %d calls", ErrInstructionLimit, s.limit)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = ErrExecutionTimeout
	case ctx.Err() != nil:
		err = ctx.Err()
	}
	log.Debug("script finished", "calls", s.count, "elapsed", time.Since(start), "err", err)
	return err
}

// release closes the builders scripts created. A builder a script kept in a
// global is left empty for later runs.
func (s *State) release() {
	for _, b := range s.owned {
		b.Close()
	}
	clear(s.owned)
	s.owned = s.owned[:0]
}

func doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// charge counts one call into Go and reports whether the budget still
// holds.
func (s *State) charge() bool {
	s.count++
	if s.limit > 0 && s.count > s.limit {
		s.limitHit = true
		return false
	}
	return true
}

// Close releases the interpreter. It is safe to call more than once.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
	return nil
}
