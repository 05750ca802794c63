// Package cli implements the dequebuf command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/dequebuf/internal/config"
	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/engine/pool"
	"github.com/dshills/dequebuf/internal/logging"
)

// Version information, set with -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	poolStats  bool

	cfg   *config.Config
	pool  pool.Pool[rune]
	stats func() pool.Stats
}

// NewRootCommand builds the dequebuf command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "dequebuf",
		Short: "Edit text through a double-ended sequence buffer",
		Long: `dequebuf applies buffer operations (padding, trimming, normalizing,
splitting, case changes, regex edits, Lua scripts) to text given as
arguments or read from stdin, and prints the result.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.report,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (.toml, .yaml, .yml or .json)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&a.poolStats, "pool-stats", false, "print array pool statistics to stderr on exit")

	root.AddCommand(
		a.padCommand(),
		a.trimCommand(),
		a.collapseCommand(),
		a.normalizeCommand(),
		a.dedupeCommand(),
		a.splitCommand(),
		a.wrapCommand(),
		a.unwrapCommand(),
		a.caseCommand(),
		a.replaceCommand(),
		a.reverseCommand(),
		a.scriptCommand(),
		a.configCommand(),
		versionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.New(config.WithFile(a.configPath))
	if err := a.cfg.Load(); err != nil {
		return err
	}
	if a.logLevel != "" {
		a.cfg.Set("log.level", a.logLevel)
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := logging.ParseLevel(a.cfg.Log().Level)
	logging.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if pc := a.cfg.Pool(); pc.Shared {
		p := pool.SetSharedMaxRetained[rune](pc.MaxRetained)
		a.pool, a.stats = p, p.Stats
	} else {
		a.pool = pool.Heap[rune]{}
	}
	logging.Logger().Debug("configured",
		"config", a.configPath,
		"initialCapacity", a.cfg.Builder().InitialCapacity,
		"maxCapacity", a.cfg.Builder().MaxCapacity,
		"sharedPool", a.stats != nil)
	return nil
}

func (a *app) report(cmd *cobra.Command, _ []string) {
	if !a.poolStats {
		return
	}
	var s pool.Stats
	if a.stats != nil {
		s = a.stats()
	}
	out := "{}"
	for _, f := range []struct {
		key string
		val int64
	}{
		{"rented", s.Rented},
		{"allocated", s.Allocated},
		{"returned", s.Returned},
		{"discarded", s.Discarded},
	} {
		out, _ = sjson.Set(out, f.key, f.val)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), out)
}

// builderOptions returns the options every builder the CLI creates uses.
func (a *app) builderOptions() []builder.Option[rune] {
	return []builder.Option[rune]{
		builder.WithPool(a.pool),
		builder.WithMaxCapacity[rune](a.cfg.Builder().MaxCapacity),
	}
}

// newBuilder returns a builder holding s, sized by configuration.
func (a *app) newBuilder(s string) (*builder.Builder[rune], error) {
	b := builder.New(a.cfg.Builder().InitialCapacity, a.builderOptions()...)
	if err := builder.AppendString(b, s); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// edit reads the input, applies fn to it, and prints the result.
func (a *app) edit(cmd *cobra.Command, args []string, fn func(*builder.Builder[rune]) error) error {
	in, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	b, err := a.newBuilder(in)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := fn(b); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), b.String())
	return err
}

// readInput joins args with spaces, or reads all of r when there are none.
// One trailing line break is dropped from r's content.
func readInput(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	s := string(data)
	switch {
	case len(s) >= 2 && s[len(s)-2:] == "\r\n":
		s = s[:len(s)-2]
	case len(s) >= 1 && s[len(s)-1] == '\n':
		s = s[:len(s)-1]
	}
	return s, nil
}
