package cli

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/engine/text"
)

func (a *app) padCommand() *cobra.Command {
	var pattern string
	var biasRight, alternate bool

	pad := &cobra.Command{
		Use:   "pad",
		Short: "Pad text to a width",
	}
	side := func(use, short string, fn func(b *builder.Builder[rune], width int, pattern string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <width> [text...]",
			Short: short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				width, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("width: %w", err)
				}
				p := a.padPattern(cmd, pattern)
				return a.edit(cmd, args[1:], func(b *builder.Builder[rune]) error {
					return fn(b, width, p)
				})
			},
		}
	}

	left := side("left", "Pad on the left", text.PadLeft)
	right := side("right", "Pad on the right", text.PadRight)
	even := &cobra.Command{
		Use:   "even <width> [text...]",
		Short: "Pad both sides, centering the text",
		Long: `Pad both sides. An odd deficit puts the extra rune on the left unless
--bias-right is set. With --alternate every input line is padded on its own
and the side taking the extra rune alternates from line to line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("width: %w", err)
			}
			p := a.padPattern(cmd, pattern)
			if alternate {
				return a.edit(cmd, args[1:], func(b *builder.Builder[rune]) error {
					return a.padLines(b, width, p)
				})
			}
			return a.edit(cmd, args[1:], func(b *builder.Builder[rune]) error {
				return text.PadEven(b, width, p, biasRight)
			})
		},
	}
	even.Flags().BoolVar(&biasRight, "bias-right", false, "put the extra rune of an odd deficit on the right")
	even.Flags().BoolVar(&alternate, "alternate", false, "pad each line, alternating the odd-deficit side")

	pad.PersistentFlags().StringVarP(&pattern, "pattern", "p", "", "padding pattern (default from config text.padPattern)")
	pad.AddCommand(left, right, even)
	return pad
}

func (a *app) padPattern(cmd *cobra.Command, flag string) string {
	if cmd.Flags().Changed("pattern") {
		return flag
	}
	return a.cfg.Text().PadPattern
}

// padLines replaces b with its lines, each centered on its own.
func (a *app) padLines(b *builder.Builder[rune], width int, pattern string) error {
	lines := text.SplitBuilders(b, text.Rune('\n'), text.SplitOptions{}, a.builderOptions()...)
	defer func() {
		for _, l := range lines {
			l.Close()
		}
	}()

	var state text.Alternation
	b.Clear()
	for i, l := range lines {
		var err error
		if state, err = text.PadAlternating(l, width, pattern, state); err != nil {
			return err
		}
		if i > 0 {
			if err := b.Append('\n'); err != nil {
				return err
			}
		}
		if err := b.AppendBuilder(l); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) simple(use, short string, fn func(*builder.Builder[rune]) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [text...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args, fn)
		},
	}
}

func (a *app) trimCommand() *cobra.Command {
	return a.simple("trim", "Remove leading and trailing whitespace", func(b *builder.Builder[rune]) error {
		text.TrimSpace(b)
		return nil
	})
}

func (a *app) collapseCommand() *cobra.Command {
	return a.simple("collapse", "Trim and collapse whitespace runs to one space", func(b *builder.Builder[rune]) error {
		text.CollapseWhitespace(b)
		return nil
	})
}

func (a *app) dedupeCommand() *cobra.Command {
	return a.simple("dedupe", "Collapse runs of equal runes to one", func(b *builder.Builder[rune]) error {
		b.NormalizeDuplicates(nil)
		return nil
	})
}

func (a *app) reverseCommand() *cobra.Command {
	return a.simple("reverse", "Reverse the text", func(b *builder.Builder[rune]) error {
		b.ReverseAll()
		return nil
	})
}

func (a *app) normalizeCommand() *cobra.Command {
	var maxAdjacent int
	var values string
	var anyRune bool

	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Limit runs of repeated runes",
		Long: `Limit every run of one repeated rune to --max occurrences. Only runes
listed in --values are limited, unless --any is set or --values is empty.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args, func(b *builder.Builder[rune]) error {
				flagged := []rune(values)
				_, err := b.NormalizeAdjacent(maxAdjacent, nil, anyRune || len(flagged) == 0, flagged...)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&maxAdjacent, "max", 1, "longest run kept")
	cmd.Flags().StringVar(&values, "values", "", "runes whose runs are limited")
	cmd.Flags().BoolVar(&anyRune, "any", false, "limit runs of every rune")
	return cmd
}

func (a *app) wrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wrap <left> <right> [text...]",
		Short: "Surround the text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[2:], func(b *builder.Builder[rune]) error {
				return text.Wrap(b, args[0], args[1])
			})
		},
	}
}

func (a *app) unwrapCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "unwrap <left> <right> [text...]",
		Short: "Strip a surrounding prefix and suffix when both are present",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, args[2:], func(b *builder.Builder[rune]) error {
				if !text.Unwrap(b, args[0], args[1]) && strict {
					return fmt.Errorf("text is not wrapped in %q and %q", args[0], args[1])
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the text is not wrapped")
	return cmd
}

func (a *app) caseCommand() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:       "case <mode> [text...]",
		Short:     "Change case: snake, kebab, camel, pascal, screaming, upper, lower or title",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: text.CaseModes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := lang
			if !cmd.Flags().Changed("lang") {
				name = a.cfg.Text().Language
			}
			tag, err := language.Parse(name)
			if err != nil {
				return fmt.Errorf("language %q: %w", name, err)
			}
			return a.edit(cmd, args[1:], func(b *builder.Builder[rune]) error {
				return text.ChangeCase(b, args[0], tag)
			})
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "BCP 47 language for upper, lower and title (default from config text.language)")
	return cmd
}

func (a *app) replaceCommand() *cobra.Command {
	var before, after bool
	cmd := &cobra.Command{
		Use:   "replace <regex> <replacement> [text...]",
		Short: "Replace regular expression matches with literal text",
		Long: `Replace every match of a Go regular expression with the replacement,
taken literally. With --before or --after the replacement is inserted next
to each match instead.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if before && after {
				return fmt.Errorf("--before and --after are exclusive")
			}
			re, err := regexp.Compile(args[0])
			if err != nil {
				return err
			}
			repl := args[1]
			return a.edit(cmd, args[2:], func(b *builder.Builder[rune]) error {
				var err error
				switch {
				case before:
					_, err = text.InsertBeforeMatches(b, re, repl)
				case after:
					_, err = text.InsertAfterMatches(b, re, repl)
				default:
					_, err = text.ReplaceMatches(b, re, repl)
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&before, "before", false, "insert before each match")
	cmd.Flags().BoolVar(&after, "after", false, "insert after each match")
	return cmd
}
