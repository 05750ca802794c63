package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/engine/text"
)

func (a *app) splitCommand() *cobra.Command {
	var (
		sep         string
		anyOf       bool
		trim        bool
		removeEmpty bool
		limit       int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "split [text...]",
		Short: "Split text into entries, one per line",
		Long: `Split the text at every occurrence of --sep and print one entry per
line. With --any-of, --sep is a set of single-rune separators instead of
one multi-rune separator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("sep") {
				sep = a.cfg.Text().Separator
			}
			if sep == "" {
				return text.ErrEmptyPattern
			}
			opts := text.SplitOptions{TrimEntries: trim, RemoveEmpty: removeEmpty, Limit: limit}

			in, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			b, err := a.newBuilder(in)
			if err != nil {
				return err
			}
			defer b.Close()

			parts, err := splitEntries(b, sep, anyOf, opts)
			if err != nil {
				return err
			}
			if asJSON {
				out := "[]"
				for _, p := range parts {
					if out, err = sjson.Set(out, "-1", p); err != nil {
						return err
					}
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			if len(parts) == 0 {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, "\n"))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&sep, "sep", "s", "", "separator (default from config text.separator)")
	flags.BoolVar(&anyOf, "any-of", false, "treat every rune of --sep as a separator")
	flags.BoolVar(&trim, "trim", false, "trim whitespace around entries")
	flags.BoolVar(&removeEmpty, "remove-empty", false, "drop empty entries")
	flags.IntVar(&limit, "limit", 0, "maximum number of entries; the last holds the remainder")
	flags.BoolVar(&asJSON, "json", false, "print entries as a JSON array")
	return cmd
}

func splitEntries(b *builder.Builder[rune], sep string, anyOf bool, opts text.SplitOptions) ([]string, error) {
	if anyOf {
		return text.Split(b, text.AnyOf(sep), opts), nil
	}
	if r := []rune(sep); len(r) == 1 {
		return text.Split(b, text.Rune(r[0]), opts), nil
	}
	return text.SplitSeq(b, sep, opts)
}
