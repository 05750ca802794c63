package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/script"
)

func (a *app) scriptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua> [text...]",
		Short: "Edit text with a Lua script",
		Long: `Run a Lua script against the text. The script sees the text as the
builder global "input" and edits it in place through its methods, for
example input:pad_left(10, "0"). print writes to stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Script()
			st := script.NewState(
				script.WithTimeout(sc.Timeout),
				script.WithInstructionLimit(int64(sc.InstructionLimit)),
				script.WithOutput(cmd.ErrOrStderr()),
				script.WithBuilderOptions(a.builderOptions()...),
			)
			defer st.Close()

			return a.edit(cmd, args[1:], func(b *builder.Builder[rune]) error {
				return st.RunFile(cmd.Context(), args[0], b)
			})
		},
	}
}
