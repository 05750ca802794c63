package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dequebuf %s (%s)\n", Version, Commit)
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := configJSON(a.cfg.Data())
			if err != nil {
				return err
			}
			if path != "" {
				v := gjson.Get(out, path)
				if !v.Exists() {
					return fmt.Errorf("no setting %q", path)
				}
				out = v.Raw
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&path, "get", "", "print only the setting at this dot-separated path")
	return cmd
}

// configJSON renders settings as a JSON object with keys in sorted order.
func configJSON(data map[string]any) (string, error) {
	flat := make(map[string]any)
	flatten("", data, flat)

	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := "{}"
	for _, p := range paths {
		var err error
		if out, err = sjson.Set(out, p, flat[p]); err != nil {
			return "", fmt.Errorf("config %s: %w", p, err)
		}
	}
	return out, nil
}

func flatten(prefix string, m map[string]any, into map[string]any) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			flatten(path, sub, into)
			continue
		}
		into[path] = v
	}
}
