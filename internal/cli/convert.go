package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/httputil"
	chartio "github.com/matzehuels/stackchart/pkg/io"
)

func (c *CLI) convertCommand() *cobra.Command {
	var to, from, output string
	var write bool
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode a chart document as YAML, TOML or JSON",
		Example: `  stackchart convert examples/sales.yaml --to toml
  stackchart convert chart.json --to yaml -o chart.yaml
  stackchart convert -w --to json examples/growth.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := chartio.ParseFormat(to)
			if err != nil {
				return err
			}
			data, ctype, err := c.readDocument(cmd.Context(), args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			source := chartio.DetectFormat(args[0], data)
			if f := inputFromContentType(ctype); f != "" {
				source = chartio.Format(f)
			}
			if from != "" {
				if source, err = chartio.ParseFormat(from); err != nil {
					return err
				}
			}
			// Parse first so only valid charts are converted.
			if _, err := chartio.ParseChart(data, source); err != nil {
				return err
			}
			out, err := chartio.Convert(data, source, target)
			if err != nil {
				return err
			}
			if write && args[0] != "-" && !httputil.IsURL(args[0]) {
				output = swapExt(args[0], target)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := writeOutput(output, out, cmd.OutOrStdout()); err != nil {
				return err
			}
			c.Logger.Info("converted", "from", source, "to", target, "output", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format: yaml, toml or json")
	cmd.Flags().StringVar(&from, "from", "", "source format (default: from extension or content)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write next to the input with the new extension")
	cmd.MarkFlagRequired("to")
	return cmd
}

// swapExt replaces the extension of path with that of format.
func swapExt(path string, f chartio.Format) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(f)
}
