package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/draw/sink"
	"github.com/matzehuels/stackchart/pkg/fonts"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show chart types, output formats and font families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := make([]string, len(sink.Formats))
			for i, f := range sink.Formats {
				formats[i] = string(f)
			}
			printKeyValue("charts", strings.Join(chart.Kinds(), ", "))
			printKeyValue("formats", strings.Join(formats, ", "))
			printKeyValue("fonts", strings.Join(fonts.Families(), ", "))
			return nil
		},
	}
}
