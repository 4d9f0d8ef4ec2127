package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/draw/sink"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/httputil"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// renderOpts holds the flags of render and pick.
type renderOpts struct {
	output      string
	formats     string
	inputFormat string
	width       int
	height      int
	scale       float64
	background  string
	title       string
	refresh     bool
	cache       cacheFlags
}

func (o *renderOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (one input, one format) or base path; - for stdout")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&o.inputFormat, "input-format", "", "input format: yaml, toml or json (default: from extension or content)")
	cmd.Flags().IntVar(&o.width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&o.height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().StringVar(&o.background, "background", "", "background colour (default white)")
	cmd.Flags().StringVar(&o.title, "title", "", "SVG document title")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached artifacts")
	o.cache.register(cmd)
}

// pipelineOptions builds run options for one document.
func (o *renderOpts) pipelineOptions(doc []byte, source string) pipeline.Options {
	return pipeline.Options{
		Document:    doc,
		Source:      source,
		InputFormat: o.inputFormat,
		Formats:     parseFormats(o.formats),
		Width:       o.width,
		Height:      o.height,
		Scale:       o.scale,
		Background:  o.background,
		Title:       o.title,
		Refresh:     o.refresh,
	}
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render <file>... ",
		Short: "Render chart documents",
		Long: `Render one or more chart documents. Use - to read a document from stdin;
http(s) URLs are fetched and cached for a few minutes.

Each input is written next to itself with the extension of each requested
format unless --output is given.`,
		Example: `  stackchart render examples/sales.yaml
  stackchart render -f svg,png --scale 2 examples/*.toml
  cat chart.json | stackchart render - -o - > chart.svg
  stackchart render -o chart.svg https://example.com/charts/sales.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormats(parseFormats(opts.formats)); err != nil {
				return err
			}
			if len(args) > 1 && opts.output != "" && !isDir(opts.output) {
				return errors.New(errors.ErrCodeInvalidPath, "--output must be a directory when rendering %d files", len(args))
			}
			runner, err := c.newRunner(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			for _, in := range args {
				if err := c.runRender(cmd.Context(), runner, in, &opts, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

// runRender renders one input and writes its artifacts.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts, stdin io.Reader, stdout io.Writer) error {
	doc, ctype, err := c.readDocument(ctx, input, stdin)
	if err != nil {
		return err
	}
	po := opts.pipelineOptions(doc, input)
	if po.InputFormat == "" {
		po.InputFormat = inputFromContentType(ctype)
	}
	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, "Rendering "+displayName(input))
	if c.Logger.GetLevel() > LogDebug {
		spin.Start()
	}
	res, err := runner.Execute(ctx, po)
	spin.Stop()
	if err != nil {
		return err
	}

	formats := sortedFormats(res.Artifacts)
	paths := outputPaths(input, opts.output, formats)
	for _, f := range formats {
		if err := writeOutput(paths[f], res.Artifacts[f], stdout); err != nil {
			return err
		}
		if paths[f] != "-" {
			printFile(paths[f])
		}
	}
	printStats(res.Kind, len(res.Artifacts), len(res.CacheInfo.Hits))
	c.Logger.Debug("render finished", "input", input, "elapsed", prog.elapsed())
	return nil
}

// readDocument reads a file, stdin ("-") or an http(s) URL. The content
// type is only known for URLs.
func (c *CLI) readDocument(ctx context.Context, input string, stdin io.Reader) ([]byte, string, error) {
	if !httputil.IsURL(input) {
		data, err := readInput(input, stdin)
		return data, "", err
	}
	doc, err := c.fetcher().Fetch(ctx, input)
	if httputil.IsNotFound(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "fetch %s", input)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "fetch %s", input)
	}
	c.Logger.Debug("fetched document", "url", input, "bytes", len(doc.Body), "content_type", doc.ContentType)
	return doc.Body, doc.ContentType, nil
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", input)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", input)
	}
	return data, nil
}

// outputPaths maps each format to its destination.
//
// A single format with an explicit output file goes there. An output
// directory receives <input name>.<ext>. Otherwise the output (or the input
// without its extension) is the base path and each format adds its
// extension. Stdin without an output goes to stdout.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output == "-" || (input == "-" && output == "" && len(formats) == 1) {
		for _, f := range formats {
			paths[f] = "-"
		}
		return paths
	}
	if len(formats) == 1 && output != "" && !isDir(output) {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(input, output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or derives the
// base from input when output is empty or a directory.
func basePath(input, output string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if input == "-" || name == "" {
		name = "chart"
	}
	switch {
	case output == "":
		if input == "-" {
			return name
		}
		return filepath.Join(filepath.Dir(input), name)
	case isDir(output):
		return filepath.Join(output, name)
	}
	if _, err := sink.ParseFormat(filepath.Ext(output)); err == nil {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// parseFormats splits a comma-separated list, defaulting to svg.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{string(sink.FormatSVG)}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func sortedFormats(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for f := range m {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return filepath.Base(input)
}

// FormatError renders err for the terminal: the message and its code.
func FormatError(err error) string {
	if code := errors.GetCode(err); code != "" {
		return fmt.Sprintf("%s (%s)", errors.UserMessage(err), code)
	}
	return err.Error()
}
