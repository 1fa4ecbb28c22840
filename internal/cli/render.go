package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/snapkit/snapcard/pkg/errors"
	"github.com/snapkit/snapcard/pkg/history"
	"github.com/snapkit/snapcard/pkg/snap"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: png, jpeg, webp
	theme      string   // color theme name
	preset     string   // size preset name
	width      int      // canvas width in logical pixels
	height     int      // canvas height in logical pixels
	scale      float64  // device pixel multiplier
	quality    float64  // encoder quality in [0,1]
	fontSize   int      // starting font size
	fontFamily string   // font-family list
	padding    int      // inner card padding
	radius     int      // card corner radius
	align      string   // text alignment: left or center
	noAutoFit  bool     // disable the font-size search
	noCache    bool     // bypass the artifact cache
	save       bool     // record the snap in history
	title      string   // history title (with --save)
	tags       []string // history tags (with --save)
	stdout     bool     // write the artifact to stdout
}

// renderCommand creates the render command for generating snapshot cards.
//
// Text comes from the argument, a file via --input, or stdin when piped.
// Flag defaults are seeded from the renderer defaults overlaid with saved
// preferences, so an explicit flag always wins over a preference.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr, input string
	opts := renderOpts{}
	base := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "render [text]",
		Short: "Render text into a snapshot card image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args, input)
			if err != nil {
				return err
			}
			opts.formats = parseFormats(formatsStr, base.Format)
			for _, f := range opts.formats {
				if err := snap.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), text, base, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), jpeg, webp (comma-separated)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read text from a file instead of the argument")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme (see 'snapcard themes')")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "size preset (see 'snapcard presets')")
	cmd.Flags().IntVar(&opts.width, "width", base.Width, "canvas width")
	cmd.Flags().IntVar(&opts.height, "height", base.Height, "canvas height (grows to fit)")
	cmd.Flags().Float64Var(&opts.scale, "scale", base.Scale, "device pixel multiplier")
	cmd.Flags().Float64Var(&opts.quality, "quality", base.Quality, "encoder quality in [0,1] (jpeg, webp)")
	cmd.Flags().IntVar(&opts.fontSize, "font-size", base.FontSize, "starting font size")
	cmd.Flags().StringVar(&opts.fontFamily, "font", base.FontFamily, "font family list")
	cmd.Flags().IntVar(&opts.padding, "padding", base.Padding, "inner card padding")
	cmd.Flags().IntVar(&opts.radius, "radius", base.BorderRadius, "card corner radius")
	cmd.Flags().StringVar(&opts.align, "align", base.TextAlign, "text alignment: left, center")
	cmd.Flags().BoolVar(&opts.noAutoFit, "no-autofit", false, "keep the requested font size exactly")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().BoolVar(&opts.save, "save", false, "record the snap in history")
	cmd.Flags().StringVar(&opts.title, "title", "", "history title (with --save)")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "history tag, repeatable (with --save)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write image bytes to stdout")

	return cmd
}

// readText resolves the input text: argument first, then --input file,
// then piped stdin.
func readText(cmd *cobra.Command, args []string, input string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read input file")
		}
		return string(data), nil
	}
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no text given: pass an argument, --input, or pipe stdin")
}

// buildOptions merges the flag values over the preference-seeded base.
func buildOptions(base snap.Options, opts *renderOpts) (snap.Options, error) {
	out := base
	if opts.theme != "" {
		theme, err := snap.LookupTheme(opts.theme)
		if err != nil {
			return out, err
		}
		theme.Apply(&out)
	}
	if opts.preset != "" {
		if err := snap.ApplyPreset(&out, opts.preset); err != nil {
			return out, err
		}
	}
	// Explicit size flags beat the preset.
	if opts.width != base.Width {
		out.Width = opts.width
	}
	if opts.height != base.Height {
		out.Height = opts.height
	}

	out.Scale = opts.scale
	out.Quality = opts.quality
	out.FontSize = opts.fontSize
	out.FontFamily = opts.fontFamily
	out.Padding = opts.padding
	out.BorderRadius = opts.radius
	out.TextAlign = opts.align
	out.AutoFit = !opts.noAutoFit
	return out, nil
}

// runRender renders the text in every requested format and writes the
// artifacts. Formats render concurrently, one Renderer per goroutine.
func (c *CLI) runRender(ctx context.Context, text string, base snap.Options, opts *renderOpts) error {
	merged, err := buildOptions(base, opts)
	if err != nil {
		return err
	}

	if opts.stdout {
		if len(opts.formats) != 1 {
			return errors.New(errors.ErrCodeInvalidOptions, "--stdout needs exactly one format")
		}
		merged.Format = opts.formats[0]
		runner, err := c.newRunner(opts.noCache)
		if err != nil {
			return err
		}
		defer runner.Close()
		img, _, err := runner.Execute(ctx, text, merged)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(img.Data); err != nil {
			return err
		}
		return c.maybeSave(ctx, text, opts)
	}

	spinner := newRenderSpinner(ctx, opts.formats)
	spinner.Start()

	type artifact struct {
		path   string
		img    *snap.EncodedImage
		cached bool
	}
	results := make([]artifact, len(opts.formats))

	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.formats {
		i, format := i, format
		g.Go(func() error {
			formatOpts := merged
			formatOpts.Format = format

			// Renderers are single-use per goroutine; the shared font
			// library behind them is safe.
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			img, cached, err := runner.Execute(gctx, text, formatOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			results[i] = artifact{
				path:   outputPath(opts.output, format, len(opts.formats)),
				img:    img,
				cached: cached,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning("Render cancelled")
		} else {
			spinner.StopWithError("Render failed")
		}
		return err
	}
	spinner.StopWithSuccess("Rendered snap")

	for _, a := range results {
		if err := os.WriteFile(a.path, a.img.Data, 0644); err != nil {
			return err
		}
		printFile(a.path)
		printRenderStats(merged.Width, merged.Height, len(a.img.Data), a.cached)
	}

	return c.maybeSave(ctx, text, opts)
}

// maybeSave records the snap in history when --save is set.
func (c *CLI) maybeSave(ctx context.Context, text string, opts *renderOpts) error {
	if !opts.save {
		return nil
	}
	path, err := historyPath()
	if err != nil {
		return err
	}
	store, err := history.NewFileStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := history.New(text, opts.title, opts.tags)
	if err != nil {
		return err
	}
	if err := store.Add(ctx, entry); err != nil {
		return err
	}
	printDetail("Saved to history: %s", entry.ID)
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPath derives the output file for a format. A single format uses
// the given path (or snap.<format>); multiple formats share a base path
// and get per-format extensions.
func outputPath(output, format string, total int) string {
	if output == "" {
		return "snap." + format
	}
	if total == 1 {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
}
