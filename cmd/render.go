// The render command orchestrates the pipeline:
// load → build → render → encode → write.
//
// It handles flag validation, encoder selection, and single-document and
// --all modes.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/markgen/config"
	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/assemble"
	"github.com/gaurav-prasanna/markgen/core/extract"
	"github.com/gaurav-prasanna/markgen/core/fetch"
	"github.com/gaurav-prasanna/markgen/core/generator"
	"github.com/gaurav-prasanna/markgen/core/normalize"
	"github.com/gaurav-prasanna/markgen/core/output"
	"github.com/gaurav-prasanna/markgen/core/render"
	"github.com/gaurav-prasanna/markgen/core/source"
	"github.com/gaurav-prasanna/markgen/crawl"
)

type renderFlags struct {
	rst      bool
	markdown bool
	json     bool
	pdf      bool
	stdout   bool
	preview  bool
	all      bool
	from     string
	dataFile string
	name     string
	sets     map[string]string
}

// flagKeys maps render flags onto configuration keys.
var flagKeys = map[string]string{
	"output_dir": "output_dir",
	"max_pages":  "crawl.max_pages",
}

func newRenderCmd() *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a document description or HTML page to RST or Markdown",
		Long: `Render loads a source, assembles its elements and writes the document in
the selected dialect.

A source is a YAML/JSON document description or an HTML page, given as a path
or an http(s) URL. The kind is inferred from the extension or content type
unless --from is set.

Examples:
  markgen render report.yaml --rst
  markgen render report.yaml --markdown --data metrics.yaml --set week=42
  markgen render report.yaml --markdown --preview
  markgen render https://example.com/guide --markdown --json --output_dir ./out
  markgen render https://example.com/docs/ --all --rst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			applyConfigFlagOverrides(cmd, e.v, flagKeys)
			return runRender(cmd, e, f, args[0])
		},
	}

	// Dialect flags (mutually exclusive; config "dialect" otherwise).
	cmd.Flags().BoolVar(&f.rst, "rst", false, "Render reStructuredText")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Render Markdown")

	// Output format flags (mutually exclusive; markup text otherwise).
	cmd.Flags().BoolVar(&f.json, "json", false, "Output a JSON manifest of the rendered document")
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "Output the rendered markup as PDF")

	// Destinations.
	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "Write to stdout instead of a file")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "Show the document in the terminal")
	cmd.Flags().String("output_dir", "", "Output directory (default: current directory)")
	cmd.Flags().StringVar(&f.name, "name", "", "Document name (default: derived from the source)")

	// Inputs.
	cmd.Flags().StringVar(&f.from, "from", "", "Source kind: template or html (default: inferred)")
	cmd.Flags().StringVar(&f.dataFile, "data", "", "YAML/JSON file merged into the description data")
	cmd.Flags().StringToStringVar(&f.sets, "set", nil, "Override a data value (key=value, dotted keys nest)")

	// Multi-page mode.
	cmd.Flags().BoolVar(&f.all, "all", false, "Render every page discovered from an HTML site")
	cmd.Flags().Int("max_pages", 0, "Page limit for --all (default from config)")

	return cmd
}

func runRender(cmd *cobra.Command, e *env, f *renderFlags, ref string) error {
	if err := validateFlags(f); err != nil {
		return err
	}

	settings, err := config.Resolve(e.v)
	if err != nil {
		return err
	}

	kind, err := source.ParseKind(f.from)
	if err != nil {
		return err
	}

	fetcher := fetch.New(
		fetch.WithTimeout(settings.FetchTimeout),
		fetch.WithUserAgent(settings.UserAgent),
	)

	p := &pipeline{
		flags:    f,
		settings: settings,
		fetcher:  fetcher,
		log:      e.log,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}
	if f.dataFile != "" {
		if p.extra, err = source.LoadData(f.dataFile); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if f.all {
		if !source.IsRemote(ref) {
			return fmt.Errorf("--all needs an http(s) URL, got %s", ref)
		}
		if kind == source.KindTemplate {
			return fmt.Errorf("--all renders HTML pages; it cannot be combined with --from template")
		}
		return p.runAll(ctx, ref)
	}
	return p.runOnly(ctx, ref, kind)
}

// pipeline carries the resolved state of one render invocation.
type pipeline struct {
	flags    *renderFlags
	settings config.Settings
	fetcher  core.Fetcher
	extra    core.Data
	log      *log.Logger
	out      io.Writer
	errOut   io.Writer
}

// runOnly renders a single source.
func (p *pipeline) runOnly(ctx context.Context, ref string, kind source.Kind) error {
	src, err := source.Load(ctx, ref, kind, p.fetcher)
	if err != nil {
		return err
	}
	p.log.Printf("render: %s as %s", ref, src.Kind)

	doc, err := p.process(src)
	if err != nil {
		return err
	}

	if p.flags.preview {
		return render.Preview(p.out, doc.Markup, doc.Meta.Dialect, p.settings.PreviewStyle, p.settings.PreviewWidth)
	}

	enc := selectEncoder(p.flags, doc.Meta.Dialect, p.settings)
	data, err := enc.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if p.flags.stdout {
		_, err = p.out.Write(data)
		return err
	}

	writer, err := output.New(p.settings.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	name := p.flags.name
	if name == "" {
		name = output.FilenameFor(ref)
	}
	path, err := writer.WriteOnly(name, data, enc.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers all internal pages and renders each one.
func (p *pipeline) runAll(ctx context.Context, rawURL string) error {
	fmt.Fprintf(p.out, "Discovering pages from %s...\n", rawURL)

	d := &crawl.Discoverer{Fetcher: p.fetcher, MaxPages: p.settings.MaxPages, Logger: p.log}
	urls, err := d.Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(p.out, "Found %d pages to process\n", len(urls))

	writer, err := output.New(p.settings.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(p.out, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		path, err := p.renderPage(ctx, pageURL, writer)
		if err != nil {
			fmt.Fprintf(p.errOut, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(p.out, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(p.errOut, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	if errCount == len(urls) && errCount > 0 {
		return fmt.Errorf("no pages rendered")
	}
	return nil
}

func (p *pipeline) renderPage(ctx context.Context, pageURL string, writer *output.Writer) (string, error) {
	src, err := source.Load(ctx, pageURL, source.KindHTML, p.fetcher)
	if err != nil {
		return "", err
	}
	doc, err := p.process(src)
	if err != nil {
		return "", err
	}
	enc := selectEncoder(p.flags, doc.Meta.Dialect, p.settings)
	data, err := enc.Encode(doc)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return writer.WriteAll(pageURL, data, enc.Extension())
}

// process builds and renders one loaded source.
func (p *pipeline) process(src *source.Source) (core.Output, error) {
	var (
		builder core.Builder
		data    = core.Data{}
		name    string
		dialect = p.flagDialect()
	)

	switch src.Kind {
	case source.KindTemplate:
		desc, err := assemble.ParseDescription(src.Body)
		if err != nil {
			return core.Output{}, fmt.Errorf("%s: %w", src.Ref, err)
		}
		if dialect == "" && desc.Dialect != "" {
			if dialect, err = core.ParseDialect(desc.Dialect); err != nil {
				return core.Output{}, fmt.Errorf("%s: %w", src.Ref, err)
			}
		}
		data = source.Merge(desc.Data, p.extra)
		name = desc.Name
		builder = assemble.NewTemplate(desc.Document)

	case source.KindHTML:
		extractor, err := extract.New()
		if err != nil {
			return core.Output{}, err
		}
		outline, err := assemble.NewHTMLOutline(string(src.Body), src.URL,
			assemble.WithExtractor(extractor),
			assemble.WithNormalizer(normalize.New()),
		)
		if err != nil {
			return core.Output{}, err
		}
		name = outline.PageTitle()
		builder = outline

	default:
		return core.Output{}, fmt.Errorf("unsupported source kind %q", src.Kind)
	}

	if dialect == "" {
		dialect = p.settings.Dialect
	}
	data = source.ApplySets(data, p.flags.sets)
	if p.flags.name != "" {
		name = p.flags.name
	}
	if name == "" {
		name = output.FilenameFor(src.Ref)
	}

	blocks, err := generator.New(data, dialect, builder).Blocks()
	if err != nil {
		return core.Output{}, fmt.Errorf("render: %w", err)
	}
	p.log.Printf("render: %s produced %d blocks", src.Ref, len(blocks))

	return core.Output{
		Meta: core.DocumentMeta{
			Name:        name,
			Source:      src.Ref,
			Dialect:     dialect,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Markup: generator.Join(blocks),
		Blocks: blocks,
	}, nil
}

// flagDialect returns the dialect chosen on the command line, or "".
func (p *pipeline) flagDialect() core.Dialect {
	switch {
	case p.flags.rst:
		return core.RST
	case p.flags.markdown:
		return core.Markdown
	}
	return ""
}

// validateFlags checks that at most one dialect and one output format are
// chosen and that destinations do not conflict.
func validateFlags(f *renderFlags) error {
	if f.rst && f.markdown {
		return fmt.Errorf("--rst and --markdown are mutually exclusive")
	}
	if f.json && f.pdf {
		return fmt.Errorf("only one output format allowed per run: --json or --pdf")
	}
	if f.stdout && f.preview {
		return fmt.Errorf("--stdout and --preview are mutually exclusive")
	}
	if f.preview && (f.json || f.pdf) {
		return fmt.Errorf("--preview shows markup; it cannot be combined with --json or --pdf")
	}
	if f.all && (f.stdout || f.preview) {
		return fmt.Errorf("--all writes one file per page; it cannot be combined with --stdout or --preview")
	}
	if f.all && f.name != "" {
		return fmt.Errorf("--name names a single document; it cannot be combined with --all")
	}
	return nil
}

// selectEncoder creates the Encoder for the chosen output format.
func selectEncoder(f *renderFlags, d core.Dialect, s config.Settings) core.Encoder {
	switch {
	case f.json:
		return render.NewJSONEncoder()
	case f.pdf:
		return render.NewPDFEncoder(s.PDFFontSize)
	default:
		return render.NewMarkupEncoder(d)
	}
}

// applyConfigFlagOverrides copies changed flags onto their config keys.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, keys map[string]string) {
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		key, ok := keys[flag.Name]
		if !ok {
			return
		}
		switch flag.Value.Type() {
		case "int":
			if val, err := cmd.Flags().GetInt(flag.Name); err == nil {
				v.Set(key, val)
			}
		default:
			v.Set(key, flag.Value.String())
		}
	})
}
