package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/accesslens/config"
	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/analyze"
	"github.com/gaurav-prasanna/accesslens/core/fetch"
	"github.com/gaurav-prasanna/accesslens/core/output"
	"github.com/gaurav-prasanna/accesslens/core/page"
	"github.com/gaurav-prasanna/accesslens/core/render"
	"github.com/gaurav-prasanna/accesslens/crawl"
)

// Flag variables.
var (
	flagAll       bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagStdout    bool
	flagOutputDir string
	flagTimeout   time.Duration
	flagUserAgent string
	flagMaxPages  int
	flagWorkers   int
)

// reportCmd orchestrates the pipeline for one document or a whole site:
// fetch → analyze → normalize → render → write.
var reportCmd = &cobra.Command{
	Use:   "report <url|file|->",
	Short: "Write an accessibility report for a page, a local file or stdin",
	Long: `Report analyses an HTML document and writes its accessibility report as
Markdown, JSON or PDF. The source is an http(s) URL, a path to an HTML file,
or "-" to read standard input.

Examples:
  accesslens report https://example.com --markdown
  accesslens report page.html --json --stdout
  curl -s https://example.com | accesslens report - --pdf
  accesslens report https://example.com --all --json --output_dir ./audit`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	// Mode flags.
	reportCmd.Flags().BoolVar(&flagAll, "all", false, "Audit every page discovered on the site")

	// Output format flags (mutually exclusive).
	reportCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	reportCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	reportCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	reportCmd.MarkFlagsMutuallyExclusive("pdf", "markdown", "json")

	reportCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the report to standard output instead of a file")
	reportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: config output.dir or current directory)")

	// Fetch and crawl tuning; zero values fall back to the config file.
	reportCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Per-page fetch timeout")
	reportCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "User-Agent sent when fetching")
	reportCmd.Flags().IntVar(&flagMaxPages, "max_pages", 0, "Maximum pages to audit with --all")
	reportCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Pages audited concurrently with --all")
}

func runReport(cmd *cobra.Command, args []string) error {
	source := args[0]
	applyFlags(&cfg)

	if flagAll {
		if flagStdout {
			return fmt.Errorf("--stdout cannot be combined with --all")
		}
		if _, err := fetch.ValidateURL(source); err != nil {
			return fmt.Errorf("--all needs a site URL: %w", err)
		}
	}

	renderer, err := selectRenderer(cfg.Output.Format)
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	fetcher := fetch.New(fetch.WithTimeout(cfg.Fetch.Timeout), fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes))
	builder := page.NewBuilder(analyze.New())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagStdout {
		data, err := processSource(ctx, source, cmd.InOrStdin(), fetcher, builder, renderer)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	if flagAll {
		return runSite(ctx, cmd.OutOrStdout(), source, fetcher, builder, renderer, writer)
	}
	return runOne(ctx, cmd, source, fetcher, builder, renderer, writer)
}

// applyFlags overlays explicitly set flags on the loaded configuration.
func applyFlags(c *config.Config) {
	switch {
	case flagPDF:
		c.Output.Format = config.FormatPDF
	case flagMarkdown:
		c.Output.Format = config.FormatMarkdown
	case flagJSON:
		c.Output.Format = config.FormatJSON
	}
	if flagOutputDir != "" {
		c.Output.Dir = flagOutputDir
	}
	if flagTimeout > 0 {
		c.Fetch.Timeout = flagTimeout
	}
	if flagUserAgent != "" {
		c.Fetch.UserAgent = flagUserAgent
	}
	if flagMaxPages > 0 {
		c.Site.MaxPages = flagMaxPages
	}
	if flagWorkers > 0 {
		c.Site.Workers = flagWorkers
	}
}

// runOne writes the report for a single source.
func runOne(
	ctx context.Context,
	cmd *cobra.Command,
	source string,
	fetcher core.Fetcher,
	builder *page.Builder,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, err := processSource(ctx, source, cmd.InOrStdin(), fetcher, builder, renderer)
	if err != nil {
		return err
	}
	path, err := writer.WriteOne(source, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// runSite discovers the pages of a site and audits them with a bounded
// worker pool. A failing page is logged and skipped.
func runSite(
	ctx context.Context,
	stdout io.Writer,
	rawURL string,
	fetcher core.Fetcher,
	builder *page.Builder,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	log.Info().Str("url", rawURL).Msg("discovering pages")
	urls, err := crawl.NewDiscoverer(fetcher, cfg.Site.MaxPages).Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	log.Info().Int("pages", len(urls)).Int("workers", cfg.Site.Workers).Msg("auditing site")

	var (
		failed atomic.Int64
		outMu  sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Site.Workers)
	for _, pageURL := range urls {
		g.Go(func() error {
			data, err := processSource(gctx, pageURL, nil, fetcher, builder, renderer)
			if err != nil {
				log.Error().Err(err).Str("url", pageURL).Msg("page failed")
				failed.Add(1)
				return nil
			}
			path, err := writer.WriteSite(pageURL, data, renderer.Extension())
			if err != nil {
				log.Error().Err(err).Str("url", pageURL).Msg("write failed")
				failed.Add(1)
				return nil
			}
			outMu.Lock()
			fmt.Fprintf(stdout, "✓ Written: %s\n", path)
			outMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if n := failed.Load(); n > 0 {
		log.Warn().Int64("failed", n).Int("pages", len(urls)).Msg("site audit finished with failures")
		if int(n) == len(urls) {
			return fmt.Errorf("all %d pages failed", n)
		}
	}
	return nil
}

// processSource reads one document and renders its report.
func processSource(
	ctx context.Context,
	source string,
	stdin io.Reader,
	fetcher core.Fetcher,
	builder *page.Builder,
	renderer core.Renderer,
) ([]byte, error) {
	html, err := readSource(ctx, source, stdin, fetcher)
	if err != nil {
		return nil, err
	}

	report, err := builder.Build(ctx, source, html)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// readSource returns the HTML behind source: a URL is fetched, "-" reads
// stdin and anything else is read as a file.
func readSource(ctx context.Context, source string, stdin io.Reader, fetcher core.Fetcher) (string, error) {
	switch {
	case source == "-":
		if stdin == nil {
			return "", fmt.Errorf("no standard input available")
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	case isURL(source):
		result, err := fetcher.Fetch(ctx, source)
		if err != nil {
			return "", fmt.Errorf("fetch: %w", err)
		}
		return result.HTML, nil
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return string(b), nil
	}
}

func isURL(source string) bool {
	_, err := fetch.ValidateURL(source)
	return err == nil
}

// selectRenderer creates the Renderer for the configured format.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case config.FormatMarkdown:
		return render.NewMarkdownRenderer(), nil
	case config.FormatJSON:
		return render.NewJSONRenderer(), nil
	case config.FormatPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no renderer for output format %q", format)
	}
}
