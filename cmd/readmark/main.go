// ABOUTME: Command line tool that prints a web article or discussion thread as Markdown
// ABOUTME: Uses the same services as the API server with caching disabled

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"digests-reader-api/core/domain"
	"digests-reader-api/core/interfaces"
	"digests-reader-api/core/reddit"
	logruslogger "digests-reader-api/infrastructure/logger/logrus"
	"digests-reader-api/pkg/bootstrap"
	"digests-reader-api/pkg/config"
	"digests-reader-api/pkg/featureflags"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line
type cliFlags struct {
	discussion bool
	browser    bool
	noRobots   bool
	timeout    time.Duration
	timeZone   string
	verbose    bool
	url        string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "readmark: %v\n", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "readmark: %v\n", err)
		return 1
	}
	applyFlags(cfg, opts)

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := logruslogger.New(logruslogger.Options{Level: level, Format: "text", Output: stderr})
	defer logger.Close()

	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.CacheEnabled:     false,
		featureflags.BrowserRendering: opts.browser,
	})
	app, err := bootstrap.Build(cfg, flags, logger, bootstrap.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "readmark: %v\n", err)
		return 1
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	markdown, err := render(ctx, app.Articles, app.Discussions, opts)
	if err != nil {
		fmt.Fprintf(stderr, "readmark: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, markdown)
	return 0
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	var opts cliFlags

	fs := flag.NewFlagSet("readmark", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: readmark [flags] <url>")
		fs.PrintDefaults()
	}
	fs.BoolVarP(&opts.discussion, "discussion", "d", false, "treat the URL as a Reddit thread")
	fs.BoolVarP(&opts.browser, "browser", "b", false, "render the page in headless Chrome")
	fs.BoolVar(&opts.noRobots, "no-robots", false, "ignore robots.txt")
	fs.DurationVarP(&opts.timeout, "timeout", "t", 30*time.Second, "overall time limit")
	fs.StringVar(&opts.timeZone, "tz", "", "time zone for discussion dates (default from RENDER_TIMEZONE)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, fmt.Errorf("expected exactly one URL, got %d", fs.NArg())
	}
	if opts.timeout <= 0 {
		return opts, fmt.Errorf("timeout must be positive")
	}
	opts.url = fs.Arg(0)
	if !opts.discussion && reddit.IsDiscussionURL(opts.url) {
		opts.discussion = true
	}
	return opts, nil
}

func applyFlags(cfg *config.Config, opts cliFlags) {
	if opts.timeZone != "" {
		cfg.Render.TimeZone = opts.timeZone
	}
	if opts.noRobots {
		cfg.Fetch.RespectRobots = false
	}
	if opts.browser {
		cfg.Fetch.PageSource = config.PageSourceBrowser
	}
	if secs := int(opts.timeout / time.Second); secs > 0 && secs < cfg.Fetch.TimeoutSeconds {
		cfg.Fetch.TimeoutSeconds = secs
	}
}

func render(ctx context.Context, articles interfaces.ArticleService, discussions interfaces.DiscussionService, opts cliFlags) (string, error) {
	if opts.discussion {
		view, err := discussions.FetchDiscussion(ctx, opts.url)
		if err != nil {
			return "", err
		}
		if view.Status == domain.StatusEmpty {
			return "", fmt.Errorf("no discussion found at %s", opts.url)
		}
		return view.Markdown, nil
	}

	view, err := articles.ExtractArticle(ctx, opts.url)
	if err != nil {
		return "", err
	}
	return view.Markdown, nil
}
