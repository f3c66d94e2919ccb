// Package cmdutil holds the flag set and run plumbing shared by the
// tnsdedup and tnsmerge commands.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/davidvella/tnsdedup"
	"github.com/davidvella/tnsdedup/dedup"
	"github.com/davidvella/tnsdedup/internal/logging"
	"github.com/davidvella/tnsdedup/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	flagLenient     = "lenient"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagMetricsFile = "metrics-file"
)

// Flags returns the common flags. Each can also be set through an
// environment variable named <prefix>_<FLAG>.
func Flags(envPrefix string) []cli.Flag {
	env := func(name string) []string {
		return []string{envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
	}
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    flagLenient,
			Usage:   "treat a malformed or truncated line as the end of input",
			EnvVars: env(flagLenient),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Value:   "warn",
			Usage:   "log level (debug, info, warn, error)",
			EnvVars: env(flagLogLevel),
		},
		&cli.StringFlag{
			Name:    flagLogFormat,
			Value:   string(logging.FormatText),
			Usage:   "log format (text, json)",
			EnvVars: env(flagLogFormat),
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			Usage:   "write Prometheus metrics to this textfile when the run succeeds",
			EnvVars: env(flagMetricsFile),
		},
	}
}

// Env is the per-run state built from the flags.
type Env struct {
	Logger      *logrus.Logger
	Metrics     *metrics.Metrics
	lenient     bool
	metricsFile string
	start       time.Time
}

// Setup builds the logger and metrics from the parsed flags. Logs go to the
// application's error writer.
func Setup(c *cli.Context) (*Env, error) {
	logger, err := logging.New(c.App.ErrWriter, c.String(flagLogLevel), logging.Format(c.String(flagLogFormat)))
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	return &Env{
		Logger:      logger,
		Metrics:     metrics.New(),
		lenient:     c.Bool(flagLenient),
		metricsFile: c.String(flagMetricsFile),
		start:       time.Now(),
	}, nil
}

// Options translates the environment into run options.
func (e *Env) Options() []tnsdedup.Option {
	opts := []tnsdedup.Option{
		tnsdedup.WithLenient(e.lenient),
		tnsdedup.WithLogger(logging.Component(e.Logger, "tnsdedup")),
	}
	if e.metricsFile != "" {
		opts = append(opts, tnsdedup.WithObserver(e.Metrics))
	}
	return opts
}

// Finish reports the outcome of a run: the summary line on success, an exit
// error with status 1 otherwise.
func (e *Env) Finish(c *cli.Context, stats dedup.Stats, err error) error {
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", c.App.Name, err), 1)
	}

	fmt.Fprintf(c.App.ErrWriter, "seen: %d pruned: %d\n", stats.Seen, stats.Pruned)

	if e.metricsFile != "" {
		e.Metrics.Duration.Set(time.Since(e.start).Seconds())
		if err := e.Metrics.WriteTextfile(e.metricsFile); err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", c.App.Name, err), 1)
		}
		e.Logger.WithField("action", "metrics").WithField("path", e.metricsFile).Debug("metrics written")
	}
	return nil
}

// UsageError returns the exit error for a wrong argument count.
func UsageError(c *cli.Context) error {
	return cli.Exit(fmt.Sprintf("usage: %s [flags] %s", c.App.Name, c.App.ArgsUsage), 1)
}

// ParseModes parses the nmodes argument.
func ParseModes(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, cli.Exit(fmt.Sprintf("invalid nmodes %q: must be a positive integer", s), 1)
	}
	return n, nil
}

// ExpandGlobs expands shell patterns among paths that the shell left alone.
// "-" is passed through.
func ExpandGlobs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "-" || !strings.ContainsAny(p, "*?[") {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("bad glob %q: %v", p, err), 1)
		}
		if len(matches) == 0 {
			return nil, cli.Exit(fmt.Sprintf("no input matched %q", p), 1)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// Main runs app with args and maps the outcome to a process exit status.
// The app must set ExitErrHandler so that exit errors come back here.
func Main(ctx context.Context, app *cli.App, args []string, stderr io.Writer) int {
	err := app.RunContext(ctx, args)
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, err)

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}
