package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bornholm/darkroom/internal/build"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var ErrInvalidLogFormat = errors.New("invalid log format")

func Main(name string, usage string, commands ...*cli.Command) {
	app := NewApp(name, usage, commands...)

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// NewApp returns the darkroom command line application. Global flags
// configure the working directory and the default logger before any
// subcommand runs.
func NewApp(name string, usage string, commands ...*cli.Command) *cli.App {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  build.LongVersion,
		Before:   setupEnvironment,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"DARKROOM_CLI_DEBUG"},
				Usage:   "Log at debug level and print error stacks",
			},
			&cli.StringFlag{
				Name:    "workdir",
				EnvVars: []string{"DARKROOM_CLI_WORKDIR"},
				Usage:   "The working directory",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"DARKROOM_CLI_LOG_LEVEL"},
				Usage:   "Logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-format",
				EnvVars: []string{"DARKROOM_CLI_LOG_FORMAT"},
				Usage:   "Logging format (text, json)",
				Value:   LogFormatText,
			},
		},
		ExitErrHandler: reportError,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}

func setupEnvironment(ctx *cli.Context) error {
	if workdir := ctx.String("workdir"); workdir != "" {
		if err := os.Chdir(workdir); err != nil {
			return errors.Wrap(err, "could not change working directory")
		}
	}

	level, err := parseLogLevel(ctx.String("log-level"))
	if err != nil {
		return errors.WithStack(err)
	}

	if ctx.Bool("debug") {
		level = slog.LevelDebug
	}

	logger, err := newLogger(ctx.App.ErrWriter, ctx.String("log-format"), level)
	if err != nil {
		return errors.WithStack(err)
	}

	slog.SetDefault(logger)

	return nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return level, errors.Wrapf(err, "invalid log level '%s'", raw)
	}

	return level, nil
}

func newLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler

	switch format {
	case LogFormatText, "":
		handler = slog.NewTextHandler(w, opts)
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, errors.Wrapf(ErrInvalidLogFormat, "'%s'", format)
	}

	return slog.New(slogx.ContextHandler{Handler: handler}), nil
}

func reportError(ctx *cli.Context, err error) {
	if err == nil {
		return
	}

	if ctx.Bool("debug") {
		slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		return
	}

	slog.ErrorContext(ctx.Context, err.Error())
}
