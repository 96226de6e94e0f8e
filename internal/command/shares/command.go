package shares

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bornholm/darkroom/internal/command/common"
	"github.com/bornholm/darkroom/internal/core/service/shares"
	"github.com/bornholm/darkroom/internal/setup"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramConfirm = "confirm"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "shares",
		Usage: "Share links maintenance",
		Subcommands: []*cli.Command{
			DedupeCommand(),
		},
	}
}

func DedupeCommand() *cli.Command {
	return &cli.Command{
		Name:  "dedupe",
		Usage: "Keep a single share link per gallery",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  paramConfirm,
				Usage: "Delete the duplicated share links instead of only previewing them",
				Value: false,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := common.GetConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			deduplicator, err := setup.NewShareDeduplicatorFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not create share deduplicator")
			}

			return dedupe(ctx, cCtx.App.Writer, deduplicator, cCtx.Bool(paramConfirm))
		},
	}
}

type Deduplicator interface {
	Preview(ctx context.Context) (*shares.Resolution, error)
	Apply(ctx context.Context, resolution *shares.Resolution) (int, error)
}

func dedupe(ctx context.Context, w io.Writer, deduplicator Deduplicator, confirm bool) error {
	resolution, err := deduplicator.Preview(ctx)
	if err != nil {
		return errors.Wrap(err, "could not resolve duplicated share links")
	}

	printResolution(w, resolution, time.Now())

	if !confirm {
		if len(resolution.Remove) > 0 {
			fmt.Fprintln(w, "Dry run, use --confirm to delete the duplicated share links.")
		}
		return nil
	}

	deleted, err := deduplicator.Apply(ctx, resolution)
	if err != nil {
		fmt.Fprintf(w, "Deleted %s share link(s) before failure.\n", humanize.Comma(int64(deleted)))
		return errors.WithStack(err)
	}

	fmt.Fprintf(w, "Deleted %s share link(s).\n", humanize.Comma(int64(deleted)))

	return nil
}

func printResolution(w io.Writer, resolution *shares.Resolution, now time.Time) {
	duplicated := 0

	for _, g := range resolution.Groups {
		if !g.Duplicated() {
			continue
		}

		duplicated++

		fmt.Fprintf(w, "Gallery %s (%d links)\n", g.GalleryID, len(g.Links))
		fmt.Fprintf(w, "  keep   %s  active=%v  created %s\n", g.Keep.ID(), g.Keep.Active(), humanize.RelTime(g.Keep.CreatedAt(), now, "ago", "from now"))

		for _, l := range g.Remove {
			fmt.Fprintf(w, "  remove %s  active=%v  created %s\n", l.ID(), l.Active(), humanize.RelTime(l.CreatedAt(), now, "ago", "from now"))
		}
	}

	fmt.Fprintf(w, "%s galleries, %s with duplicates, %s share link(s) to remove.\n",
		humanize.Comma(int64(len(resolution.Groups))),
		humanize.Comma(int64(duplicated)),
		humanize.Comma(int64(len(resolution.Remove))),
	)
}
