package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/bornholm/darkroom/internal/command/common"
	"github.com/bornholm/darkroom/internal/core/service/reconcile"
	"github.com/bornholm/darkroom/internal/setup"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramFolder = "folder"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "assets",
		Usage: "Remote assets maintenance",
		Subcommands: []*cli.Command{
			DeleteFolderCommand(),
		},
	}
}

func DeleteFolderCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete-folder",
		Usage: "Delete every asset stored under a folder, then the folder itself",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     paramFolder,
				Usage:    "Folder prefix to delete",
				Required: true,
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := common.GetConfig(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			reconciler, err := setup.NewFolderReconcilerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not create folder reconciler")
			}

			return deleteFolder(ctx, cCtx.App.Writer, reconciler, cCtx.String(paramFolder))
		},
	}
}

type FolderReconciler interface {
	Reconcile(ctx context.Context, prefix string) (*reconcile.Result, error)
}

func deleteFolder(ctx context.Context, w io.Writer, reconciler FolderReconciler, folder string) error {
	result, err := reconciler.Reconcile(ctx, folder)
	if result != nil {
		printResult(w, folder, result)
	}
	if err != nil {
		return errors.Wrapf(err, "could not delete folder '%s'", folder)
	}

	return nil
}

func printResult(w io.Writer, folder string, result *reconcile.Result) {
	fmt.Fprintf(w, "folder:           %s\n", folder)
	fmt.Fprintf(w, "deletedCount:     %s\n", humanize.Comma(int64(result.TotalDeleted)))
	fmt.Fprintf(w, "iterations:       %d\n", result.Iterations)
	fmt.Fprintf(w, "failedChunks:     %d\n", result.FailedChunks)
	fmt.Fprintf(w, "containerRemoved: %v\n", result.ContainerRemoved)
}
