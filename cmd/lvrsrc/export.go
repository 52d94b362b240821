package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/logicossoftware/go-rsrc"
	"github.com/logicossoftware/go-rsrc/internal/archive"
)

func exportCmd() *cli.Command {
	var (
		path     string
		out      string
		compress string
		codePage int64
		strict   bool
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Export an RSRC file as an editable XML document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to RSRC file",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output document path",
				Destination: &out,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "compress",
				Usage:       "whole-file compression (none, zstd, lz4, br)",
				Value:       "none",
				Destination: &compress,
			},
			&cli.IntFlag{
				Name:        "code-page",
				Usage:       "text code page for string blocks",
				Value:       rsrc.DefaultCodePage,
				Destination: &codePage,
			},
			&cli.BoolFlag{Name: "strict", Usage: "treat decode warnings as errors", Destination: &strict},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			algo, err := archive.Parse(compress)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			c, err := decodeContainer(path, strict)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			opts := []rsrc.ReadOption{rsrc.WithCodePage(int(codePage))}
			if strict {
				opts = append(opts, rsrc.WithStrict(true))
			}
			tree, err := rsrc.DecodeTree(c, opts...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build tree: %v", err), 1)
			}
			doc, err := rsrc.MarshalDocument(tree)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: marshal document: %v", err), 1)
			}

			written, err := writeOutput(out, doc, algo)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", out, err), 1)
			}
			slog.Info("exported", "from", path, "to", written, "bytes", len(doc))
			fmt.Println(written)
			return nil
		},
	}
}
