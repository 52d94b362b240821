package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/logicossoftware/go-rsrc"
	"github.com/logicossoftware/go-rsrc/internal/archive"
)

func extractCmd() *cli.Command {
	var (
		path     string
		out      string
		tag      string
		index    int64
		compress string
	)

	return &cli.Command{
		Name:  "extract",
		Usage: "Dump one section's decoded payload to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to RSRC file",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "block",
				Aliases:     []string{"b"},
				Usage:       "4-character block tag",
				Destination: &tag,
				Required:    true,
			},
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "section index within the block",
				Destination: &index,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path",
				Destination: &out,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "compress",
				Usage:       "whole-file compression (none, zstd, lz4, br)",
				Value:       "none",
				Destination: &compress,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			algo, err := archive.Parse(compress)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			c, err := decodeContainer(path, false)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			b := c.FindBlock(rsrc.MakeTag(tag))
			if b == nil {
				return cli.Exit(fmt.Sprintf("error: no block %q in %s", tag, path), 1)
			}
			var sec *rsrc.Section
			for _, s := range b.Sections {
				if int64(s.Index) == index {
					sec = s
					break
				}
			}
			if sec == nil {
				return cli.Exit(fmt.Sprintf("error: block %q has no section %d", tag, index), 1)
			}

			written, err := writeOutput(out, sec.Data, algo)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", out, err), 1)
			}
			slog.Info("extracted", "block", tag, "section", index, "to", written, "bytes", len(sec.Data))
			fmt.Println(written)
			return nil
		},
	}
}
