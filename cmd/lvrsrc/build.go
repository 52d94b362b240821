package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/logicossoftware/go-rsrc"
)

func buildCmd() *cli.Command {
	var (
		path     string
		out      string
		codePage int64
	)

	return &cli.Command{
		Name:  "build",
		Usage: "Rebuild an RSRC file from an exported XML document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to XML document (suffix .zstd/.lz4/.br is decompressed)",
				Destination: &path,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output RSRC path",
				Destination: &out,
				Required:    true,
			},
			&cli.IntFlag{
				Name:        "code-page",
				Usage:       "text code page for string blocks",
				Value:       rsrc.DefaultCodePage,
				Destination: &codePage,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			doc, err := readInput(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", path, err), 1)
			}
			tree, err := rsrc.UnmarshalDocument(doc)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: parse document: %v", err), 1)
			}
			c, err := rsrc.EncodeTree(tree, rsrc.WithWriteCodePage(int(codePage)))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode tree: %v", err), 1)
			}
			raw, err := c.Encode()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode container: %v", err), 1)
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", out, err), 1)
			}
			slog.Info("built", "from", path, "to", out, "bytes", len(raw))
			fmt.Println(out)
			return nil
		},
	}
}
