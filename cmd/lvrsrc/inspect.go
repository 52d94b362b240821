package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/logicossoftware/go-rsrc"
)

type inspectReport struct {
	File     string         `json:"file"`
	Size     int64          `json:"size"`
	Type     string         `json:"type"`
	Ext      string         `json:"ext"`
	Layout   string         `json:"layout"`
	Version  string         `json:"version"`
	Blocks   []inspectBlock `json:"blocks"`
	Warnings []string       `json:"warnings,omitempty"`
}

type inspectBlock struct {
	Tag      string           `json:"tag"`
	Sections []inspectSection `json:"sections"`
}

type inspectSection struct {
	Index  int32  `json:"index"`
	Name   string `json:"name,omitempty"`
	Coding string `json:"coding"`
	Size   int    `json:"size"`
}

func inspectCmd() *cli.Command {
	var (
		path   string
		asJSON bool
		strict bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the block and section directory of an RSRC file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to RSRC file",
				Destination: &path,
				Required:    true,
			},
			&cli.BoolFlag{Name: "json", Usage: "emit machine-readable JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "strict", Usage: "treat decode warnings as errors", Destination: &strict},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_ = ctx

			stat, err := os.Stat(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: stat %q: %v", path, err), 1)
			}
			c, err := decodeContainer(path, strict)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			report := buildReport(path, stat.Size(), c)
			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: marshal report: %v", err), 1)
				}
				fmt.Println(string(out))
				return nil
			}
			printReport(report)
			return nil
		},
	}
}

func buildReport(path string, size int64, c *rsrc.Container) inspectReport {
	v := rsrc.ResolveVersion(c)
	r := inspectReport{
		File:    path,
		Size:    size,
		Type:    c.TypeTag.String(),
		Ext:     c.FileType().Ext(),
		Layout:  c.Layout.String(),
		Version: formatVersion(v),
	}
	for _, b := range c.Blocks {
		ib := inspectBlock{Tag: b.Tag.String()}
		for _, s := range b.Sections {
			ib.Sections = append(ib.Sections, inspectSection{
				Index:  s.Index,
				Name:   string(s.Name),
				Coding: s.Coding.String(),
				Size:   len(s.Data),
			})
		}
		r.Blocks = append(r.Blocks, ib)
	}
	for _, w := range c.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

func printReport(r inspectReport) {
	fmt.Printf("RSRC Inspect: %s (%d bytes)\n", r.File, r.Size)
	row("type", fmt.Sprintf("%s (.%s)", r.Type, r.Ext))
	row("layout", r.Layout)
	row("version", r.Version)
	rowInt("blocks", len(r.Blocks))

	section("Blocks")
	for _, b := range r.Blocks {
		for _, s := range b.Sections {
			name := s.Name
			if name == "" {
				name = "-"
			}
			fmt.Printf("%-6s idx=%-4d coding=%-5s size=%-10d name=%s\n",
				b.Tag, s.Index, s.Coding, s.Size, name)
		}
	}

	if len(r.Warnings) > 0 {
		section("Warnings")
		for _, w := range r.Warnings {
			fmt.Println(w)
		}
	}
}

func formatVersion(v rsrc.VersionRecord) string {
	s := fmt.Sprintf("%d.%d", v.Major, v.Minor)
	if v.Bugfix != 0 {
		s += fmt.Sprintf(".%d", v.Bugfix)
	}
	s += " " + v.Stage.String()
	if v.Build != 0 {
		s += fmt.Sprintf(" build %d", v.Build)
	}
	return s
}

func section(title string) {
	line := strings.Repeat("-", len(title)+8)
	fmt.Printf("\n%s\n--- %s ---\n%s\n", line, title, line)
}

func row(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("%-12s %s\n", label+":", value)
}

func rowInt(label string, v int) {
	if v == 0 {
		return
	}
	row(label, fmt.Sprintf("%d", v))
}
