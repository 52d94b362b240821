package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/logicossoftware/go-rsrc"
	"github.com/logicossoftware/go-rsrc/internal/archive"
)

// maxDocumentSize bounds decompressed command inputs. Exported
// documents for real containers stay well under this.
const maxDocumentSize = 1 << 31

func newLogger(levelStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level}))
}

// readInput loads a file, undoing whole-file compression recognized
// from the filename suffix.
func readInput(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	algo := archive.FromExt(path)
	if algo == archive.None {
		return raw, nil
	}
	slog.Debug("decompressing input", "path", path, "algorithm", string(algo))
	return archive.Decompress(algo, raw, maxDocumentSize)
}

// writeOutput stores data, compressing it first when algo is not None
// and appending the matching suffix to path.
func writeOutput(path string, data []byte, algo archive.Algorithm) (string, error) {
	out, err := archive.Compress(algo, data)
	if err != nil {
		return "", err
	}
	path += algo.Ext()
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func decodeContainer(path string, strict bool) (*rsrc.Container, error) {
	raw, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var opts []rsrc.ReadOption
	if strict {
		opts = append(opts, rsrc.WithStrict(true))
	}
	c, err := rsrc.Decode(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	for _, warn := range c.Warnings {
		slog.Warn("decode warning", "detail", warn.String())
	}
	return c, nil
}
