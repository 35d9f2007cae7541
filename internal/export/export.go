// Package export writes process results as CSV, JSON or SVG.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/stochsim/internal/experiment"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	SVG  Format = "svg"
)

var (
	ErrFormat   = errors.New("export: unknown format")
	ErrNoResult = errors.New("export: nil result")
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, SVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Write encodes r to w.
func Write(w io.Writer, f Format, r *experiment.Result) error {
	if r == nil {
		return ErrNoResult
	}
	switch f {
	case CSV:
		return WriteCSV(w, r)
	case JSON:
		return WriteJSON(w, r)
	case SVG:
		_, err := io.WriteString(w, TrajectorySVG(r, 800, 600, "#00ffff"))
		return err
	}
	return fmt.Errorf("%w: %q", ErrFormat, f)
}

// WriteFile creates path and encodes r into it.
func WriteFile(path string, f Format, r *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
