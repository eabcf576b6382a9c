package formatter

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/bloodmagesoftware/motoed/linter"
)

// Format rewrites every level file in paths in canonical form: polygons
// wound for their role, degenerate polygons dropped, integer coordinates
// nudged and objects in file order. With check set nothing is written and
// an error lists how many files would change.
func Format(paths []string, check bool) error {
	return FormatTo(os.Stdout, paths, check)
}

// FormatTo is Format with progress written to out.
func FormatTo(out io.Writer, paths []string, check bool) error {
	if check {
		fmt.Fprintln(out, "Checking level formatting...")
	} else {
		fmt.Fprintln(out, "Formatting levels...")
	}

	files, err := linter.LevelFiles(paths...)
	if err != nil {
		return err
	}

	changed := 0
	for _, path := range files {
		diff, err := formatFile(path, check)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", path, err)
		}
		if !diff {
			continue
		}
		changed++
		if check {
			fmt.Fprintf(out, "  %s needs formatting\n", path)
		} else {
			fmt.Fprintf(out, "  formatted %s\n", path)
		}
	}

	if check && changed > 0 {
		return fmt.Errorf("format check failed: %d of %d files need formatting", changed, len(files))
	}
	fmt.Fprintf(out, "✅ Formatting completed (%d files)\n", len(files))
	return nil
}

// formatFile reports whether the canonical form of path differs from its
// contents, and writes it unless check is set.
func formatFile(path string, check bool) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	l, err := levelio.Decode(data)
	if err != nil {
		return false, err
	}
	formatted, err := levelio.Encode(l)
	if err != nil {
		return false, err
	}
	if bytes.Equal(data, formatted) {
		return false, nil
	}
	if check {
		return true, nil
	}
	if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
