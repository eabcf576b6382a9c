package linter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/motoed/geom"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/bloodmagesoftware/motoed/terrain"
)

// Rule names a check. They appear in the report.
type Rule string

const (
	RuleNoTerrain      Rule = "no-terrain"
	RuleFewVertices    Rule = "few-vertices"
	RuleSelfIntersects Rule = "self-intersection"
	RuleStartOutside   Rule = "start-outside"
	RuleNoFlower       Rule = "no-flower"
	RuleOutOfBounds    Rule = "out-of-bounds"
	RuleFormat         Rule = "format"
)

// Problem is one rule violation in a level.
type Problem struct {
	Rule    Rule
	Message string
}

// Check runs every rule on l.
func Check(l *level.Level) []Problem {
	var problems []Problem
	add := func(rule Rule, format string, args ...any) {
		problems = append(problems, Problem{Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	var rings [][]level.Position
	for i, p := range l.Polygons {
		if len(p.Vertices) < 3 {
			add(RuleFewVertices, "polygon %d has %d vertices, at least 3 are needed", i, len(p.Vertices))
			continue
		}
		if geom.SelfIntersects(p.Vertices) {
			add(RuleSelfIntersects, "polygon %d crosses itself", i)
		}
		if terrain.IsTerrain(p) {
			rings = append(rings, p.Vertices)
		}
	}

	if len(rings) == 0 {
		add(RuleNoTerrain, "level has no terrain polygons")
	} else if !inside(l.Start, rings) {
		add(RuleStartOutside, "start %v is not inside the playable area", l.Start)
	}

	if len(l.Flowers) == 0 {
		add(RuleNoFlower, "level has no flower and can not be finished")
	}

	if bounds, ok := geom.Bounds(rings); ok {
		for _, o := range l.Objects() {
			if o.Ref.Kind == level.KindStart || o.Ref.Kind == level.KindPicture || bounds.Contains(o.Position) {
				continue
			}
			add(RuleOutOfBounds, "%s at %v is outside the terrain", o.Ref.Kind, o.Position)
		}
	}
	return problems
}

// inside reports whether p is enclosed by an odd number of rings.
func inside(p level.Position, rings [][]level.Position) bool {
	depth := 0
	for _, r := range rings {
		if geom.IsPointInPolygon(p, r) {
			depth++
		}
	}
	return depth%2 == 1
}

// Lint checks every level file in paths (files or directories) and prints
// a report to stdout.
func Lint(paths ...string) error {
	return LintTo(os.Stdout, paths...)
}

// LintTo is Lint with the report written to out.
func LintTo(out io.Writer, paths ...string) error {
	fmt.Fprintln(out, "🔍 Linting levels...")

	files, err := LevelFiles(paths...)
	if err != nil {
		return err
	}

	violationCount := 0
	for _, path := range files {
		problems, err := lintFile(path)
		if err != nil {
			return fmt.Errorf("checking file %s: %w", path, err)
		}
		for _, p := range problems {
			fmt.Fprintf(out,
				"  [ERROR] File: %s\n"+
					"    Rule: %s\n"+
					"    Problem: %s\n",
				path, p.Rule, p.Message,
			)
			fmt.Fprintln(out, strings.Repeat("-", 60))
		}
		violationCount += len(problems)
	}

	if violationCount > 0 {
		return fmt.Errorf("linter failed: found %d problems in %d files", violationCount, len(files))
	}

	fmt.Fprintf(out, "✅ Linter Passed: %d levels checked.\n", len(files))
	return nil
}

func lintFile(path string) ([]Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	l, err := levelio.Decode(data)
	if err != nil {
		return []Problem{{Rule: RuleFormat, Message: err.Error()}}, nil
	}
	return Check(l), nil
}

// LevelFiles expands paths into level files. Directories are walked for
// .lev files; files are taken as given.
func LevelFiles(paths ...string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".lev") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking directory %s: %w", p, err)
		}
	}
	return files, nil
}
