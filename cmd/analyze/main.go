// Command analyze prints a human-readable breakdown of puzzle definitions:
// the super-groups with their categories and words, the validation result,
// and words that contain another word of the puzzle (a common source of
// red herrings). With no arguments it analyzes the compiled-in puzzle;
// otherwise each argument is a JSON puzzle file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/wricardo/supergroups/game/puzzle"
)

func main() {
	if len(os.Args) < 2 {
		if !analyzeDefinition(os.Stdout, puzzle.Default()) {
			os.Exit(1)
		}
		return
	}

	ok := true
	for _, path := range os.Args[1:] {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		if !analyzeFile(os.Stdout, path) {
			ok = false
		}
	}
	if !ok {
		os.Exit(1)
	}
}

func analyzeFile(w io.Writer, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error reading file: %v\n", err)
		return false
	}

	var def puzzle.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		fmt.Fprintf(w, "Error parsing JSON: %v\n", err)
		return false
	}
	return analyzeDefinition(w, &def)
}

// analyzeDefinition writes the report and reports whether the puzzle is valid
func analyzeDefinition(w io.Writer, def *puzzle.Definition) bool {
	fmt.Fprintf(w, "Name: %s\n", def.Name)
	if def.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", def.Description)
	}
	fmt.Fprintf(w, "Categories: %d\n", len(def.Categories))
	fmt.Fprintf(w, "Super-groups: %d\n", len(def.SuperGroups))

	for _, group := range def.SuperGroups {
		fmt.Fprintf(w, "\n[%d] %s %s\n", group.ID, group.Name, def.ColorOf(group.ID))
		for _, id := range group.CategoryIDs {
			cat, ok := def.Category(id)
			if !ok {
				fmt.Fprintf(w, "   %2d ??? (unknown category)\n", id)
				continue
			}
			fmt.Fprintf(w, "   %2d %-18s %s\n", cat.ID, cat.Name, strings.Join(cat.Words[:], ", "))
		}
	}
	fmt.Fprintln(w)

	if err := puzzle.Validate(def); err != nil {
		fmt.Fprintf(w, "⚠️  INVALID: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "✅ Definition is valid\n")

	overlaps := overlappingWords(def)
	if len(overlaps) > 0 {
		fmt.Fprintf(w, "⚠️  %d words contain another word of the puzzle:\n", len(overlaps))
		for _, o := range overlaps {
			fmt.Fprintf(w, "   %s\n", o)
		}
	} else {
		fmt.Fprintf(w, "✅ No word contains another word of the puzzle\n")
	}
	return true
}

// overlappingWords lists "outer ⊃ inner" pairs across different categories
func overlappingWords(def *puzzle.Definition) []string {
	words := def.Words()
	var pairs []string
	for _, outer := range words {
		for _, inner := range words {
			if outer == inner || !strings.Contains(strings.ToLower(outer), strings.ToLower(inner)) {
				continue
			}
			oc, _ := def.CategoryOf(outer)
			ic, _ := def.CategoryOf(inner)
			if oc == ic {
				continue
			}
			pairs = append(pairs, fmt.Sprintf("%s ⊃ %s", outer, inner))
		}
	}
	sort.Strings(pairs)
	return pairs
}
