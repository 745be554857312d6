package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/supergroups/game/puzzle"
)

func TestAnalyzeDefinition_Default(t *testing.T) {
	var out bytes.Buffer
	if !analyzeDefinition(&out, puzzle.Default()) {
		t.Fatalf("Expected default puzzle to be valid, got:\n%s", out.String())
	}

	for _, want := range []string{
		"Name: classic",
		"Categories: 16",
		"Super-groups: 4",
		"Botanical #FFFF99",
		"Herbs",
		"✅ Definition is valid",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in report", want)
		}
	}
}

func TestAnalyzeDefinition_Invalid(t *testing.T) {
	def := puzzle.Default()
	def.Categories = def.Categories[:15]

	var out bytes.Buffer
	if analyzeDefinition(&out, def) {
		t.Fatal("Expected truncated puzzle to be invalid")
	}
	if !strings.Contains(out.String(), "INVALID") {
		t.Errorf("Expected INVALID in report, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "unknown category") {
		t.Errorf("Expected missing category to be flagged, got:\n%s", out.String())
	}
}

func TestOverlappingWords(t *testing.T) {
	def := puzzle.Default()
	def.Categories[0].Words[0] = "Mintleaf"

	pairs := overlappingWords(def)
	found := false
	for _, p := range pairs {
		if p == "Mintleaf ⊃ Mint" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected Mintleaf ⊃ Mint in %v", pairs)
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()

	data, err := json.Marshal(puzzle.Default())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	valid := filepath.Join(dir, "classic.json")
	if err := os.WriteFile(valid, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var out bytes.Buffer
	if !analyzeFile(&out, valid) {
		t.Errorf("Expected file to analyze cleanly, got:\n%s", out.String())
	}

	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte("{not json"), 0644)
	out.Reset()
	if analyzeFile(&out, broken) || !strings.Contains(out.String(), "Error parsing JSON") {
		t.Errorf("Expected parse error, got:\n%s", out.String())
	}

	out.Reset()
	if analyzeFile(&out, filepath.Join(dir, "missing.json")) || !strings.Contains(out.String(), "Error reading file") {
		t.Errorf("Expected read error, got:\n%s", out.String())
	}
}

func TestAnalyzeDefinition_MissingMessage(t *testing.T) {
	def := puzzle.Default()
	def.Messages.Mismatch = ""

	var out bytes.Buffer
	if analyzeDefinition(&out, def) {
		t.Fatal("Expected puzzle without a mismatch message to be invalid")
	}
	if !strings.Contains(out.String(), "messages.mismatch is required") {
		t.Errorf("Expected missing message to be reported, got:\n%s", out.String())
	}
}
