package puzzle

import (
	"errors"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	def := Default()
	if err := Validate(def); err != nil {
		t.Fatalf("Default definition should be valid: %v", err)
	}

	if len(def.Words()) != WordCount {
		t.Errorf("Expected %d words, got %d", WordCount, len(def.Words()))
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Categories[0].Name = "Changed"

	b := Default()
	if b.Categories[0].Name != "Trees" {
		t.Errorf("Expected a fresh copy, got category name %q", b.Categories[0].Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Definition)
	}{
		{"missing name", func(d *Definition) { d.Name = "" }},
		{"too few categories", func(d *Definition) { d.Categories = d.Categories[:15] }},
		{"wrong category id", func(d *Definition) { d.Categories[3].ID = 7 }},
		{"empty category name", func(d *Definition) { d.Categories[2].Name = " " }},
		{"empty word", func(d *Definition) { d.Categories[5].Words[1] = "" }},
		{"duplicate word", func(d *Definition) { d.Categories[1].Words[0] = "Oak" }},
		{"too few super-groups", func(d *Definition) { d.SuperGroups = d.SuperGroups[:3] }},
		{"wrong super-group id", func(d *Definition) { d.SuperGroups[1].ID = 0 }},
		{"empty super-group name", func(d *Definition) { d.SuperGroups[0].Name = "" }},
		{"bad color", func(d *Definition) { d.SuperGroups[2].Color = "blue" }},
		{"unknown category ref", func(d *Definition) { d.SuperGroups[0].CategoryIDs[0] = 16 }},
		{"category in two groups", func(d *Definition) { d.SuperGroups[1].CategoryIDs[0] = 0 }},
		{"missing welcome", func(d *Definition) { d.Messages.Welcome = "" }},
		{"missing won", func(d *Definition) { d.Messages.Won = "" }},
		{"missing phase advanced", func(d *Definition) { d.Messages.PhaseAdvanced = "" }},
		{"missing select tiles", func(d *Definition) { d.Messages.SelectTiles = "" }},
		{"missing select categories", func(d *Definition) { d.Messages.SelectCategories = " " }},
		{"missing already solved", func(d *Definition) { d.Messages.AlreadySolved = "" }},
		{"missing mismatch", func(d *Definition) { d.Messages.Mismatch = "" }},
		{"missing super mismatch", func(d *Definition) { d.Messages.SuperMismatch = "" }},
		{"missing nothing left", func(d *Definition) { d.Messages.NothingLeftToSelect = "" }},
		{"merge template without verb", func(d *Definition) { d.Messages.MergeOccurred = "Solved!" }},
		{"super template without verb", func(d *Definition) { d.Messages.SuperMergeOccurred = "Solved!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := Default()
			tt.mutate(def)
			err := Validate(def)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("Expected ErrInvalidDefinition, got %v", err)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Expected error for nil definition")
	}
}

func TestCategoryOf(t *testing.T) {
	def := Default()

	id, ok := def.CategoryOf("Rosemary")
	if !ok || id != 2 {
		t.Errorf("Expected Rosemary in category 2, got %d (%v)", id, ok)
	}

	if _, ok := def.CategoryOf("Zebra"); ok {
		t.Error("Expected unknown word to be missing")
	}
}

func TestSuperGroupOf(t *testing.T) {
	def := Default()

	for catID := 0; catID < CategoryCount; catID++ {
		groupID, ok := def.SuperGroupOf(catID)
		if !ok {
			t.Fatalf("Category %d has no super-group", catID)
		}
		if groupID != catID/4 {
			t.Errorf("Expected category %d in super-group %d, got %d", catID, catID/4, groupID)
		}
	}
}

func TestMatchSuperGroup(t *testing.T) {
	def := Default()

	group, ok := def.MatchSuperGroup([]int{3, 1, 0, 2})
	if !ok {
		t.Fatal("Expected {0,1,2,3} to match Botanical")
	}
	if group.Name != "Botanical" {
		t.Errorf("Expected Botanical, got %s", group.Name)
	}

	if _, ok := def.MatchSuperGroup([]int{0, 1, 2, 4}); ok {
		t.Error("Partial overlap must not match")
	}
	if _, ok := def.MatchSuperGroup([]int{0, 1, 2}); ok {
		t.Error("Three ids must not match")
	}
	if _, ok := def.MatchSuperGroup([]int{0, 0, 1, 2}); ok {
		t.Error("Duplicate ids must not match")
	}
}

func TestColorOf(t *testing.T) {
	def := Default()

	if got := def.ColorOf(3); got != "#CC99FF" {
		t.Errorf("Expected #CC99FF, got %s", got)
	}

	def.SuperGroups[1].Color = ""
	if got := def.ColorOf(1); got != FallbackColor {
		t.Errorf("Expected fallback color, got %s", got)
	}
	if got := def.ColorOf(9); got != FallbackColor {
		t.Errorf("Expected fallback color for unknown group, got %s", got)
	}
}

func TestSuperGroupWords(t *testing.T) {
	def := Default()

	words := def.SuperGroupWords(3)
	if len(words) != 16 {
		t.Fatalf("Expected 16 words, got %d", len(words))
	}
	if words[0] != "Blackhawks" || words[15] != "Cubs" {
		t.Errorf("Unexpected words: %v", words)
	}

	if def.SuperGroupWords(7) != nil {
		t.Error("Expected nil for unknown super-group")
	}
}
