package puzzle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidDefinition wraps every validation failure
var ErrInvalidDefinition = errors.New("invalid puzzle definition")

var colorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDefinition, fmt.Sprintf(format, args...))
}

// Validate checks that a definition is structurally playable: the mini
// categories partition exactly 64 distinct words and the super-groups
// partition exactly the 16 mini categories.
func Validate(def *Definition) error {
	if def == nil {
		return invalid("definition is nil")
	}
	if def.Name == "" {
		return invalid("name is required")
	}

	// Categories
	if len(def.Categories) != CategoryCount {
		return invalid("expected %d categories, got %d", CategoryCount, len(def.Categories))
	}
	seenWords := make(map[string]int, WordCount)
	for i, cat := range def.Categories {
		if cat.ID != i {
			return invalid("category at index %d has id %d", i, cat.ID)
		}
		if strings.TrimSpace(cat.Name) == "" {
			return invalid("category %d has no name", cat.ID)
		}
		for _, word := range cat.Words {
			if strings.TrimSpace(word) == "" {
				return invalid("category %d (%s) has an empty word", cat.ID, cat.Name)
			}
			if owner, dup := seenWords[word]; dup {
				return invalid("word %q appears in categories %d and %d", word, owner, cat.ID)
			}
			seenWords[word] = cat.ID
		}
	}

	// Super-groups
	if len(def.SuperGroups) != SuperGroupCount {
		return invalid("expected %d super-groups, got %d", SuperGroupCount, len(def.SuperGroups))
	}
	owner := make(map[int]int, CategoryCount)
	for i, group := range def.SuperGroups {
		if group.ID != i {
			return invalid("super-group at index %d has id %d", i, group.ID)
		}
		if strings.TrimSpace(group.Name) == "" {
			return invalid("super-group %d has no name", group.ID)
		}
		if group.Color != "" && !colorPattern.MatchString(group.Color) {
			return invalid("super-group %d (%s) has malformed color %q", group.ID, group.Name, group.Color)
		}
		for _, catID := range group.CategoryIDs {
			if catID < 0 || catID >= CategoryCount {
				return invalid("super-group %d references unknown category %d", group.ID, catID)
			}
			if prev, dup := owner[catID]; dup {
				return invalid("category %d belongs to super-groups %d and %d", catID, prev, group.ID)
			}
			owner[catID] = group.ID
		}
	}
	if len(owner) != CategoryCount {
		return invalid("super-groups cover %d of %d categories", len(owner), CategoryCount)
	}

	// Messages
	msgs := def.Messages
	required := []struct {
		key, value string
	}{
		{"welcome", msgs.Welcome},
		{"phase_advanced", msgs.PhaseAdvanced},
		{"won", msgs.Won},
		{"select_tiles", msgs.SelectTiles},
		{"select_categories", msgs.SelectCategories},
		{"already_solved", msgs.AlreadySolved},
		{"mismatch", msgs.Mismatch},
		{"super_mismatch", msgs.SuperMismatch},
		{"nothing_left_to_select", msgs.NothingLeftToSelect},
	}
	for _, m := range required {
		if strings.TrimSpace(m.value) == "" {
			return invalid("messages.%s is required", m.key)
		}
	}
	if !strings.Contains(msgs.MergeOccurred, "%s") {
		return invalid("messages.merge_occurred must contain %%s for the category name")
	}
	if !strings.Contains(msgs.SuperMergeOccurred, "%s") {
		return invalid("messages.super_merge_occurred must contain %%s for the super-group name")
	}

	return nil
}
