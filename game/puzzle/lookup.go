package puzzle

import "sort"

// CategoryOf returns the id of the mini category containing word
func (d *Definition) CategoryOf(word string) (int, bool) {
	for _, cat := range d.Categories {
		for _, w := range cat.Words {
			if w == word {
				return cat.ID, true
			}
		}
	}
	return -1, false
}

// Category returns the mini category with the given id
func (d *Definition) Category(id int) (MiniCategory, bool) {
	if id < 0 || id >= len(d.Categories) {
		return MiniCategory{}, false
	}
	return d.Categories[id], true
}

// SuperGroup returns the super-group with the given id
func (d *Definition) SuperGroup(id int) (SuperGroup, bool) {
	if id < 0 || id >= len(d.SuperGroups) {
		return SuperGroup{}, false
	}
	return d.SuperGroups[id], true
}

// SuperGroupOf returns the id of the super-group that owns a mini category
func (d *Definition) SuperGroupOf(categoryID int) (int, bool) {
	for _, group := range d.SuperGroups {
		for _, id := range group.CategoryIDs {
			if id == categoryID {
				return group.ID, true
			}
		}
	}
	return -1, false
}

// MatchSuperGroup finds the super-group whose member set is exactly ids.
// Order does not matter; partial overlap is not a match.
func (d *Definition) MatchSuperGroup(ids []int) (SuperGroup, bool) {
	if len(ids) != CategoriesPerGroup {
		return SuperGroup{}, false
	}
	want := sortedCopy(ids)
	for _, group := range d.SuperGroups {
		have := sortedCopy(group.CategoryIDs[:])
		match := true
		for i := range want {
			if want[i] != have[i] {
				match = false
				break
			}
		}
		if match {
			return group, true
		}
	}
	return SuperGroup{}, false
}

// ColorOf returns the display colour of a super-group, falling back to
// FallbackColor when none is configured
func (d *Definition) ColorOf(superGroupID int) string {
	group, ok := d.SuperGroup(superGroupID)
	if !ok || group.Color == "" {
		return FallbackColor
	}
	return group.Color
}

// Words returns the full word universe in definition order
func (d *Definition) Words() []string {
	words := make([]string, 0, WordCount)
	for _, cat := range d.Categories {
		words = append(words, cat.Words[:]...)
	}
	return words
}

// CategoryWords returns the four words of a mini category
func (d *Definition) CategoryWords(id int) []string {
	cat, ok := d.Category(id)
	if !ok {
		return nil
	}
	return append([]string(nil), cat.Words[:]...)
}

// SuperGroupWords returns the sixteen words under a super-group
func (d *Definition) SuperGroupWords(id int) []string {
	group, ok := d.SuperGroup(id)
	if !ok {
		return nil
	}
	var words []string
	for _, catID := range group.CategoryIDs {
		words = append(words, d.CategoryWords(catID)...)
	}
	return words
}

func sortedCopy(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}
