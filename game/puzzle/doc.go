// Package puzzle holds the static definition of a Super Groups puzzle.
//
// A puzzle is made of 16 mini categories of 4 words each (64 words in
// total) and 4 super-groups that partition the mini categories. The
// definition is compiled in; Default returns the table shipped with the
// game and Validate checks any definition for structural correctness.
//
// Usage:
//
//	def := puzzle.Default()
//	if err := puzzle.Validate(def); err != nil {
//		log.Fatal(err)
//	}
//
//	id, ok := def.CategoryOf("Maple") // 0, true
//	group, ok := def.MatchSuperGroup([]int{3, 1, 0, 2})
package puzzle
