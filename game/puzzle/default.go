package puzzle

// Default returns a fresh copy of the puzzle shipped with the game.
func Default() *Definition {
	def := &Definition{
		Name:        "classic",
		Description: "Sixty-four words, sixteen categories, four super-groups",
		Categories: []MiniCategory{
			{ID: 0, Name: "Trees", Words: [4]string{"Oak", "Maple", "Pine", "Birch"}},
			{ID: 1, Name: "Flowers", Words: [4]string{"Rose", "Tulip", "Daisy", "Orchid"}},
			{ID: 2, Name: "Herbs", Words: [4]string{"Basil", "Thyme", "Mint", "Rosemary"}},
			{ID: 3, Name: "Plants", Words: [4]string{"Fern", "Ivy", "Moss", "Bamboo"}},
			{ID: 4, Name: "Coffees & Teas", Words: [4]string{"Espresso", "Latte", "EarlGrey", "Matcha"}},
			{ID: 5, Name: "Soft Drinks", Words: [4]string{"Cola", "Lemonade", "RootBeer", "GingerAle"}},
			{ID: 6, Name: "Alcoholic Drinks", Words: [4]string{"Vodka", "Whiskey", "Rum", "Tequila"}},
			{ID: 7, Name: "Juices", Words: [4]string{"Orange", "Apple", "Cranberry", "Grape"}},
			{ID: 8, Name: "Fruits", Words: [4]string{"Mango", "Banana", "Strawberry", "Kiwi"}},
			{ID: 9, Name: "Vegetables", Words: [4]string{"Carrot", "Broccoli", "Spinach", "BrusselSprouts"}},
			{ID: 10, Name: "Desserts", Words: [4]string{"Brownie", "Cake", "Cookie", "Pie"}},
			{ID: 11, Name: "Grains & Breads", Words: [4]string{"Rice", "Quinoa", "Baguette", "Pita"}},
			{ID: 12, Name: "NHL Teams", Words: [4]string{"Blackhawks", "RedWings", "Capitals", "Penguins"}},
			{ID: 13, Name: "NBA Teams", Words: [4]string{"Lakers", "Celtics", "Bulls", "Warriors"}},
			{ID: 14, Name: "NFL Teams", Words: [4]string{"Patriots", "Cowboys", "Packers", "Steelers"}},
			{ID: 15, Name: "MLB Teams", Words: [4]string{"Yankees", "RedSox", "Dodgers", "Cubs"}},
		},
		SuperGroups: []SuperGroup{
			{ID: 0, Name: "Botanical", Color: "#FFFF99", CategoryIDs: [4]int{0, 1, 2, 3}},
			{ID: 1, Name: "Beverages", Color: "#99FF99", CategoryIDs: [4]int{4, 5, 6, 7}},
			{ID: 2, Name: "Foods", Color: "#99CCFF", CategoryIDs: [4]int{8, 9, 10, 11}},
			{ID: 3, Name: "Sports Teams", Color: "#CC99FF", CategoryIDs: [4]int{12, 13, 14, 15}},
		},
	}
	def.Messages = DefaultMessages()
	return def
}

// DefaultMessages returns the standard message set.
func DefaultMessages() Messages {
	return Messages{
		Welcome:             "Group the 64 words into 16 categories of four.",
		MergeOccurred:       "Solved: %s!",
		PhaseAdvanced:       "All categories solved! Now group the 16 categories into 4 super-groups.",
		SuperMergeOccurred:  "Super-group solved: %s!",
		Won:                 "Congratulations! You've solved all super-groups!",
		SelectTiles:         "Select 4 tiles before guessing!",
		SelectCategories:    "Select 4 categories for a super-group!",
		AlreadySolved:       "This mini category is already solved!",
		Mismatch:            "Not a category. Try again.",
		SuperMismatch:       "Those categories do not form a super-group.",
		NothingLeftToSelect: "Puzzle complete. Nothing left to select.",
	}
}
