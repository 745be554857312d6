package puzzle

const (
	CategoryCount      = 16
	WordsPerCategory   = 4
	SuperGroupCount    = 4
	CategoriesPerGroup = 4
	WordCount          = CategoryCount * WordsPerCategory

	// FallbackColor is used for super-groups without a configured colour.
	FallbackColor = "#888"
)

// MiniCategory is one of the 16 groups of four related words
type MiniCategory struct {
	ID    int                      `json:"id"`
	Name  string                   `json:"name"`
	Words [WordsPerCategory]string `json:"words"`
}

// SuperGroup is one of the 4 groups of four mini categories
type SuperGroup struct {
	ID          int                     `json:"id"`
	Name        string                  `json:"name"`
	Color       string                  `json:"color"`
	CategoryIDs [CategoriesPerGroup]int `json:"category_ids"`
}

// Messages are the player-facing texts emitted by the engine.
// MergeOccurred and SuperMergeOccurred are format strings taking the
// display name of the solved category or super-group.
type Messages struct {
	Welcome             string `json:"welcome"`
	MergeOccurred       string `json:"merge_occurred"`
	PhaseAdvanced       string `json:"phase_advanced"`
	SuperMergeOccurred  string `json:"super_merge_occurred"`
	Won                 string `json:"won"`
	SelectTiles         string `json:"select_tiles"`
	SelectCategories    string `json:"select_categories"`
	AlreadySolved       string `json:"already_solved"`
	Mismatch            string `json:"mismatch"`
	SuperMismatch       string `json:"super_mismatch"`
	NothingLeftToSelect string `json:"nothing_left_to_select"`
}

// Definition is a complete puzzle: the mini categories, the super-group
// partition over them and the messages shown while playing.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Categories  []MiniCategory `json:"categories"`
	SuperGroups []SuperGroup   `json:"super_groups"`
	Messages    Messages       `json:"messages"`
}
