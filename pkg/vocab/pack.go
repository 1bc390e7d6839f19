package vocab

// Pack is a themed word list a player can start a run with. Preset packs
// are JSON files served from the data directory; CustomPackID marks a
// run built from an uploaded word list instead.
type Pack struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	IntroStory  string       `json:"introStory"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	Words       []Vocabulary `json:"words"`
}

// CustomPackID is the reserved pack id for uploaded word lists.
const CustomPackID = "custom"
