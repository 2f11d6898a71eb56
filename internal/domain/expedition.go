package domain

// Expedition is one entry of the static tour catalog.
type Expedition struct {
	ID               string         `json:"id" yaml:"id"`
	Name             string         `json:"name" yaml:"name"`
	Altitude         string         `json:"altitude" yaml:"altitude"`
	Duration         string         `json:"duration" yaml:"duration"`
	Difficulty       string         `json:"difficulty" yaml:"difficulty"`
	BestTime         string         `json:"bestTime" yaml:"bestTime"`
	ShortDescription string         `json:"shortDescription" yaml:"shortDescription"`
	Details          string         `json:"details" yaml:"details"`
	Itinerary        []ItineraryDay `json:"itinerary" yaml:"itinerary"`
	DailyWalking     string         `json:"dailyWalking,omitempty" yaml:"dailyWalking"`
	Grade            string         `json:"grade,omitempty" yaml:"grade"`
	MaxAltitude      string         `json:"maxAltitude,omitempty" yaml:"maxAltitude"`
}

// ItineraryDay is a single line of an expedition itinerary.
type ItineraryDay struct {
	Day         string `json:"day" yaml:"day"`
	Description string `json:"description" yaml:"description"`
}
