package catalog

import (
	"encoding/json"
	"fmt"
	"time"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyExpert       Difficulty = "Expert"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyExpert:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty: %s", s)
	}
}

// ItemStatus gates visibility: only Active items are listed publicly and only
// Active items are bookable.
type ItemStatus string

const (
	ItemActive   ItemStatus = "Active"
	ItemDraft    ItemStatus = "Draft"
	ItemInactive ItemStatus = "Inactive"
)

func ParseItemStatus(s string) (ItemStatus, error) {
	switch ItemStatus(s) {
	case ItemActive, ItemDraft, ItemInactive:
		return ItemStatus(s), nil
	default:
		return "", fmt.Errorf("unknown item status: %s", s)
	}
}

type Package struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Price         string          `json:"price"`
	OriginalPrice string          `json:"originalPrice,omitempty"`
	Duration      string          `json:"duration"`
	GroupSize     string          `json:"groupSize"`
	Location      string          `json:"location"`
	Difficulty    Difficulty      `json:"difficulty"`
	Category      string          `json:"category"`
	Highlights    []string        `json:"highlights"`
	Inclusions    []string        `json:"inclusions"`
	Exclusions    []string        `json:"exclusions"`
	Itinerary     json.RawMessage `json:"itinerary,omitempty"`
	Rating        float64         `json:"rating"`
	ReviewCount   int             `json:"reviewCount"`
	BookingCount  int             `json:"bookingCount"`
	Status        ItemStatus      `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type Trail struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Duration    string     `json:"duration"`
	Elevation   string     `json:"elevation"`
	Location    string     `json:"location"`
	Features    []string   `json:"features"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type EcoStay struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Price         string     `json:"price"`
	OriginalPrice string     `json:"originalPrice,omitempty"`
	Location      string     `json:"location"`
	Amenities     []string   `json:"amenities"`
	EcoFeatures   []string   `json:"ecoFeatures"`
	Rating        float64    `json:"rating"`
	ReviewCount   int        `json:"reviewCount"`
	BookingCount  int        `json:"bookingCount"`
	Status        ItemStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
