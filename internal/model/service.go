package model

// Service is a bookable catalog entry. Immutable at runtime.
type Service struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
}
