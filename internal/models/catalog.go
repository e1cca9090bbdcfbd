package models

// Question is an immutable catalog entry. IDs are stable across sessions
// (e.g. "d12-q1") and are the key into the progress table.
type Question struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	Difficulty  string `json:"difficulty"`
	Type        string `json:"type"` // new | review | special
	OriginalDay int    `json:"originalDay,omitempty"`
}

// Day is one entry of the 90-day plan: an ordered set of questions plus
// precomputed counts from the offline seed transform.
type Day struct {
	Day         int        `json:"day"`
	Date        string     `json:"date"`
	Week        int        `json:"week"`
	Theme       string     `json:"theme"`
	Questions   []Question `json:"questions"`
	NewCount    int        `json:"new_count"`
	ReviewCount int        `json:"review_count"`
}
