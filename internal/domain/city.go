package domain

// City is a shared catalog entry referenced by stops across many trips.
// It keeps an integer id (serial) unlike the UUID-keyed aggregate entities.
// A city is never deleted implicitly — only by the explicit delete-if-unused
// operation, which must verify zero remaining stop references first.
type City struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	// CostIndex is a relative cost-of-visit indicator. Optional.
	CostIndex *float64 `json:"costIndex,omitempty"`
	// PopularityScore is a rating in [0, 5]. Optional; rejected outside the
	// range at the write boundary.
	PopularityScore *float64 `json:"popularityScore,omitempty"`
}
