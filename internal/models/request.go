package models

// SearchRequest represents a search request. An empty query is valid and
// matches every record. Unset fields fall back to the server's configured
// defaults.
type SearchRequest struct {
	Query      string   `json:"query"`
	Threshold  *float64 `json:"threshold,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Algorithms []string `json:"algorithms,omitempty"`
	Strategy   string   `json:"strategy,omitempty"`
	Preset     string   `json:"preset,omitempty"`
}

// Validate normalizes the request in place. The limit is clamped to
// maxLimit; a non-positive limit is left alone so the engine default
// applies.
func (r *SearchRequest) Validate(maxLimit int) {
	if maxLimit > 0 && r.Limit > maxLimit {
		r.Limit = maxLimit
	}
}
