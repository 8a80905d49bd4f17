package models

// SearchResult represents a single search hit. Score is a normalized
// distance in [0, 1]; lower is a closer match and 0 is exact.
type SearchResult struct {
	Record Record  `json:"record"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

// SearchResponse is the response for a search request. Results are sorted
// by ascending score.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
}
