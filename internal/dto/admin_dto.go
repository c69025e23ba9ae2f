package dto

// IngestRequest is the admin batch-ingestion payload: a raw question->answer
// mapping plus an optional full reset of the index beforehand.
type IngestRequest struct {
	Entries map[string]string `json:"entries" validate:"required,min=1"`
	Reset   bool              `json:"reset"`
}

type IngestResponse struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

type IndexCountResponse struct {
	Count int64 `json:"count"`
}

type KeywordStatsResponse struct {
	Keywords map[string]int64 `json:"keywords"`
}

type UnderservedStatsResponse struct {
	Questions []string `json:"questions"`
}
