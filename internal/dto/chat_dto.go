package dto

// ChatRequest carries the query-string parameters of the chat endpoint.
type ChatRequest struct {
	Question  string `query:"question" validate:"required"`
	SessionId string `query:"session_id"`
}

// ExchangeCompletedMessage is published after a turn is persisted; the
// consumer extracts and records keywords out of band.
type ExchangeCompletedMessage struct {
	SessionId       string `json:"session_id"`
	RefinedQuestion string `json:"refined_question"`
}

// RetrievalInsufficientMessage is published when a query retrieved too few
// usable hits; the consumer records it as a content gap.
type RetrievalInsufficientMessage struct {
	Question  string    `json:"question"`
	Embedding []float32 `json:"embedding"`
	HitCount  int       `json:"hit_count"`
}
