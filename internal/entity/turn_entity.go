package entity

// Turn is one completed question/answer exchange within a session. Created
// once, after the answer stream finishes normally; never mutated.
type Turn struct {
	Question string `json:"question"`
	Response string `json:"response"`
}
