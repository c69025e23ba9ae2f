package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefineBuilderIncludesHistoryAndQuestion(t *testing.T) {
	history := "User: Do you ship abroad?\nBot: Yes, to most countries."
	built := NewRefineBuilder(history, "How long does it take?").Build()

	assert.Contains(t, built, "<task>")
	assert.Contains(t, built, "<conversation_history>\n"+history)
	assert.Contains(t, built, "<current_question>\nHow long does it take?")
	assert.True(t, strings.HasSuffix(built, "Refined question:"))
}

func TestAnswerBuilderConstrainsToProvidedEntries(t *testing.T) {
	faqContext := "- Q: What is the refund window?\n  A: 14 days."
	built := NewAnswerBuilder("Can I still get a refund?", faqContext).Build()

	assert.Contains(t, built, "<faq_entries>\n"+faqContext)
	assert.Contains(t, built, "<user_question>\nCan I still get a refund?")
	assert.Contains(t, built, "strictly on the FAQ entries")
	assert.Contains(t, built, "exactly two follow-up questions")
	assert.Contains(t, built, RefusalSentence)
	assert.True(t, strings.HasSuffix(built, "Answer:"))
}

func TestKeywordBuilderEmbedsQuestion(t *testing.T) {
	built := NewKeywordBuilder("How do I change my delivery address?").Build()

	assert.Contains(t, built, `Question: "How do I change my delivery address?"`)
	assert.Contains(t, built, "comma-separated list")
}
