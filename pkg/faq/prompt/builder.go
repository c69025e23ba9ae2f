package prompt

import (
	"fmt"
	"strings"
)

// RefusalSentence is the fixed reply for questions the FAQ cannot answer.
// The generation prompt instructs the model to fall back to this sentence
// instead of improvising, so out-of-domain questions stay deterministic.
const RefusalSentence = "I am a chatbot for the store FAQ. Please ask a question about the store."

// RefineBuilder builds the question-refinement prompt: given prior
// conversation turns, rewrite the current question so pronouns and elided
// subjects are explicit.
type RefineBuilder struct {
	sessionContext string
	question       string
}

func NewRefineBuilder(sessionContext, question string) *RefineBuilder {
	return &RefineBuilder{
		sessionContext: sessionContext,
		question:       question,
	}
}

func (b *RefineBuilder) Build() string {
	var prompt strings.Builder

	b.writeTask(&prompt)
	b.writeHistory(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *RefineBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("Below is the user's previous conversation. Using that context, work out what the user is actually asking and restate the current question clearly and concisely.\n")
	prompt.WriteString("Make the subject and object explicit, resolve pronouns, and drop anything irrelevant.\n")
	prompt.WriteString("Reply with the refined question only, as a single line.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *RefineBuilder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("<conversation_history>\n")
	prompt.WriteString(b.sessionContext)
	prompt.WriteString("\n</conversation_history>\n\n")
}

func (b *RefineBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("<current_question>\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n</current_question>\n\n")
	prompt.WriteString("Refined question:")
}

// AnswerBuilder builds the grounding-constrained answer prompt. The model is
// told to answer strictly from the retrieved FAQ entries, use the fixed
// refusal sentence when the FAQ has nothing relevant, and finish with two
// follow-up suggestions.
type AnswerBuilder struct {
	question   string
	faqContext string
}

func NewAnswerBuilder(question, faqContext string) *AnswerBuilder {
	return &AnswerBuilder{
		question:   question,
		faqContext: faqContext,
	}
}

func (b *AnswerBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeRules(&prompt)
	b.writeReferenceMaterial(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *AnswerBuilder) writeRole(prompt *strings.Builder) {
	prompt.WriteString("<role>\n")
	prompt.WriteString("You are a smart, friendly support agent answering questions about the store.\n")
	prompt.WriteString("Users expect accurate, trustworthy answers grounded in the store FAQ.\n")
	prompt.WriteString("</role>\n\n")
}

func (b *AnswerBuilder) writeRules(prompt *strings.Builder) {
	prompt.WriteString("<rules>\n")
	prompt.WriteString("1. Base every answer strictly on the FAQ entries provided below.\n")
	prompt.WriteString("2. Do not include anything the FAQ does not state. No outside knowledge, no guesses.\n")
	prompt.WriteString("3. Explain confirmed FAQ information in a natural, friendly tone.\n")
	prompt.WriteString("4. Take the user's earlier questions into account when the question builds on them.\n")
	prompt.WriteString("5. After answering, suggest exactly two follow-up questions the user might ask next.\n")
	fmt.Fprintf(prompt, "6. If the question is unrelated to the store or the FAQ has nothing relevant, reply: %q and, if any provided entry is loosely related, point the user to it.\n", RefusalSentence)
	prompt.WriteString("</rules>\n\n")
}

func (b *AnswerBuilder) writeReferenceMaterial(prompt *strings.Builder) {
	prompt.WriteString("<faq_entries>\n")
	prompt.WriteString(b.faqContext)
	prompt.WriteString("\n</faq_entries>\n\n")
}

func (b *AnswerBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Answer:")
}

// KeywordBuilder builds the keyword-extraction prompt: 2-3 word salient
// phrases, comma-separated, nothing else.
type KeywordBuilder struct {
	question string
}

func NewKeywordBuilder(question string) *KeywordBuilder {
	return &KeywordBuilder{question: question}
}

func (b *KeywordBuilder) Build() string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Extract the key phrases that carry the meaning of the question.\n")
	prompt.WriteString("- Each phrase is 2-3 words combining the important nouns, verbs and concepts.\n")
	prompt.WriteString("- Merge synonyms into a single phrase.\n")
	prompt.WriteString("- Skip filler words (\"how\", \"can I\").\n")
	prompt.WriteString("- Reply with a comma-separated list only.\n")
	prompt.WriteString("</task>\n\n")
	prompt.WriteString("<examples>\n")
	prompt.WriteString("Question: \"How do I register a product in the store?\"\n")
	prompt.WriteString("product registration, registration steps\n\n")
	prompt.WriteString("Question: \"How does the refund policy apply?\"\n")
	prompt.WriteString("refund policy, policy application\n")
	prompt.WriteString("</examples>\n\n")
	fmt.Fprintf(&prompt, "Question: %q\n", b.question)

	return prompt.String()
}
