package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "How do refunds work?", CleanText("  How   do\n\nrefunds\twork?  "))
}

func TestCleanTextStripsHTMLEntities(t *testing.T) {
	assert.Equal(t, "Shipping takes 2 days", CleanText("Shipping&nbsp;takes&nbsp;2&nbsp;days"))
}

func TestCleanTextStripsControlChars(t *testing.T) {
	assert.Equal(t, "hello world", CleanText("hello\x00 world\x1F"))
}

func TestCleanTextRemovesFeedbackFooter(t *testing.T) {
	raw := "배송은 2일 걸립니다. 위 도움말이 도움이 되었나요? 별점1점 별점5점 소중한 의견을 남겨주시면 보완하도록 노력하겠습니다."
	assert.Equal(t, "배송은 2일 걸립니다.", CleanText(raw))
}

func TestCleanTextEmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanText("   \n\t "))
}
