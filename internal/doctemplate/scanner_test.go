package doctemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScan_DetectsTokensInOrder(t *testing.T) {
	paragraphs := []string{
		"NON-DISCLOSURE AGREEMENT",
		"This agreement is made between [Company Name] and [Recipient Name].",
		"Effective as of [Effective Date].",
	}

	found := Scan(paragraphs, 1)

	tokens := make([]string, 0, len(found))
	for _, f := range found {
		tokens = append(tokens, f.Token)
	}
	assert.Equal(t, []string{"[Company Name]", "[Recipient Name]", "[Effective Date]"}, tokens)
}

func TestScan_Deduplicates(t *testing.T) {
	paragraphs := []string{
		"[Company Name] agrees to the terms.",
		"[Company Name] shall be notified in writing.",
	}

	found := Scan(paragraphs, 1)
	assert.Len(t, found, 1)
	// Context comes from the first occurrence
	assert.Contains(t, found[0].Context, "agrees to the terms")
}

func TestScan_ContextWindow(t *testing.T) {
	paragraphs := []string{
		"Preamble text.",
		"Payment of [Amount] is due.",
		"Late payments accrue interest.",
	}

	found := Scan(paragraphs, 1)
	assert.Len(t, found, 1)
	assert.Equal(t, "Preamble text. Payment of [Amount] is due. Late payments accrue interest.", found[0].Context)
}

func TestScan_ContextSkipsEmptyParagraphs(t *testing.T) {
	paragraphs := []string{
		"",
		"Payment of [Amount] is due.",
		"   ",
	}

	found := Scan(paragraphs, 1)
	assert.Equal(t, "Payment of [Amount] is due.", found[0].Context)
}

func TestScan_DollarAndNestedBrackets(t *testing.T) {
	paragraphs := []string{
		"A fee of $[Fee] plus [[Deposit]] is payable.",
	}

	found := Scan(paragraphs, 0)
	assert.Len(t, found, 2)
	assert.Equal(t, "$[Fee]", found[0].Token)
	assert.Equal(t, "[[Deposit]]", found[1].Token)
}

func TestScan_NoPlaceholders(t *testing.T) {
	found := Scan([]string{"Plain prose only.", "Nothing to fill."}, 1)
	assert.Empty(t, found)
}

func TestScan_MultipleTokensShareContext(t *testing.T) {
	paragraphs := []string{
		"Between [Party A] and [Party B].",
	}

	found := Scan(paragraphs, 1)
	assert.Len(t, found, 2)
	assert.Equal(t, found[0].Context, found[1].Context)
}
