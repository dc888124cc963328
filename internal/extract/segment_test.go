package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	t.Run("ordered markers pair with their content", func(t *testing.T) {
		text := "Q1: First question text\nQ2: Second question text\nSCREEN: Third question text"

		blocks := Segment(text)

		require.Len(t, blocks, 3)
		assert.Equal(t, "Q1:", blocks[0].Marker)
		assert.Equal(t, "First question text", blocks[0].Content)
		assert.Equal(t, "Q2:", blocks[1].Marker)
		assert.Equal(t, "Second question text", blocks[1].Content)
		assert.Equal(t, "SCREEN:", blocks[2].Marker)
		assert.Equal(t, "Third question text", blocks[2].Content)
	})

	t.Run("marker variants", func(t *testing.T) {
		text := "intro line\n  12. numbered\nq3: lower\nDemographic. one\nDEMOGRAPHICS: many\nscreen. lower screen"

		blocks := Segment(text)

		require.Len(t, blocks, 5)
		markers := make([]string, len(blocks))
		for i, b := range blocks {
			markers[i] = b.Marker
		}
		assert.Equal(t, []string{"12.", "q3:", "Demographic.", "DEMOGRAPHICS:", "screen."}, markers)
	})

	t.Run("unicode indentation before markers", func(t *testing.T) {
		blocks := Segment("intro\n\u00a0\u00a0Q1: first\n\u3000Q2:\u00a0second")

		require.Len(t, blocks, 2)
		assert.Equal(t, "Q1:", blocks[0].Marker)
		assert.Equal(t, "first", blocks[0].Content)
		assert.Equal(t, "Q2:", blocks[1].Marker)
		assert.Equal(t, "second", blocks[1].Content)
	})

	t.Run("markers must start a line", func(t *testing.T) {
		blocks := Segment("We asked Q1: in the middle of a sentence")
		assert.Empty(t, blocks)
	})

	t.Run("no markers", func(t *testing.T) {
		assert.Nil(t, Segment("plain text without any markers"))
	})
}

func TestQuestionText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "stops at response options",
			content: "Do you support the policy?\nYes\nNo\nUndecided",
			want:    "Do you support the policy?",
		},
		{
			name:    "joins wrapped lines and skips blanks",
			content: "  If the election were held today,\n\n   who would you vote for?  \nNot sure",
			want:    "If the election were held today, who would you vote for?",
		},
		{
			name:    "option markers are case-insensitive prefixes",
			content: "How would you rate the mayor?\nvery good\nSomewhat good",
			want:    "How would you rate the mayor?",
		},
		{
			name:    "more likely and less likely",
			content: "After hearing this, are you\nMore likely\nLess likely",
			want:    "After hearing this, are you",
		},
		{
			name:    "only options",
			content: "Yes\nNo",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuestionText(tt.content))
		})
	}
}

func TestCleanMarker(t *testing.T) {
	assert.Equal(t, "Q1", CleanMarker("Q1:"))
	assert.Equal(t, "12", CleanMarker(" 12. "))
	assert.Equal(t, "SCREEN", CleanMarker("SCREEN:"))
	assert.Equal(t, "DEMOGRAPHICS", CleanMarker("DEMOGRAPHICS."))
	assert.Equal(t, "Q2", CleanMarker("\u00a0Q2:\u00a0"))
}
