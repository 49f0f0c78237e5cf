package summary

import (
	"strings"
	"testing"
	"unicode/utf8"
	"wrestlenews/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Precedence(t *testing.T) {
	s := New(DefaultMaxLength)

	tests := []struct {
		name  string
		entry domain.Entry
		want  string
	}{
		{
			name: "summary wins",
			entry: domain.Entry{
				Title:   "Title",
				Summary: "<p>Summary text</p>",
				Content: []domain.ContentBlock{{Type: "text/html", Value: "<p>Content</p>"}},
			},
			want: "Summary text",
		},
		{
			name: "markup-only summary falls through to content",
			entry: domain.Entry{
				Title:   "Title",
				Summary: "<img src=\"x.png\"/>",
				Content: []domain.ContentBlock{{Type: "text/html", Value: "<div><p>First <b>para</b></p><p>Second</p></div>"}},
			},
			want: "First para",
		},
		{
			name: "non html content skipped",
			entry: domain.Entry{
				Title: "Title",
				Content: []domain.ContentBlock{
					{Type: "text/plain", Value: "<p>Plain</p>"},
					{Type: "text/html", Value: "<p>Html</p>"},
				},
			},
			want: "Html",
		},
		{
			name: "content without paragraphs falls back to title",
			entry: domain.Entry{
				Title:   "  The <i>Title</i> ",
				Content: []domain.ContentBlock{{Type: "text/html", Value: "<div>No paragraph</div>"}},
			},
			want: "The Title",
		},
		{
			name:  "nothing at all",
			entry: domain.Entry{},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Summarize(tt.entry))
		})
	}
}

func TestSummarize_Bounded(t *testing.T) {
	s := New(50)
	long := strings.Repeat("SmackDown tag team match ", 20)

	got := s.Summarize(domain.Entry{Summary: long})

	assert.LessOrEqual(t, utf8.RuneCountInString(got), 50)
	assert.True(t, strings.HasSuffix(got, Ellipsis))
	head := strings.TrimSuffix(got, Ellipsis)
	assert.True(t, strings.HasPrefix(long, head))
	assert.Equal(t, byte(' '), long[len(head)], "cut must land on a word boundary")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "one two...", Truncate("one two three four", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "one...", Truncate("one twothree", 10))
	assert.Equal(t, "..", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abcdef", 0))
	assert.Equal(t, "", Truncate("abcdef", -1))
	assert.Equal(t, "", Truncate("", -5))
}

func TestTruncate_MultiByte(t *testing.T) {
	in := strings.Repeat("ринг ", 30)
	got := Truncate(in, 20)
	require.LessOrEqual(t, utf8.RuneCountInString(got), 20)
	assert.Equal(t, "ринг ринг ринг...", got)
}

func TestNew_Defaults(t *testing.T) {
	s := New(0)
	assert.Equal(t, DefaultMaxLength, s.maxLength)
	assert.Len(t, s.strategies, 3)
}
