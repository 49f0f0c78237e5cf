package text

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only spaces", in: " \n\t ", want: ""},
		{name: "plain text", in: "  Raw   results \n tonight ", want: "Raw results tonight"},
		{name: "markup", in: "<p>Cody <b>Rhodes</b> retains</p>", want: "Cody Rhodes retains"},
		{name: "entities", in: "Raw &amp; SmackDown&nbsp;tonight", want: "Raw & SmackDown tonight"},
		{name: "script dropped", in: "<script>alert(1)</script>News", want: "News"},
		{name: "unclosed tag", in: "<div><p>Broken <i>markup", want: "Broken markup"},
		{name: "line breaks", in: "Line one<br/>\n\nLine two", want: "Line one Line two"},
		{name: "encoded markup", in: "&lt;p&gt;Cody &lt;b&gt;Rhodes&lt;/b&gt; retains&lt;/p&gt;", want: "Cody Rhodes retains"},
		{name: "encoded script", in: "&lt;script&gt;alert(1)&lt;/script&gt;News", want: "News"},
		{name: "double encoded script", in: "&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;News", want: "News"},
		{name: "encoded less-than in text", in: "Raw ratings: 1.5 &lt; 2.0", want: "Raw ratings: 1.5 < 2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

var tagPattern = regexp.MustCompile(`<\s*/?\s*[a-zA-Z!?]`)

func TestNormalize_NoTagsNoDoubleSpaces(t *testing.T) {
	inputs := []string{
		"<article><h1>Title</h1>\n\n<p>First   paragraph</p><p>Second</p></article>",
		"<a href=\"https://wwe.com\">link</a>   trailing\t\ttabs",
		"<img src=x onerror=alert(1)>  <span>  spaced  </span>",
		"<<<>>> weird <<b>> tags",
		"&lt;img src=x onerror=alert(1)&gt;Recap",
		"&amp;lt;a href=&amp;quot;javascript:alert(1)&amp;quot;&amp;gt;click&amp;lt;/a&amp;gt;",
		"&amp;amp;lt;iframe src=evil&amp;amp;gt;&amp;amp;lt;/iframe&amp;amp;gt;Deep",
		strings.Repeat("&amp;", 12) + "lt;b&gt;nested",
	}
	for _, in := range inputs {
		out := Normalize(in)
		assert.False(t, tagPattern.MatchString(out), "markup survived in %q", out)
		assert.NotContains(t, out, "  ")
		assert.Equal(t, strings.TrimSpace(out), out)
	}
}
