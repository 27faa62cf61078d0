package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSummary(t *testing.T) {
	long := strings.Repeat("a", 200)

	tests := []struct {
		name      string
		content   string
		maxLength int
		want      string
	}{
		{name: "empty", content: "", maxLength: 150, want: ""},
		{name: "strips tags", content: "<b>Hello</b> world", maxLength: 150, want: "Hello world"},
		{name: "non-greedy tags", content: `<p class="x">One</p><br/>Two`, maxLength: 150, want: "OneTwo"},
		{name: "exactly max", content: strings.Repeat("x", 150), maxLength: 150, want: strings.Repeat("x", 150)},
		{name: "truncates", content: long, maxLength: 150, want: long[:150] + "..."},
		{name: "non-positive max uses default", content: long, maxLength: 0, want: long[:150] + "..."},
		{name: "custom max", content: "<i>abcdef</i>", maxLength: 3, want: "abc..."},
		{name: "counts runes", content: strings.Repeat("é", 5), maxLength: 3, want: "ééé..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSummary(tt.content, tt.maxLength))
		})
	}
}

func TestDeriveSummary_Length(t *testing.T) {
	got := DeriveSummary(strings.Repeat("a", 200), DefaultSummaryLength)

	assert.Equal(t, 153, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestDeriveSummary_Idempotent(t *testing.T) {
	inputs := []string{
		"<b>Hello</b> world",
		"plain text with no markup",
		"<h1>Title</h1><p>" + strings.Repeat("word ", 20) + "</p>",
	}

	for _, in := range inputs {
		once := DeriveSummary(in, 150)
		assert.Equal(t, once, DeriveSummary(once, 150), in)
	}
}

func TestBuildBlogURL(t *testing.T) {
	assert.Equal(t, "https://example.com/api/blogs/7", BuildBlogURL("https://example.com/", "/api", 7))
	assert.Equal(t, "/api/blogs/7", BuildBlogURL("", "api/", 7))
	assert.Equal(t, "/blogs/3", BuildBlogURL("", "", 3))
	assert.Equal(t, "https://example.com", GetBaseURL(map[string]string{"BASE_URL": "https://example.com/"}))
}
