// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/autoblog/pkg/types"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.Article
	}{
		{
			name: "all labels",
			raw:  "TITLE: Foo\nSUMMARY: Bar\nTAGS: a, b\nCATEGORY: Tech\nCONTENT: # Foo\nBody text",
			want: types.Article{Title: "Foo", Summary: "Bar", Tags: []string{"a", "b"}, Category: "Tech", Content: "# Foo\nBody text"},
		},
		{
			name: "content on following lines",
			raw:  "TITLE: Foo\nCONTENT:\n\n## Intro\n\nText\n",
			want: types.Article{Title: "Foo", Category: types.DefaultCategory, Content: "## Intro\n\nText"},
		},
		{
			name: "labels after CONTENT belong to the body",
			raw:  "TITLE: Foo\nCONTENT: body\nTITLE: not a title",
			want: types.Article{Title: "Foo", Category: types.DefaultCategory, Content: "body\nTITLE: not a title"},
		},
		{
			name: "indented labels and CRLF",
			raw:  "  TITLE:  Spaced  \r\n  CATEGORY: Go \r\nCONTENT: x\r\n",
			want: types.Article{Title: "Spaced", Category: "Go", Content: "x"},
		},
		{
			name: "empty tag entries dropped",
			raw:  "TITLE: T\nTAGS: a, , b\nCONTENT: x",
			want: types.Article{Title: "T", Tags: []string{"a", "b"}, Category: types.DefaultCategory, Content: "x"},
		},
		{
			name: "bracketed tags with blanks",
			raw:  "TITLE: T\nTAGS: [go, , concurrency ]\nCONTENT: x",
			want: types.Article{Title: "T", Tags: []string{"go", "concurrency"}, Category: types.DefaultCategory, Content: "x"},
		},
		{
			name: "heading fallback without CONTENT",
			raw:  "TITLE: Foo\nSome preamble\n# Foo\nBody",
			want: types.Article{Title: "Foo", Category: types.DefaultCategory, Content: "# Foo\nBody"},
		},
		{
			name: "indented hash is not a heading start",
			raw:  "TITLE: Foo\n  # not here\n",
			want: types.Article{Title: "Foo", Category: types.DefaultCategory},
		},
		{
			name: "no labels",
			raw:  "Plain prose only.",
			want: types.Article{Category: types.DefaultCategory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResponse_EmptyBodyIsInvalid(t *testing.T) {
	a := ParseResponse("TITLE: Foo\nSUMMARY: Bar")
	assert.False(t, a.Valid())

	a = ParseResponse("TITLE: Foo\nCONTENT: # Foo")
	assert.True(t, a.Valid())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		limit int
		want  string
	}{
		{"skips headings", "# Title\n\nFirst para.\n\nSecond.", 100, "First para."},
		{"joins soft breaks", "Line one\nline two", 100, "Line one line two"},
		{"inline code kept", "Use `go test` often.", 100, "Use go test often."},
		{"truncates", "abcdefghij", 4, "abcd..."},
		{"no paragraph", "# Only heading\n\n- list item", 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.body, tt.limit))
		})
	}
}

func TestOutline(t *testing.T) {
	body := "# Guide\n\nIntro.\n\n## Setup\n\n```\n# not a heading\n```\n\n### Step *one*\n"
	assert.Equal(t, []string{"Guide", "Setup", "Step one"}, Outline(body))
}
