// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"strings"

	"github.com/pdiddy/autoblog/pkg/types"
)

// ParseResponse extracts an Article from the model's labeled response.
// Labels before CONTENT: are read from their own lines. The body is the rest
// of the CONTENT: line plus every line after it. Without a CONTENT: label the
// body starts at the first line beginning with '#'; without either the body
// is empty and the article fails validation.
func ParseResponse(text string) types.Article {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	a := types.Article{}

	contentStart := -1
	var firstContentLine string

scan:
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, LabelTitle):
			a.Title = labelValue(line, LabelTitle)
		case strings.HasPrefix(line, LabelSummary):
			a.Summary = labelValue(line, LabelSummary)
		case strings.HasPrefix(line, LabelTags):
			a.Tags = splitTags(labelValue(line, LabelTags))
		case strings.HasPrefix(line, LabelCategory):
			a.Category = labelValue(line, LabelCategory)
		case strings.HasPrefix(line, LabelContent):
			contentStart = i
			firstContentLine = strings.TrimPrefix(line, LabelContent)
			break scan
		}
	}

	if contentStart >= 0 {
		body := append([]string{firstContentLine}, lines[contentStart+1:]...)
		a.Content = strings.TrimSpace(strings.Join(body, "\n"))
	} else {
		for i, raw := range lines {
			if strings.HasPrefix(raw, "#") {
				a.Content = strings.TrimSpace(strings.Join(lines[i:], "\n"))
				break
			}
		}
	}

	if a.Category == "" {
		a.Category = types.DefaultCategory
	}
	return a
}

func labelValue(line, label string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, label))
}

// splitTags splits a comma-separated tag list, trimming each tag. A wrapping
// pair of brackets is removed and empty entries are dropped.
func splitTags(s string) []string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
