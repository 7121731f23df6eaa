// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/pdiddy/autoblog/pkg/types"
)

const (
	frontMatterDelim = "+++"
	dateLayout       = "2006-01-02"
	fallbackSlug     = "post"
)

// FrontMatter is the Hugo metadata block written at the top of a document.
// Render emits keys in field order.
type FrontMatter struct {
	Title         string
	Date          time.Time
	Draft         bool
	Summary       string
	Tags          []string
	Categories    []string
	Author        string
	AutoGenerated bool
}

// Render formats the block as TOML between +++ delimiters, followed by a
// blank line.
func (fm FrontMatter) Render() string {
	var b strings.Builder
	b.WriteString(frontMatterDelim + "\n")
	fmt.Fprintf(&b, "title = %s\n", quote(fm.Title))
	fmt.Fprintf(&b, "date = %s\n", quote(fm.Date.UTC().Format(time.RFC3339)))
	fmt.Fprintf(&b, "draft = %t\n", fm.Draft)
	fmt.Fprintf(&b, "summary = %s\n", quote(fm.Summary))
	fmt.Fprintf(&b, "tags = %s\n", quoteList(fm.Tags))
	fmt.Fprintf(&b, "categories = %s\n", quoteList(fm.Categories))
	fmt.Fprintf(&b, "author = %s\n", quote(fm.Author))
	fmt.Fprintf(&b, "autoGenerated = %t\n", fm.AutoGenerated)
	b.WriteString(frontMatterDelim + "\n\n")
	return b.String()
}

var tomlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote renders s as a TOML basic string.
func quote(s string) string {
	return `"` + tomlEscaper.Replace(s) + `"`
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Slugify turns a title into a lowercase, filename-safe token using the
// transliteration table for lang. Titles that reduce to nothing become "post".
// Distinct titles can share a slug.
func Slugify(title, lang string) string {
	if lang == "" {
		lang = "en"
	}
	if s := slug.MakeLang(title, lang); s != "" {
		return s
	}
	return fallbackSlug
}

// DocumentName returns the file name for a title generated at t:
// YYYY-MM-DD-<slug>.md, dated in UTC.
func DocumentName(t time.Time, title, lang string) string {
	return t.UTC().Format(dateLayout) + "-" + Slugify(title, lang) + ".md"
}

// Persist writes a as a Hugo document into the content directory and returns
// its path. The directory is created when missing; an existing file with the
// same name is overwritten.
func (g *Generator) Persist(a types.Article) (string, error) {
	now := g.now()
	path := filepath.Join(g.contentDir(), DocumentName(now, a.Title, g.cfg.SlugLanguage))

	if err := os.MkdirAll(g.contentDir(), 0o755); err != nil {
		return "", fmt.Errorf("creating content directory: %w", err)
	}

	fm := FrontMatter{
		Title:         a.Title,
		Date:          now,
		Draft:         !g.cfg.AutoPublish,
		Summary:       a.Summary,
		Tags:          a.Tags,
		Categories:    []string{a.Category},
		Author:        g.author(),
		AutoGenerated: true,
	}

	if err := os.WriteFile(path, []byte(fm.Render()+a.Content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
