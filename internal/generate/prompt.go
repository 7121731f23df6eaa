// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/autoblog/pkg/types"
)

// Response field labels, in the order the model is asked to emit them.
const (
	LabelTitle    = "TITLE:"
	LabelSummary  = "SUMMARY:"
	LabelTags     = "TAGS:"
	LabelCategory = "CATEGORY:"
	LabelContent  = "CONTENT:"
)

// Labels lists the response field labels in order.
var Labels = []string{LabelTitle, LabelSummary, LabelTags, LabelCategory, LabelContent}

// defaultTechTopics seeds prompts when no topic is requested. It is separate
// from the topic catalog managed by the topics package.
var defaultTechTopics = []string{
	"JavaScript", "Python", "React", "Vue", "Node.js", "TypeScript",
	"AI", "Machine Learning", "Frontend Development", "Backend Development",
	"DevOps", "Docker", "Microservices", "Databases", "Redis", "MongoDB",
	"PostgreSQL", "Kubernetes",
}

var defaultTutorialCategories = []string{
	"Getting Started", "Intermediate Guide", "Hands-on Project",
	"Best Practices", "Performance Tuning", "Architecture Design",
}

const defaultLanguage = "English"

var systemTmpl = template.Must(template.New("system").Parse(
	`You are a professional technical blog author who writes high-quality technical articles and tutorials. Write in {{.Language}} and keep the content professional, practical, and easy to follow.`))

var techTmpl = template.Must(template.New("tech").Parse(`Write a technical article about "{{.Topic}}". Requirements:

1. The title must be engaging and search-friendly
2. Cover an introduction, core concepts, practical applications, code examples, best practices, and a conclusion
3. Keep the length between 2000 and 3000 words
4. Include practical code examples where applicable
5. Use a professional but approachable style
6. Make it suitable for publishing on a technical blog

Return the article in exactly this format:
{{.Format}}`))

var tutorialTmpl = template.Must(template.New("tutorial").Parse(`Write a "{{.Category}}" tutorial about "{{.Topic}}". Requirements:

1. The title must make clear that this is a tutorial
2. Structure it as a preface, prerequisites, step-by-step instructions, common problems, and a summary
3. Include detailed steps and code examples
4. Explain every step clearly
5. Readers should be able to follow along hands-on
6. Keep the length between 2500 and 3500 words

Return the tutorial in exactly this format:
{{.Format}}`))

const techFormat = LabelTitle + ` [article title]
` + LabelSummary + ` [article summary, 1-2 sentences]
` + LabelTags + ` [tag1, tag2, tag3] (3-5 tags)
` + LabelCategory + ` [category]
` + LabelContent + ` [article body in Markdown]`

const tutorialFormat = LabelTitle + ` [tutorial title]
` + LabelSummary + ` [tutorial summary]
` + LabelTags + ` [tag1, tag2, tag3] (3-5 tags)
` + LabelCategory + ` [Tutorial]
` + LabelContent + ` [tutorial body in Markdown, with numbered steps]`

// Prompt is the message pair sent to the model, plus the subject that was
// chosen for it.
type Prompt struct {
	System string
	User   string

	// Topic and Category record the subject; Category is empty for tech articles.
	Topic    string
	Category string
}

// BuildPrompt renders the prompt for req. When req.Topic is empty a topic is
// drawn uniformly from the configured topic list; tutorials also draw a
// tutorial category.
func (g *Generator) BuildPrompt(req types.GenerationRequest) (Prompt, error) {
	techTopics := g.cfg.TechTopics
	if len(techTopics) == 0 {
		techTopics = defaultTechTopics
	}
	categories := g.cfg.TutorialCategories
	if len(categories) == 0 {
		categories = defaultTutorialCategories
	}
	language := g.cfg.Language
	if language == "" {
		language = defaultLanguage
	}

	p := Prompt{Topic: req.Topic}

	var tmpl *template.Template
	var format string
	switch req.Type {
	case types.ArticleTech:
		tmpl, format = techTmpl, techFormat
	case types.ArticleTutorial:
		tmpl, format = tutorialTmpl, tutorialFormat
		p.Category = categories[g.intN(len(categories))]
	default:
		return Prompt{}, fmt.Errorf("unknown article type %q", req.Type)
	}
	if p.Topic == "" {
		p.Topic = techTopics[g.intN(len(techTopics))]
	}

	var buf bytes.Buffer
	if err := systemTmpl.Execute(&buf, struct{ Language string }{language}); err != nil {
		return Prompt{}, fmt.Errorf("rendering system prompt: %w", err)
	}
	p.System = buf.String()

	buf.Reset()
	data := struct{ Topic, Category, Format string }{p.Topic, p.Category, format}
	if err := tmpl.Execute(&buf, data); err != nil {
		return Prompt{}, fmt.Errorf("rendering prompt: %w", err)
	}
	p.User = buf.String()

	return p, nil
}
