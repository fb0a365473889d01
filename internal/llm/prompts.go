package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/roast.txt
var roastTemplate string

// RoastPrompt embeds the resume text verbatim into the RoastBot instructions.
func RoastPrompt(resumeText string) string {
	return strings.TrimRight(strings.Replace(roastTemplate, "{{resume_text}}", resumeText, 1), "\n")
}
