package inquiry

import (
	"fmt"
	"strings"
)

// Markdown renders a record and its attachment names as a markdown document.
// Blank fields read "not provided".
func Markdown(r Record, attachments []string) string {
	var b strings.Builder

	name := strings.TrimSpace(r.FullName)
	if name == "" {
		name = "Project inquiry"
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(name))

	for _, spec := range Steps() {
		if spec.Kind == KindFiles || spec.Kind == KindText {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", spec.Title)
		for _, f := range spec.Fields {
			fmt.Fprintf(&b, "- **%s:** %s\n", f.Label(), valueOrPlaceholder(r.Get(f)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Project Description\n\n")
	if desc := strings.TrimSpace(r.ProjectDescription); desc != "" {
		b.WriteString(desc)
	} else {
		b.WriteString("_not provided_")
	}
	b.WriteString("\n\n")

	b.WriteString("## Files\n\n")
	if len(attachments) == 0 {
		b.WriteString("_none_\n")
	}
	for _, a := range attachments {
		fmt.Fprintf(&b, "- %s\n", escapeMarkdown(a))
	}

	return b.String()
}

func valueOrPlaceholder(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "_not provided_"
	}
	return escapeMarkdown(v)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
