package attachment

import "fmt"

// Preview renders a short, display-only summary of a record.
func Preview(rec Record) string {
	switch rec.Kind {
	case KindCode, KindText, KindMarkdown:
		return fmt.Sprintf("```%s\n%s\n```", rec.Language, truncate(rec.Content, PreviewLength))
	case KindImage:
		return fmt.Sprintf("[Image Preview for %s]", rec.Name)
	case KindPDF:
		return fmt.Sprintf("PDF Content Preview:\n%s", truncate(rec.Content, PreviewLength))
	default:
		return fmt.Sprintf("Unsupported file type: %s", rec.Name)
	}
}

// truncate keeps the first n characters of s, appending "..." when anything was cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
