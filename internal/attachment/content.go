package attachment

import (
	"fmt"
	"strings"

	"claude-vertex-chat/internal/model"
)

// ToModelContent converts a record into the content parts sent to the model.
func ToModelContent(rec Record) []model.ContentPart {
	switch rec.Kind {
	case KindCode, KindText, KindMarkdown:
		return []model.ContentPart{
			model.TextPart(fmt.Sprintf("```%s\n%s\n```\nFile: %s", rec.Language, rec.Content, rec.Name)),
		}
	case KindImage:
		return []model.ContentPart{
			model.ImagePart(imageMediaType, rec.Content),
			model.TextPart(fmt.Sprintf("Image file: %s", rec.Name)),
		}
	case KindPDF:
		return []model.ContentPart{
			model.TextPart(fmt.Sprintf("PDF file: %s\n\nContent:\n\n%s", rec.Name, rec.Content)),
		}
	default:
		return []model.ContentPart{
			model.TextPart(fmt.Sprintf("Unsupported file type: %s", rec.Name)),
		}
	}
}

// TextOf joins the text parts of a record's model content, skipping binary parts.
func TextOf(rec Record) string {
	parts := ToModelContent(rec)
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Type == model.PartText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
