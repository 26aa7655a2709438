package attachment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"claude-vertex-chat/internal/model"
)

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 150)

	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "short code",
			rec:  Record{Name: "x.py", Kind: KindCode, Content: "print(1)", Language: "py"},
			want: "```py\nprint(1)\n```",
		},
		{
			name: "long text truncated",
			rec:  Record{Name: "x.txt", Kind: KindText, Content: long, Language: "text"},
			want: "```text\n" + strings.Repeat("a", 100) + "...\n```",
		},
		{
			name: "exactly preview length",
			rec:  Record{Name: "x.md", Kind: KindMarkdown, Content: strings.Repeat("b", 100), Language: "markdown"},
			want: "```markdown\n" + strings.Repeat("b", 100) + "\n```",
		},
		{
			name: "image",
			rec:  Record{Name: "cat.png", Kind: KindImage, Content: "aGVsbG8="},
			want: "[Image Preview for cat.png]",
		},
		{
			name: "pdf",
			rec:  Record{Name: "doc.pdf", Kind: KindPDF, Content: long},
			want: "PDF Content Preview:\n" + strings.Repeat("a", 100) + "...",
		},
		{
			name: "multibyte characters counted as runes",
			rec:  Record{Name: "u.txt", Kind: KindText, Content: strings.Repeat("é", 101), Language: "text"},
			want: "```text\n" + strings.Repeat("é", 100) + "...\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.rec))
		})
	}
}

func TestToModelContent(t *testing.T) {
	t.Run("code", func(t *testing.T) {
		parts := ToModelContent(Record{Name: "m.go", Kind: KindCode, Content: "package m", Language: "go"})
		assert.Equal(t, []model.ContentPart{model.TextPart("```go\npackage m\n```\nFile: m.go")}, parts)
	})

	t.Run("image", func(t *testing.T) {
		parts := ToModelContent(Record{Name: "cat.png", Kind: KindImage, Content: "QUJD"})
		assert.Equal(t, []model.ContentPart{
			model.ImagePart("image/png", "QUJD"),
			model.TextPart("Image file: cat.png"),
		}, parts)
	})

	t.Run("pdf", func(t *testing.T) {
		parts := ToModelContent(Record{Name: "doc.pdf", Kind: KindPDF, Content: "body"})
		assert.Equal(t, []model.ContentPart{model.TextPart("PDF file: doc.pdf\n\nContent:\n\nbody")}, parts)
	})

	t.Run("unknown kind", func(t *testing.T) {
		parts := ToModelContent(Record{Name: "x.bin", Kind: Kind("binary")})
		assert.Equal(t, []model.ContentPart{model.TextPart("Unsupported file type: x.bin")}, parts)
	})
}

func TestTextOf_SkipsImageData(t *testing.T) {
	got := TextOf(Record{Name: "cat.png", Kind: KindImage, Content: "QUJD"})
	assert.Equal(t, "Image file: cat.png", got)
}
