package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/internal/conversation"
)

func TestPreview(t *testing.T) {
	env := newTestEnv(t, Config{})

	out, err := env.uc.Preview(context.Background(), conversation.PreviewInput{Files: []attachment.RawFile{
		{Name: "notes.md", Data: []byte("# Title")},
		{Name: "bad.txt", Data: []byte{0xff, 0xfe}},
	}})
	require.NoError(t, err)

	require.Len(t, out.Accepted, 1)
	assert.Equal(t, conversation.AttachmentPreview{Name: "notes.md", Kind: attachment.KindMarkdown, Preview: "```markdown\n# Title\n```"}, out.Accepted[0])
	require.Len(t, out.Failures, 1)
	assert.Equal(t, "bad.txt", out.Failures[0].Name)
	assert.Equal(t, "decode", out.Failures[0].Code)
	assert.Equal(t, 0, env.store.Len())
}

func TestPreview_TooManyFiles(t *testing.T) {
	env := newTestEnv(t, Config{MaxFiles: 1})

	_, err := env.uc.Preview(context.Background(), conversation.PreviewInput{Files: make([]attachment.RawFile, 2)})
	assert.ErrorIs(t, err, conversation.ErrTooManyFiles)
}
