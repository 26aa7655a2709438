package model

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the roles the model API accepts in a message list.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one turn of a conversation.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	MessageID string `json:"message_id,omitempty"`

	// Parts is set only by the structured assembly mode. When present it is sent
	// to the model instead of Content.
	Parts []ContentPart `json:"parts,omitempty"`
}

// PartType is the kind of a ContentPart.
type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image"
)

// ContentPart is a single block of a multi-part message.
type ContentPart struct {
	Type      PartType `json:"type"`
	Text      string   `json:"text,omitempty"`
	MediaType string   `json:"media_type,omitempty"` // image parts only
	Data      string   `json:"data,omitempty"`       // base64, image parts only
}

// TextPart builds a text ContentPart.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartText, Text: text}
}

// ImagePart builds a base64 image ContentPart.
func ImagePart(mediaType, data string) ContentPart {
	return ContentPart{Type: PartImage, MediaType: mediaType, Data: data}
}
