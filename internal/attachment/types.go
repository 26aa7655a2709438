package attachment

// Kind is the category an uploaded file is normalized into.
type Kind string

const (
	KindCode     Kind = "code"
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindMarkdown Kind = "markdown"
	KindPDF      Kind = "pdf"
)

// RawFile is an upload as received from the client.
type RawFile struct {
	Name string
	Size int64 // declared size; may be zero when unknown
	Data []byte
}

// Record is a normalized attachment. Content is UTF-8 text, except for KindImage
// where it holds base64-encoded PNG bytes. Records are never mutated once built.
type Record struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// Result is the outcome for one file of a batch. Exactly one of Record or Err is set.
type Result struct {
	Name   string
	Record *Record
	Err    error
}

// OK reports whether the file was normalized successfully.
func (r Result) OK() bool {
	return r.Err == nil && r.Record != nil
}

// Config tunes a Normalizer.
type Config struct {
	MaxFileSize int64
	Concurrency int
}

// Normalizer converts raw uploads into Records.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	maxFileSize int64
	concurrency int
}
