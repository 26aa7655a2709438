package attachment

const (
	// DefaultMaxFileSize is the per-file upload limit (5 MiB).
	DefaultMaxFileSize int64 = 5 * 1024 * 1024

	// DefaultConcurrency bounds how many files of one batch are normalized at once.
	DefaultConcurrency = 4

	// PreviewLength is the number of characters kept by Preview.
	PreviewLength = 100

	// maxImagePixels rejects decompression bombs before full decode.
	maxImagePixels = 64 * 1024 * 1024

	imageMediaType = "image/png"
)

var codeExtensions = map[string]struct{}{
	"py":    {},
	"js":    {},
	"html":  {},
	"css":   {},
	"json":  {},
	"cpp":   {},
	"java":  {},
	"rb":    {},
	"php":   {},
	"swift": {},
	"kt":    {},
}

// AcceptedExtensions lists every extension (with leading dot) the normalizer accepts.
// It is what the upload picker advertises.
func AcceptedExtensions() []string {
	return []string{
		".py", ".js", ".html", ".css", ".json", ".cpp", ".java", ".rb", ".php", ".swift", ".kt",
		".txt", ".jpg", ".jpeg", ".png", ".md", ".pdf",
	}
}
