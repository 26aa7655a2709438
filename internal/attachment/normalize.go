package attachment

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// New builds a Normalizer. Zero values in cfg fall back to the defaults.
func New(cfg Config) *Normalizer {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &Normalizer{
		maxFileSize: cfg.MaxFileSize,
		concurrency: cfg.Concurrency,
	}
}

// MaxFileSize returns the configured per-file limit in bytes.
func (n *Normalizer) MaxFileSize() int64 {
	return n.maxFileSize
}

// Normalize validates one upload and converts it into a Record.
// The returned error is always an *Error.
func (n *Normalizer) Normalize(file RawFile) (Record, error) {
	size := file.Size
	if int64(len(file.Data)) > size {
		size = int64(len(file.Data))
	}
	if size > n.maxFileSize {
		return Record{}, newError(file.Name, ErrTooLarge, fmt.Sprintf(
			"File %s exceeds the maximum size limit of %.2f MB",
			file.Name, float64(n.maxFileSize)/(1024*1024)))
	}

	ext := extension(file.Name)
	kind, ok := classify(ext)
	if !ok {
		return Record{}, unsupported(file.Name, ext)
	}

	switch kind {
	case KindCode, KindText, KindMarkdown:
		return normalizeText(file, kind, ext)
	case KindImage:
		return normalizeImage(file)
	case KindPDF:
		return normalizePDF(file)
	default:
		return Record{}, unsupported(file.Name, ext)
	}
}

// NormalizeAll normalizes a batch concurrently. Results keep the input order and a
// failing file never prevents the others from being processed.
func (n *Normalizer) NormalizeAll(files []RawFile) []Result {
	results := make([]Result, len(files))

	var g errgroup.Group
	g.SetLimit(n.concurrency)
	for i, f := range files {
		g.Go(func() error {
			rec, err := n.Normalize(f)
			if err != nil {
				results[i] = Result{Name: f.Name, Err: err}
				return nil
			}
			results[i] = Result{Name: f.Name, Record: &rec}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func normalizeText(file RawFile, kind Kind, ext string) (Record, error) {
	if !utf8.Valid(file.Data) {
		return Record{}, newError(file.Name, ErrDecode, fmt.Sprintf(
			"Error decoding file %s. Please ensure it's in a valid UTF-8 encoding.", file.Name))
	}

	var lang string
	switch kind {
	case KindCode:
		lang = ext
	case KindMarkdown:
		lang = "markdown"
	default:
		lang = "text"
	}

	return Record{
		Name:     file.Name,
		Kind:     kind,
		Content:  string(file.Data),
		Language: lang,
	}, nil
}

func unsupported(name, ext string) *Error {
	if ext == "" {
		return newError(name, ErrUnsupportedType, fmt.Sprintf("Unsupported file type: %s has no extension", name))
	}
	return newError(name, ErrUnsupportedType, fmt.Sprintf("Unsupported file type: .%s", ext))
}

// extension returns the lower-cased extension without the leading dot.
func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func classify(ext string) (Kind, bool) {
	if _, ok := codeExtensions[ext]; ok {
		return KindCode, true
	}
	switch ext {
	case "txt":
		return KindText, true
	case "jpg", "jpeg", "png":
		return KindImage, true
	case "md":
		return KindMarkdown, true
	case "pdf":
		return KindPDF, true
	}
	return "", false
}
