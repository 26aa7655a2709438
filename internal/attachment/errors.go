package attachment

import "errors"

var (
	ErrTooLarge        = errors.New("attachment too large")
	ErrUnsupportedType = errors.New("attachment type not supported")
	ErrDecode          = errors.New("attachment is not valid UTF-8")
	ErrImage           = errors.New("attachment is not a valid image")
	ErrPDFEmpty        = errors.New("attachment PDF has no readable text")
	ErrPDFExtract      = errors.New("attachment PDF could not be read")
)

// Error is a per-file normalization failure. Reason is the user-facing message;
// Err is one of the sentinel errors above so callers can use errors.Is.
type Error struct {
	Name   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns a short machine-readable reason, used for metrics labels and API payloads.
func (e *Error) Code() string {
	switch {
	case errors.Is(e.Err, ErrTooLarge):
		return "too_large"
	case errors.Is(e.Err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(e.Err, ErrDecode):
		return "decode"
	case errors.Is(e.Err, ErrImage):
		return "image"
	case errors.Is(e.Err, ErrPDFEmpty):
		return "pdf_empty"
	case errors.Is(e.Err, ErrPDFExtract):
		return "pdf_extract"
	default:
		return "unknown"
	}
}

func newError(name string, sentinel error, reason string) *Error {
	return &Error{Name: name, Reason: reason, Err: sentinel}
}
