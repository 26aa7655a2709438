package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"claude-vertex-chat/internal/attachment"
	"claude-vertex-chat/pkg/response"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

const (
	formFieldText  = "text"
	formFieldFiles = "files"

	// formOverhead covers multipart boundaries and the text field.
	formOverhead = 1 << 20
)

// uploadedFile is one multipart file part. Data is left empty for parts
// whose declared size already exceeds the limit.
type uploadedFile struct {
	Name string
	Size int64
	Data []byte
}

func toRawFiles(files []uploadedFile) []attachment.RawFile {
	if len(files) == 0 {
		return nil
	}
	out := make([]attachment.RawFile, 0, len(files))
	for _, f := range files {
		out = append(out, attachment.RawFile{Name: f.Name, Size: f.Size, Data: f.Data})
	}
	return out
}

// processSetSystemPromptReq binds and validates the system prompt body.
func (h *handler) processSetSystemPromptReq(c *gin.Context) (setSystemPromptReq, error) {
	var req setSystemPromptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processMessageReq reads the text field and the uploaded files.
func (h *handler) processMessageReq(c *gin.Context) (messageReq, error) {
	form, err := h.readMultipart(c)
	if err != nil {
		return messageReq{}, err
	}

	var req messageReq
	if vals := form.Value[formFieldText]; len(vals) > 0 {
		req.Text = vals[0]
	}
	req.Files, err = h.readFiles(form.File[formFieldFiles])
	return req, err
}

// processPreviewReq reads the uploaded files.
func (h *handler) processPreviewReq(c *gin.Context) (previewReq, error) {
	form, err := h.readMultipart(c)
	if err != nil {
		return previewReq{}, err
	}

	files, err := h.readFiles(form.File[formFieldFiles])
	return previewReq{Files: files}, err
}

func (h *handler) readMultipart(c *gin.Context) (*multipart.Form, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize())

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, response.NewHTTPError(http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body is too large, the limit is %s", humanize.IBytes(uint64(tooLarge.Limit))))
		}
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	return form, nil
}

func (h *handler) maxBodySize() int64 {
	files := int64(h.cfg.MaxFiles)
	if files <= 0 {
		files = 1
	}
	// room for one oversized part
	return (files+1)*h.cfg.MaxFileSize + formOverhead
}

func (h *handler) readFiles(headers []*multipart.FileHeader) ([]uploadedFile, error) {
	files := make([]uploadedFile, 0, len(headers))
	for _, fh := range headers {
		f := uploadedFile{Name: fh.Filename, Size: fh.Size}
		if fh.Size <= h.cfg.MaxFileSize {
			data, err := readPart(fh, h.cfg.MaxFileSize)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
			}
			f.Data = data
		}
		files = append(files, f)
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(io.LimitReader(src, limit+1))
}
