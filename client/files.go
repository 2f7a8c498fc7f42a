package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"

	dexihttp "github.com/dexiio/app-sdk-go/http"
)

// FileFieldPrefix starts every file field value.
const FileFieldPrefix = "FILE:"

// FILE:<mimetype>;<size>;<uuid>
var fileFieldPattern = regexp.MustCompile(
	`^FILE:([^;]*);([^;]*);([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})$`,
)

// FileField is a parsed file field value.
type FileField struct {
	MimeType string
	// Size is -1 when the value does not carry a numeric size.
	Size   int64
	FileID string
}

// IsFileFieldValue reports whether value references a dexi file.
func IsFileFieldValue(value string) bool {
	return fileFieldPattern.MatchString(value)
}

// ParseFileFieldValue splits a file field value into its parts.
func ParseFileFieldValue(value string) (FileField, error) {
	m := fileFieldPattern.FindStringSubmatch(value)
	if m == nil {
		return FileField{}, fmt.Errorf("%w: %q", ErrNotFileValue, value)
	}

	size, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		size = -1
	}
	return FileField{MimeType: m[1], Size: size, FileID: m[3]}, nil
}

// FileHandle is an open download. Body must be closed.
type FileHandle struct {
	FileID   string
	MimeType string
	// Size is the content length, or -1 if unknown.
	Size int64
	Body io.ReadCloser
}

// Read reads from Body.
func (h *FileHandle) Read(p []byte) (int, error) { return h.Body.Read(p) }

// Close closes Body.
func (h *FileHandle) Close() error { return h.Body.Close() }

// FileClient downloads files referenced by file field values.
type FileClient struct {
	http *dexihttp.Client
}

// GetFile opens the file referenced by value.
func (c *FileClient) GetFile(ctx context.Context, value string) (*FileHandle, error) {
	field, err := ParseFileFieldValue(value)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Open(ctx, "files/"+url.PathEscape(field.FileID))
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", field.FileID, err)
	}

	h := &FileHandle{
		FileID:   field.FileID,
		MimeType: resp.Header.Get("Content-Type"),
		Size:     resp.ContentLength,
		Body:     resp.Body,
	}
	if h.MimeType == "" {
		h.MimeType = field.MimeType
	}
	if h.Size < 0 {
		h.Size = field.Size
	}
	return h, nil
}
