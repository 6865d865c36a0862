package inquiry

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Attachment is a staged file held in memory until submission.
type Attachment struct {
	Name      string
	MediaType string
	Data      []byte
	// Path is where the file was read from; empty when it did not come off disk.
	Path string
}

// Size returns the attachment size in bytes.
func (a Attachment) Size() int64 {
	return int64(len(a.Data))
}

// LoadAttachment reads a file from disk into an Attachment.
func LoadAttachment(path string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("reading attachment: %w", err)
	}
	name := filepath.Base(path)
	return Attachment{
		Name:      name,
		MediaType: detectMediaType(name, data),
		Data:      data,
		Path:      path,
	}, nil
}

func detectMediaType(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".svg":  true,
	".tif":  true,
	".tiff": true,
	".heic": true,
}

// Accepts reports whether a file name matches the picker filter: images and
// PDF. It is advisory; AttachmentSet itself stages anything.
func Accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if acceptedExtensions[ext] {
		return true
	}
	return strings.HasPrefix(mime.TypeByExtension(ext), "image/")
}

// AttachmentSet is an ordered list of staged files. Names may repeat.
type AttachmentSet struct {
	files []Attachment
}

// AddFiles appends files in the order given.
func (s *AttachmentSet) AddFiles(files ...Attachment) {
	if len(files) == 0 {
		return
	}
	s.files = append(s.files, files...)
}

// RemoveFile removes the file at index i. Out-of-range indexes are ignored.
func (s *AttachmentSet) RemoveFile(i int) {
	if i < 0 || i >= len(s.files) {
		return
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
}

// Len returns the number of staged files.
func (s *AttachmentSet) Len() int {
	return len(s.files)
}

// At returns the file at index i.
func (s *AttachmentSet) At(i int) (Attachment, bool) {
	if i < 0 || i >= len(s.files) {
		return Attachment{}, false
	}
	return s.files[i], true
}

// Files returns a copy of the staged list.
func (s *AttachmentSet) Files() []Attachment {
	if len(s.files) == 0 {
		return nil
	}
	out := make([]Attachment, len(s.files))
	copy(out, s.files)
	return out
}

// TotalSize returns the summed size of all staged files.
func (s *AttachmentSet) TotalSize() int64 {
	var n int64
	for _, f := range s.files {
		n += f.Size()
	}
	return n
}

// Clear drops every staged file.
func (s *AttachmentSet) Clear() {
	s.files = nil
}

// HumanSize formats a byte count for display.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
