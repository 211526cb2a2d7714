package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/internship-wizard/internal/validation"
)

// MaxUploadBytes is the largest resume accepted (5 MiB).
const MaxUploadBytes = 5 << 20

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedMIMETypes is the upload allow-list.
var AllowedMIMETypes = []string{MIMEPDF, MIMEDOC, MIMEDOCX}

var extensionTypes = map[string]string{
	".pdf":  MIMEPDF,
	".doc":  MIMEDOC,
	".docx": MIMEDOCX,
}

// Sniffed types that say nothing about which document format the bytes hold.
var opaqueContainers = []string{"application/octet-stream", "application/zip", "application/x-ole-storage"}

// Upload is a resume file as received from the user.
type Upload struct {
	Filename string
	// DeclaredType is the MIME type reported by the client. When empty it is
	// inferred from the filename extension.
	DeclaredType string
	Data         []byte
}

// Size returns the upload size in bytes.
func (u *Upload) Size() int {
	return len(u.Data)
}

// MIMEType returns the declared type, falling back to the extension mapping.
func (u *Upload) MIMEType() string {
	if u.DeclaredType != "" {
		t, _, _ := strings.Cut(u.DeclaredType, ";")
		return strings.ToLower(strings.TrimSpace(t))
	}
	return extensionTypes[strings.ToLower(filepath.Ext(u.Filename))]
}

// LoadUpload reads a resume from disk.
func LoadUpload(path string) (*Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat resume %s: %w", path, err)
	}
	// refuse before reading the whole file into memory
	if info.Size() > MaxUploadBytes {
		return nil, tooLarge(info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
	}
	return &Upload{Filename: filepath.Base(path), Data: data}, nil
}

// CheckUpload enforces the type allow-list and the size cap. Violations are
// returned as *validation.InputError and must stop the upload before any
// network call.
func CheckUpload(u *Upload) error {
	if u == nil || len(u.Data) == 0 {
		return &validation.InputError{Field: "resume", Message: "file is empty"}
	}

	declared := u.MIMEType()
	if !allowed(declared) {
		return &validation.InputError{Field: "resume", Message: "please upload a PDF, DOC, or DOCX file"}
	}
	if u.Size() > MaxUploadBytes {
		return tooLarge(int64(u.Size()))
	}

	detected := mimetype.Detect(u.Data)
	if !sniffAgrees(declared, detected) {
		return &validation.InputError{
			Field:   "resume",
			Message: fmt.Sprintf("file content looks like %s, not %s", detected.String(), declared),
		}
	}
	return nil
}

func tooLarge(size int64) error {
	return &validation.InputError{
		Field:   "resume",
		Message: fmt.Sprintf("file size must be less than 5MB (got %d bytes)", size),
	}
}

func allowed(mime string) bool {
	for _, t := range AllowedMIMETypes {
		if t == mime {
			return true
		}
	}
	return false
}

// sniffAgrees accepts content whose detected type (or a parent of it) is the
// declared one, or which is an opaque container the detector cannot classify further.
func sniffAgrees(declared string, detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(declared) {
			return true
		}
	}
	for _, opaque := range opaqueContainers {
		if detected.Is(opaque) {
			return true
		}
	}
	return false
}
