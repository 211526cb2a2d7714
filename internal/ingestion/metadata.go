package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes an accepted upload attempt.
type Metadata struct {
	Filename  string `json:"filename"`
	MIMEType  string `json:"mime_type"`
	Size      int    `json:"size"`
	Hash      string `json:"hash"`      // SHA256 hex digest
	Timestamp string `json:"timestamp"` // RFC3339 format
}

// NewMetadata captures the identity of an upload with the current timestamp.
func NewMetadata(u *Upload) *Metadata {
	return &Metadata{
		Filename:  u.Filename,
		MIMEType:  u.MIMEType(),
		Size:      u.Size(),
		Hash:      computeHash(u.Data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
