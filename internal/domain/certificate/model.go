package certificate

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength        = 140
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrNameRequired = errors.New("name is required")
	ErrBadFileType  = errors.New("certificate file must be PDF or image (JPG, PNG)")
	ErrBadThumbType = errors.New("thumbnail must be JPG or PNG")
)

// Certificate is the panel's transient copy of a backend certificate record.
type Certificate struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PDFURL      string    `json:"pdfUrl"`
	ThumbURL    string    `json:"thumbUrl"`
	MimeType    string    `json:"mimeType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the user-editable fields before submission.
func (c Certificate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("name cannot exceed 140 characters")
	}
	if len(c.Description) > MaxDescriptionLength {
		return errors.New("description cannot exceed 2000 characters")
	}
	return nil
}

// AllowedFileType reports whether a declared MIME type is acceptable for the
// certificate file field.
func AllowedFileType(mime string) bool {
	switch mime {
	case "application/pdf", "image/jpeg", "image/png":
		return true
	}
	return false
}

// AllowedThumbType reports whether a declared MIME type is acceptable for the
// thumbnail field.
func AllowedThumbType(mime string) bool {
	return mime == "image/jpeg" || mime == "image/png"
}
