package ebook

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 140
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrTitleRequired = errors.New("title is required")
	ErrBadEbookType  = errors.New("ebook file must be PDF or image (JPG, PNG)")
	ErrBadCoverType  = errors.New("cover image must be JPG or PNG")
	ErrNegativePrice = errors.New("price cannot be negative")
)

// Ebook is the panel's transient copy of a backend e-book record.
type Ebook struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CoverURL       string    `json:"coverUrl"`
	EbookURL       string    `json:"ebookUrl"`
	MimeType       string    `json:"mimeType"`
	Price          float64   `json:"price"`
	ForMembersOnly bool      `json:"forMembersOnly"`
	IsFree         bool      `json:"isFree"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the user-editable fields before submission.
// PRE: Ebook carries form values
// POST: Returns error if validation fails, nil otherwise
func (e Ebook) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("title cannot exceed 140 characters")
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("description cannot exceed 2000 characters")
	}
	if e.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// SubmitPrice returns the price string sent to the backend. A free e-book
// always submits 0 regardless of any previously entered value.
func (e Ebook) SubmitPrice() string {
	if e.IsFree {
		return "0"
	}
	return strconv.FormatFloat(e.Price, 'f', -1, 64)
}

// AllowedEbookType reports whether a declared MIME type is acceptable for the
// ebook file field.
func AllowedEbookType(mime string) bool {
	switch mime {
	case "application/pdf", "image/jpeg", "image/png":
		return true
	}
	return false
}

// AllowedCoverType reports whether a declared MIME type is acceptable for the
// cover image field.
func AllowedCoverType(mime string) bool {
	return mime == "image/jpeg" || mime == "image/png"
}
