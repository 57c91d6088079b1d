package ebook_test

import (
	"strings"
	"testing"

	"coachpanel/internal/domain/ebook"
)

// TestEbook_Validate tests validation of user-editable e-book fields.
func TestEbook_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ebook   ebook.Ebook
		wantErr bool
	}{
		{
			name:    "valid ebook",
			ebook:   ebook.Ebook{Title: "Mobility Basics", Description: "Stretching routines", Price: 9.99},
			wantErr: false,
		},
		{
			name:    "empty title",
			ebook:   ebook.Ebook{Description: "no title"},
			wantErr: true,
		},
		{
			name:    "whitespace title",
			ebook:   ebook.Ebook{Title: "   "},
			wantErr: true,
		},
		{
			name:    "title too long",
			ebook:   ebook.Ebook{Title: strings.Repeat("x", 141)},
			wantErr: true,
		},
		{
			name:    "negative price",
			ebook:   ebook.Ebook{Title: "ok", Price: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ebook.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestEbook_SubmitPrice tests that a free e-book always submits price 0.
func TestEbook_SubmitPrice(t *testing.T) {
	free := ebook.Ebook{Title: "t", Price: 19.99, IsFree: true}
	if got := free.SubmitPrice(); got != "0" {
		t.Errorf("SubmitPrice() for free ebook = %q, want %q", got, "0")
	}

	paid := ebook.Ebook{Title: "t", Price: 19.99}
	if got := paid.SubmitPrice(); got != "19.99" {
		t.Errorf("SubmitPrice() = %q, want %q", got, "19.99")
	}
}

// TestAllowedTypes tests the client-side MIME type checks.
func TestAllowedTypes(t *testing.T) {
	for _, mime := range []string{"application/pdf", "image/jpeg", "image/png"} {
		if !ebook.AllowedEbookType(mime) {
			t.Errorf("AllowedEbookType(%q) = false, want true", mime)
		}
	}
	if ebook.AllowedEbookType("application/epub+zip") {
		t.Error("AllowedEbookType(epub) = true, want false")
	}
	if ebook.AllowedCoverType("application/pdf") {
		t.Error("AllowedCoverType(pdf) = true, want false")
	}
	if !ebook.AllowedCoverType("image/png") {
		t.Error("AllowedCoverType(png) = false, want true")
	}
}
