package video

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength       = 140
	MaxDescriptionLength = 2000
)

// Levels offered by the workout library.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Levels lists the selectable difficulty levels in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Domain errors
var (
	ErrTitleRequired = errors.New("title is required")
	ErrBadVideoType  = errors.New("video file must be a video type")
	ErrBadThumbType  = errors.New("thumbnail must be JPG or PNG")
)

// Category is a workout category as served by the backend.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Video is the panel's transient copy of a workout-library record.
// Media URLs and timestamps are backend-derived and read-only here.
type Video struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	Category       *Category `json:"category"`
	Level          string    `json:"level"`
	Description    string    `json:"description"`
	ForMembersOnly bool      `json:"forMembersOnly"`
	VideoURL       string    `json:"videoUrl"`
	ThumbnailURL   string    `json:"thumbnailUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CategoryName returns the category name, or empty when the category
// was deleted on the backend (the reference is nullable).
func (v Video) CategoryName() string {
	if v.Category == nil {
		return ""
	}
	return v.Category.Name
}

// Validate checks the user-editable fields before submission.
// PRE: Video carries form values
// POST: Returns error if validation fails, nil otherwise
func (v Video) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return ErrTitleRequired
	}
	if len(v.Title) > MaxTitleLength {
		return errors.New("title cannot exceed 140 characters")
	}
	if len(v.Description) > MaxDescriptionLength {
		return errors.New("description cannot exceed 2000 characters")
	}
	if v.Level != "" && v.Level != LevelBeginner && v.Level != LevelIntermediate && v.Level != LevelAdvanced {
		return errors.New("level must be 'beginner', 'intermediate', or 'advanced'")
	}
	return nil
}

// AllowedVideoType reports whether a declared MIME type is acceptable for the
// video file field. Authoritative validation is the backend's job.
func AllowedVideoType(mime string) bool {
	return strings.HasPrefix(mime, "video/")
}

// AllowedThumbnailType reports whether a declared MIME type is acceptable for
// the thumbnail field.
func AllowedThumbnailType(mime string) bool {
	return mime == "image/jpeg" || mime == "image/png"
}
