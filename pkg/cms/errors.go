package cms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var (
	// ErrPostNotFound indicates a blog post was not found
	ErrPostNotFound = errors.New("blog post not found")

	// ErrSlideNotFound indicates a hero slide was not found
	ErrSlideNotFound = errors.New("hero slide not found")

	// ErrMediaNotFound indicates a media asset was not found
	ErrMediaNotFound = errors.New("media asset not found")

	// ErrSlugConflict indicates the store rejected a write because the slug is taken
	ErrSlugConflict = errors.New("slug already in use")

	// ErrSlugExhausted indicates no free suffix was found within MaxSlugAttempts
	ErrSlugExhausted = errors.New("no unique slug available")

	// ErrEmptySlug indicates a slug could not be derived from the input
	ErrEmptySlug = errors.New("slug is empty")

	// ErrUnsupportedMedia indicates an upload outside the mime/extension allow-list
	ErrUnsupportedMedia = errors.New("invalid file type. Only images (JPEG, PNG, GIF, WebP) and videos (MP4, MOV, WebM) are allowed")

	// ErrUploadTooLarge indicates an upload above the configured byte limit
	ErrUploadTooLarge = errors.New("file too large")

	// ErrInvalidImage indicates an upload declared as an image could not be decoded
	ErrInvalidImage = errors.New("uploaded image could not be processed")

	// ErrAssetNotFound indicates the asset host holds nothing under a key
	ErrAssetNotFound = errors.New("asset not found on host")

	// ErrNoAssetHost indicates media was uploaded to a service built without an asset host
	ErrNoAssetHost = errors.New("no asset host configured")
)

// FieldError is a validation failure on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects the field errors of a rejected request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// validationErrorFrom converts ozzo-validation output into a ValidationError.
// Internal rule errors are returned unchanged.
func validationErrorFrom(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return &ValidationError{Fields: []FieldError{{Message: err.Error()}}}
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ve := &ValidationError{}
	for _, k := range keys {
		ve.Fields = append(ve.Fields, FieldError{Field: k, Message: errs[k].Error()})
	}
	return ve
}

// PostError represents an error related to blog post operations
type PostError struct {
	PostID uuid.UUID
	Op     string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for post %s: %v", e.Op, e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// SlideError represents an error related to hero slide operations
type SlideError struct {
	SlideID uuid.UUID
	Op      string
	Err     error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("slide operation %s failed for slide %s: %v", e.Op, e.SlideID, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

// MediaError represents an error related to media asset operations
type MediaError struct {
	MediaID uuid.UUID
	Op      string
	Err     error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media operation %s failed for asset %s: %v", e.Op, e.MediaID, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// HostError represents a failure reported by an asset host
type HostError struct {
	Host string
	Key  string
	Op   string
	Err  error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("asset host operation %s failed for key %s on %s: %v", e.Op, e.Key, e.Host, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}
