package assets

import (
	"errors"
	"fmt"
)

// DefaultStyleName is the name of the built-in slide stylesheet.
const DefaultStyleName = "deck"

// SampleImageName is the name of the built-in image shown on the image slide.
const SampleImageName = "sample"

// Sentinel errors for asset lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")
)

// Loader loads stylesheets and images by name, without extension.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadImage(name string) (*Image, error)
}

// Image is a loaded image file.
type Image struct {
	Name     string // file name, extension included
	Data     []byte
	MIMEType string
}

// imageExtensions lists supported image extensions in lookup order.
var imageExtensions = []struct {
	ext  string
	mime string
}{
	{".svg", "image/svg+xml"},
	{".png", "image/png"},
	{".jpg", "image/jpeg"},
}

var defaultLoader Loader = Embedded()

// LoadStyle loads a built-in stylesheet.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadImage loads a built-in image.
func LoadImage(name string) (*Image, error) {
	return defaultLoader.LoadImage(name)
}

// ValidateAssetName accepts ASCII letters, digits, '-' and '_', starting
// with a letter or digit.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case (r == '-' || r == '_') && i > 0:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
