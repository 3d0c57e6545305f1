package slidedeck

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDeck      = errors.New("deck has no slides")
	ErrProducer       = errors.New("slide producer failed")
	ErrHTMLRender     = errors.New("HTML rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrWritePDF       = errors.New("failed to write PDF file")

	// Style validation errors.
	ErrInvalidStyle = errors.New("invalid style")

	// Element errors.
	ErrInvalidElement = errors.New("invalid slide element")
	ErrHighlight      = errors.New("syntax highlighting failed")
	ErrQRCode         = errors.New("QR code generation failed")

	// Metadata errors.
	ErrMetadata = errors.New("failed to write PDF metadata")

	// Post-processing errors.
	ErrPostProcess = errors.New("post-processing failed")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
