// Package ocr defines the contract with the external text-recognition
// collaborator. The core never performs OCR itself; it consumes whatever
// text a TextSource hands it.
package ocr

import (
	"context"
	"time"
)

// TextSource turns a stored document into raw text.
type TextSource interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "IMAGE" | "TEXT"
	Method     string // collaborator-specific method label
	Language   string
	Duration   time.Duration
	Warnings   []string
}
