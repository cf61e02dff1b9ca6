package ocr

import (
	"context"
	"os"
	"time"

	"github.com/Havardbaban/buildcarbon-sub000/internal/common"
)

// FileSource reads pre-extracted OCR dumps from disk. It stands in for the
// real recognition collaborator in the CLI and in tests.
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

func (s *FileSource) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}
	start := time.Now()
	b, err := os.ReadFile(path)
	if err != nil {
		return TextExtractionResult{}, common.WrapError(err, "read text dump")
	}
	return TextExtractionResult{
		Text:       string(b),
		Pages:      1,
		SourceType: "TEXT",
		Method:     "file",
		Duration:   time.Since(start),
	}, nil
}
