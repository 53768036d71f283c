package domain

import (
	"context"
	"errors"
)

// PrintResult points at the rendered label on disk and over HTTP.
type PrintResult struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	FileURL  string `json:"file_url"`
}

type Service interface {
	// Print renders the delivery label for the order and writes it to
	// the export directory, overwriting any previous render.
	Print(ctx context.Context, orderNo string) (*PrintResult, error)
}

var (
	ErrOrderNotFound = errors.New("label_order_not_found")
	ErrRenderFailed  = errors.New("label_render_failed")
)
