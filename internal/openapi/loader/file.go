package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

func loadFile(ctx context.Context, path string, limit int64) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("openapi loader: %s is a directory", path)
	}
	if err := checkSize(path, info.Size(), limit); err != nil {
		return nil, err
	}

	return os.ReadFile(abs)
}
