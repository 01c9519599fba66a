package util

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadSource returns the contents of a source file.
//
// The file is memory-mapped read-only and copied out before unmapping, so
// the returned slice stays valid after the converter renames or rewrites the
// file. Empty files and files that fail to map fall back to os.ReadFile.
func ReadSource(path string, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	// Can't mmap zero bytes
	if info.Size() == 0 {
		return []byte{}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		logger.Warn("mmap failed, using fallback", "path", path, "error", err)
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		return content, nil
	}

	content := make([]byte, len(data))
	copy(content, data)

	if err := data.Unmap(); err != nil {
		logger.Debug("unmap failed", "path", path, "error", err)
	}

	return content, nil
}
