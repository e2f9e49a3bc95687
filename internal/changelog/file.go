package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

// DefaultFileName is the changelog written in the working directory
const DefaultFileName = "CHANGELOG.md"

// WriteFile replaces the file at path with content.
// The previous file is removed first; a missing file is not an error.
func WriteFile(path string, content string) error {
	if err := os.Remove(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove existing changelog %s: %w", path, err)
		}
	} else {
		log.Debug().Str("file", path).Msg("Removed existing changelog")
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write changelog %s: %w", path, err)
	}

	log.Debug().Str("file", path).Int("bytes", len(content)).Msg("Wrote changelog")
	return nil
}
