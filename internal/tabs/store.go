package tabs

import (
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/hop/internal/logger"
)

// Store loads and saves document text by path.
type Store interface {
	Load(path string) (string, error)
	Save(path, text string) error
}

// LocalStore reads and writes the local filesystem. A missing file loads
// as an empty document.
type LocalStore struct{}

func (LocalStore) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.DebugTagf("tabs", "LocalStore: %s does not exist, starting empty", path)
			return "", nil
		}
		return "", fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return string(data), nil
}

func (LocalStore) Save(path, text string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}
