package cryptox

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// loadOrGenerateFile returns the contents of path, creating the file with
// gen() output (mode 0600) when it does not exist yet. Used for secrets that
// must survive restarts: the password pepper and the session signing key.
func loadOrGenerateFile(path string, gen func() ([]byte, error)) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	data, err = gen()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, err
	}
	return data, nil
}
