package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Loadenv merges the given dotenv files (".env" when none are named) into
// the process environment. Missing files are skipped; variables already set
// in the environment win. It returns the files that were actually read.
func Loadenv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var loaded []string
	for _, file := range files {
		err := godotenv.Load(file)
		switch {
		case err == nil:
			loaded = append(loaded, file)
		case errors.Is(err, fs.ErrNotExist):
			continue
		default:
			return loaded, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return loaded, nil
}
