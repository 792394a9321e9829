package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when ENV_FILE is unset.
const DefaultEnvFile = ".env"

// EnvFilePath returns the dotenv file to load, honouring ENV_FILE.
func EnvFilePath() string {
	if p := os.Getenv("ENV_FILE"); p != "" {
		return p
	}
	return DefaultEnvFile
}

// LoadDotenv exports the variables in path into the process environment.
// Variables already set are left alone, so real environment wins. A missing
// file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
