package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// GodotenvProvider reads Unix-type environment files with the godotenv
// parser. Files are read in the given order, later files overriding earlier
// ones, and missing files are skipped. Variables of the process environment
// starting with Prefix override all files.
type GodotenvProvider struct {
	Prefix string
}

// Read reads the given files into a map (map[key]value).
func (p *GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	envMap := make(map[string]string)

	for _, filename := range filenames {
		data, err := godotenv.Read(filename)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("(config-godotenv) %w", err)
		}

		maps.Copy(envMap, data)
	}

	if p.Prefix != "" {
		for _, kv := range os.Environ() {
			if key, value, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, p.Prefix) {
				envMap[key] = value
			}
		}
	}

	return envMap, nil
}
