package format

import (
	"os"
	"path/filepath"
	"strings"
)

// ShortenPath replaces the user's home directory prefix with "~".
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return shortenPath(path, home)
}

func shortenPath(path, home string) string {
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}
