package filesutil

import (
	"fmt"
	"os"
	"strings"
)

// CleanExtension strips the leading dot of an extension, so ".json" becomes "json"
func CleanExtension(ext string) string {
	return strings.TrimPrefix(ext, ".")
}

// IsReadableFile checks whether argument is a readable file
func IsReadableFile(path string) bool {
	fileInfo, statErr := os.Stat(path)
	if statErr != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}

// ReadLines reads a newline separated list of values from a file, skipping blank lines
// and lines starting with '#'
func ReadLines(path string) ([]string, error) {
	rawContents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read \"%s\": %+v", path, err)
	}
	contents := strings.ReplaceAll(string(rawContents), "\r\n", "\n") // Windows
	lines := make([]string, 0, 20)
	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
