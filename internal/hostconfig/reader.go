package hostconfig

import (
	"bufio"
	"os"
	"strings"
)

// ReadLines returns the settings file's lines, creating an empty file
// with the defaults pre-populated if none exists yet.
func ReadLines() ([]string, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}

	info, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr) || (statErr == nil && info.Size() == 0)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if err := os.Chmod(path, 0600); err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if isNew && len(lines) == 0 {
		lines = initializeDefaults()
		if err := WriteLines(lines); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

func initializeDefaults() []string {
	lines := []string{
		"# cmdforge demo host settings",
		"",
	}
	for key, fn := range Defaults {
		lines = append(lines, key+"="+fn())
	}
	return lines
}
