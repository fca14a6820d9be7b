package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// renderProfile holds reusable chart settings read from a JSONC file.
// Command-line flags that are set explicitly win over profile values.
type renderProfile struct {
	Title     string   `json:"title"`
	XLabel    string   `json:"x_label"`
	YLabel    string   `json:"y_label"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	TimeAxis  *bool    `json:"time_axis"`
	Hints     *bool    `json:"hints"`
	LogLevel  string   `json:"log_level"`
	Hide      []string `json:"hide"`
	HideIndex []int    `json:"hide_index"`
}

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON bytes suitable for unmarshalling.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		// Do NOT remove inline // because of URLs (http://). JSONC style here only uses full-line comments.
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

func loadProfile(path string) (*renderProfile, error) {
	b, err := StripJSONC(path)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	var p renderProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}
