package scm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ParseRevisionFile reads a revision file of `<url>/<revision>` lines into a
// map from repository URL to revision. A missing file yields an empty map.
func ParseRevisionFile(name string) (map[string]int64, error) {
	revisions := map[string]int64{}
	if name == "" {
		return revisions, nil
	}

	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return revisions, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open revision file: %w", err)
	}
	defer f.Close()

	return ParseRevisions(f)
}

// ParseRevisions parses revision lines, skipping corrupted ones.
func ParseRevisions(r io.Reader) (map[string]int64, error) {
	revisions := map[string]int64{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		index := strings.LastIndex(line, "/")
		if index < 0 {
			continue
		}

		revision, err := strconv.ParseInt(line[index+1:], 10, 64)
		if err != nil {
			continue
		}

		u, err := url.Parse(line[:index])
		if err != nil || u.Scheme == "" {
			continue
		}

		revisions[u.String()] = revision
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revisions: %w", err)
	}

	return revisions, nil
}
