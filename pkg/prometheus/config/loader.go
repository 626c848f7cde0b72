package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Elsie4ever/prometheus-ai/pkg/prometheus/knn"
)

// LoadNodeRecords loads knowledge node records from a flat file: one record
// per line of whitespace-separated tokens (tag strings contain no spaces),
// blank lines and # comments skipped.
//
//	# input      threshold  output               weight ...
//	Animal(dog)  2          Barks(dog)           0.9  @petDog  0.6
func LoadNodeRecords(path string) ([]knn.NodeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []knn.NodeRecord
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := knn.ParseNodeRecord(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
