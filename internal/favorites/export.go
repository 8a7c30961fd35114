package favorites

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ExportCSV writes the favorites list to a CSV file, newest first.
// The file has a single "phrase" column with an optional header row.
func (s *Store) ExportCSV(outputPath string, includeHeader bool) error {
	items := s.Items()

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if includeHeader {
		if err := writer.Write([]string{"phrase"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, item := range items {
		if err := writer.Write([]string{item}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
