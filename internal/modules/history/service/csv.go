package service

import (
	"encoding/csv"
	"strconv"
	"strings"
)

var csvHeader = []string{"timestamp", "moisture", "temperature", "humidity"}

// HistoryCSV renders the full history as CSV: a header row, then one row
// per reading in chronological order. Used for offline/spreadsheet export.
// Pure read.
func (s *Service) HistoryCSV() (string, error) {
	readings := s.store.Snapshot()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range readings {
		row := []string{
			strconv.FormatUint(uint64(r.Timestamp), 10),
			strconv.Itoa(r.Moisture),
			strconv.Itoa(r.Temperature),
			strconv.Itoa(r.Humidity),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
