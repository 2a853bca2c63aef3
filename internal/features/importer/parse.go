package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sampleRowCount = 5

// parseFile dispatches on the filename extension and returns the headers
// plus every data row, keyed by header.
func parseFile(file io.Reader, filename string) ([]string, []map[string]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return parseExcel(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: %s", filename)
	}
}

func parseCSV(file io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows []map[string]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		row := make(map[string]string, len(headers))
		for i, value := range rec {
			if i < len(headers) {
				row[headers[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func parseExcel(file io.Reader) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in Excel file")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil, fmt.Errorf("Excel file is empty")
	}

	headers := raw[0]
	var rows []map[string]string
	for _, rec := range raw[1:] {
		row := make(map[string]string, len(headers))
		for i, cell := range rec {
			if i < len(headers) {
				row[headers[i]] = cell
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
