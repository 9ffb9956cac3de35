package exporter

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"

	"edupipe/internal/errors"
)

// ReadCSV reads a CSV file and returns its header row and data rows.
// A UTF-8 BOM prefix, if present, is stripped from the first header field.
// Rows are allowed to have varying field counts; the cleaner copes with
// short rows itself.
func ReadCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.NewNotFoundError(path)
		}
		return nil, nil, errors.NewStorageError("failed to open CSV file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(stripBOM(file))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.NewParsingError("CSV file is empty", nil).
			WithContext("path", path)
	}
	if err != nil {
		return nil, nil, errors.NewParsingError("failed to read CSV header", err).
			WithContext("path", path)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewParsingError("failed to read CSV row", err).
				WithContext("path", path)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

// stripBOM returns a reader with a leading UTF-8 BOM consumed
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	bom, err := br.Peek(3)
	if err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
