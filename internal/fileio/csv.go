package fileio

import (
	"encoding/csv"
	"io"
	"strings"
)

// readCSV: кодировку угадываем, каждая запись CSV -> строка через TAB.
func readCSV(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s, err := decodeAll(b)
	if err != nil {
		return "", err
	}

	cr := csv.NewReader(strings.NewReader(s))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		rows = append(rows, rec)
	}
	return rowsToText(rows), nil
}
