package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadAnyText — выберет парсер по расширению и вернёт содержимое как текст:
// строки через \n, ячейки через TAB (тот же формат, что вставляет оператор).
func ReadAnyText(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv":
		return readCSV(r)
	case ".tsv", ".txt", "":
		return readText(r)
	default:
		return "", fmt.Errorf("unsupported file: %s", filename)
	}
}

// rowsToText склеивает ячейки через TAB, срезая хвостовые пустые ячейки
// и пропуская полностью пустые строки.
func rowsToText(rows [][]string) string {
	var b strings.Builder
	for _, rec := range rows {
		cells := make([]string, len(rec))
		last := -1
		for i, v := range rec {
			cells[i] = normalizeCell(v)
			if cells[i] != "" {
				last = i
			}
		}
		if last < 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(cells[:last+1], "\t"))
	}
	return b.String()
}

// normalizeCell: NBSP/NNBSP -> пробел, переводы строк внутри ячейки -> пробел.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\r", " ", "\n", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
