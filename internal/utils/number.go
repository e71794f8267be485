package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	rxKeepNums  = regexp.MustCompile(`[^\d\.\-]`)
	rxNumChars  = regexp.MustCompile(`[^\d\.,\-]`)
	rxThousands = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
)

// ParseAmount парсит "5000", "5,000", "HK$ 5 000.50", "4999,5" (NBSP/NNBSP) и т.п.
// Нечисловое или пустое значение даёт 0, ошибки наружу не отдаём.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	// убрать неразрывные/узкие пробелы и обычные пробелы
	s = strings.NewReplacer("\u00A0", "", "\u202F", "", " ", "", "\t", "").Replace(s)
	// оставить только цифры, точку, запятую и минус
	s = rxNumChars.ReplaceAllString(s, "")
	if rxThousands.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount — целое количество; дробная часть отбрасывается.
func ParseCount(s string) int {
	return int(ParseAmount(s).IntPart())
}
