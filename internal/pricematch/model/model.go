package model

import "github.com/shopspring/decimal"

// DefaultCategory — категория строк, встретившихся до первого заголовка категории.
const DefaultCategory = "DEFAULT"

// Price — строка прайс-листа.
type Price struct {
	Category  string          `json:"category"`
	Model     string          `json:"model"`
	Capacity  string          `json:"capacity"` // пусто для схемы с part number
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Product — строка списка товаров. LineNumber выводится как есть, без перенумерации.
type Product struct {
	LineNumber  string `json:"lineNumber"`
	Remarks     string `json:"remarks"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type Mode string

const (
	ModePlain  Mode = "plain"  // цена как в прайсе
	ModeLocked Mode = "locked" // цена с вычетами по примечаниям
)

// ModeFromLocked переводит флаг UI в режим вывода.
func ModeFromLocked(locked bool) Mode {
	if locked {
		return ModeLocked
	}
	return ModePlain
}

// MatchResult — итог поиска для одного товара. Price == nil — совпадения нет.
type MatchResult struct {
	Product Product
	Price   *Price
}

func (m MatchResult) Matched() bool { return m.Price != nil }

type Stats struct {
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Total     int `json:"total"`
}

// Unmatched — подсказка оператору по ненайденному товару.
type Unmatched struct {
	LineNumber  string   `json:"lineNumber"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Suggestion  string   `json:"suggestion,omitempty"` // ближайшая модель той же категории
	Score       *float64 `json:"score,omitempty"`
}

type Result struct {
	Lines     []string    `json:"lines"`
	Text      string      `json:"text"`
	Stats     Stats       `json:"stats"`
	Unmatched []Unmatched `json:"unmatched"`
	Mode      Mode        `json:"mode"`
}
