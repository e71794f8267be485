package service

import (
	"strings"

	"price-matcher/internal/pricematch/model"
)

type lineKind int

const (
	kindHeader   lineKind = iota // шапка таблицы: CAP / QTY / HKD
	kindCategory                 // строка-категория
	kindData                     // строка данных
)

// Маркеры шапки (сравниваются с уже поднятым регистром).
var (
	capacityTokens = []string{"CAP", "CAPACITY", "容量"}
	quantityTokens = []string{"QTY", "QUANTITY", "數量", "数量"}
	currencyTokens = []string{"HKD", "USD", "CNY", "RMB", "PRICE", "價格", "价格", "單價", "单价"}
)

// dataRow — строка данных с унаследованной категорией.
type dataRow struct {
	Category string
	Fields   []string
}

// classify определяет тип строки. Для шапки category может быть непустой,
// если первая колонка похожа на название категории.
func (e *Engine) classify(line string) (kind lineKind, category string) {
	upper := strings.ToUpper(line)
	if isTableHeader(upper) {
		parts := strings.Split(line, "\t")
		if len(parts) > 1 {
			first := strings.TrimSpace(parts[0])
			if first != "" && first == strings.ToUpper(first) && !hasHeaderToken(first) {
				return kindHeader, first
			}
		}
		return kindHeader, ""
	}
	if !strings.Contains(line, "\t") && line == upper {
		return kindCategory, line
	}
	if _, ok := e.labels[line]; ok {
		return kindCategory, line
	}
	return kindData, ""
}

func isTableHeader(upper string) bool {
	return containsAny(upper, capacityTokens) &&
		containsAny(upper, quantityTokens) &&
		containsAny(upper, currencyTokens)
}

func hasHeaderToken(s string) bool {
	u := strings.ToUpper(s)
	return containsAny(u, capacityTokens) || containsAny(u, quantityTokens) || containsAny(u, currencyTokens)
}

// scan — свёртка по строкам: курсор категории живёт только внутри вызова.
func (e *Engine) scan(text string) []dataRow {
	cursor := model.DefaultCategory
	var rows []dataRow
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row *dataRow
		cursor, row = e.step(cursor, line)
		if row != nil {
			rows = append(rows, *row)
		}
	}
	return rows
}

// step обрабатывает одну непустую строку и возвращает новый курсор.
func (e *Engine) step(cursor, line string) (string, *dataRow) {
	kind, category := e.classify(line)
	switch kind {
	case kindHeader:
		if category != "" {
			return category, nil
		}
		return cursor, nil
	case kindCategory:
		return category, nil
	}
	parts := strings.Split(line, "\t")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return cursor, &dataRow{Category: cursor, Fields: parts}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
