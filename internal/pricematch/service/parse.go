package service

import (
	"regexp"

	"github.com/shopspring/decimal"

	"price-matcher/internal/pricematch/model"
	"price-matcher/internal/utils"
)

var (
	// 6–10 буквенно-цифровых символов: артикул вместо объёма
	rePartNumber = regexp.MustCompile(`(?i)^[A-Z0-9]{6,10}$`)
	reCapSuffix  = regexp.MustCompile(`(?i)\d+(?:GB|TB)$`)
	reInteger    = regexp.MustCompile(`^\d+$`)
)

// ParsePrices разбирает прайс-лист. Колонки через TAB:
// модель, объём или артикул, количество, [цена]; либо ровно три колонки
// модель, количество, цена (если вторая колонка не артикул вроде 1234567).
// Строки короче трёх колонок пропускаются.
func (e *Engine) ParsePrices(text string) []model.Price {
	rows := e.scan(text)
	out := make([]model.Price, 0, len(rows))
	for _, r := range rows {
		if len(r.Fields) < 3 {
			continue
		}
		p := model.Price{Category: r.Category, Model: r.Fields[0], UnitPrice: decimal.Zero}
		second := r.Fields[1]
		switch {
		case len(r.Fields) == 3 && reInteger.MatchString(second) && !isPartNumber(second):
			// объём (если есть) остаётся в модели
			p.Quantity = utils.ParseCount(second)
			p.UnitPrice = utils.ParseAmount(r.Fields[2])
		default:
			if !isPartNumber(second) {
				p.Capacity = second
			}
			p.Quantity = utils.ParseCount(r.Fields[2])
			if len(r.Fields) > 3 {
				p.UnitPrice = utils.ParseAmount(r.Fields[3])
			}
		}
		out = append(out, p)
	}
	return out
}

func isPartNumber(s string) bool {
	return rePartNumber.MatchString(s) && !reCapSuffix.MatchString(s)
}

// ParseProducts разбирает список товаров: номер строки, [примечание], описание.
// Колонки после третьей игнорируются.
func (e *Engine) ParseProducts(text string) []model.Product {
	rows := e.scan(text)
	out := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		if len(r.Fields) < 2 {
			continue
		}
		p := model.Product{LineNumber: r.Fields[0], Category: r.Category}
		if len(r.Fields) == 2 {
			p.Description = r.Fields[1]
		} else {
			p.Remarks = r.Fields[1]
			p.Description = r.Fields[2]
		}
		if p.LineNumber == "" || p.Description == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
