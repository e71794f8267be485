package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"price-matcher/internal/pricematch/model"
)

// Порог схожести для подсказки по ненайденному товару.
const defaultSuggestThreshold = 0.6

// Engine — разбор и сопоставление. Неизменяем после New, безопасен для
// параллельных вызовов: всё состояние прохода живёт в локальных переменных.
type Engine struct {
	rules            model.Rules
	reColor          *regexp.Regexp
	colors           map[string]struct{}
	colorExempt      []string
	labels           map[string]struct{}
	capacityFamilies []string
	colorFamilies    []string
	suggestThreshold float64
}

func New(rules model.Rules) *Engine {
	e := &Engine{
		rules:            rules,
		reColor:          buildColorRegexp(rules.Colors),
		colors:           make(map[string]struct{}, len(rules.Colors)),
		colorExempt:      upperAll(rules.ColorExemptCategories),
		labels:           make(map[string]struct{}, len(rules.CategoryLabels)),
		capacityFamilies: upperAll(rules.CapacityFamilies),
		colorFamilies:    upperAll(rules.ColorFamilies),
		suggestThreshold: defaultSuggestThreshold,
	}
	for _, c := range upperAll(rules.Colors) {
		e.colors[c] = struct{}{}
	}
	for _, l := range rules.CategoryLabels {
		if l = strings.TrimSpace(l); l != "" {
			e.labels[l] = struct{}{}
		}
	}
	return e
}

func (e *Engine) Rules() model.Rules { return e.rules }

// Resolve ищет первую подходящую строку прайса для товара (first-fit по порядку прайса).
func (e *Engine) Resolve(prices []model.Price, p model.Product) model.MatchResult {
	return e.resolve(e.buildIndex(prices), p)
}

func (e *Engine) resolve(idx *priceIndex, p model.Product) model.MatchResult {
	productCapacity := extractCapacity(p.Description)
	requiresCapacity := e.needsCapacityMatch(p.Description)

	for _, price := range idx.candidates(p.Category) {
		requiresColor := e.needsColorMatch(p.Category, price.Model)
		if !e.modelsMatch(e.normalize(p.Description, !requiresColor), e.normalize(price.Model, !requiresColor)) {
			continue
		}
		if requiresCapacity {
			priceCapacity := compact(price.Capacity)
			if priceCapacity == "" {
				priceCapacity = extractCapacity(price.Model)
			}
			if priceCapacity != "" && productCapacity != "" && priceCapacity != productCapacity {
				continue
			}
		}
		return model.MatchResult{Product: p, Price: price}
	}
	return model.MatchResult{Product: p}
}

// Match — один проход: сопоставление, вычеты (только locked), вывод и статистика.
// Пустой прайс не обнуляет статистику: все товары считаются ненайденными,
// total всегда равен числу товаров.
func (e *Engine) Match(ctx context.Context, prices []model.Price, products []model.Product, mode model.Mode) (model.Result, error) {
	res := model.Result{Lines: []string{}, Unmatched: []model.Unmatched{}, Mode: mode}
	if len(products) == 0 {
		return res, nil
	}

	idx := e.buildIndex(prices)
	lastCategory, started := "", false

	for _, p := range products {
		select {
		case <-ctx.Done():
			return model.Result{}, ctx.Err()
		default:
		}

		m := e.resolve(idx, p)
		if !m.Matched() {
			res.Stats.Unmatched++
			u := model.Unmatched{LineNumber: p.LineNumber, Description: p.Description, Category: p.Category}
			if name, score, ok := e.suggest(idx, p); ok {
				u.Suggestion = name
				u.Score = &score
			}
			res.Unmatched = append(res.Unmatched, u)
			continue
		}

		// одна пустая строка между категориями
		if started && lastCategory != p.Category {
			res.Lines = append(res.Lines, "")
		}
		res.Lines = append(res.Lines, p.LineNumber+"\t"+e.priceFor(m, mode).String())
		res.Stats.Matched++
		lastCategory, started = p.Category, true
	}

	res.Stats.Total = len(products)
	res.Text = strings.Join(res.Lines, "\n")
	return res, nil
}

func (e *Engine) priceFor(m model.MatchResult, mode model.Mode) decimal.Decimal {
	if mode == model.ModeLocked {
		return e.ApplyDeductions(m.Price.UnitPrice, m.Product.Remarks)
	}
	return m.Price.UnitPrice
}

// Run разбирает оба текста и сопоставляет. Пустой текст — пустой результат
// с нулевой статистикой.
func (e *Engine) Run(ctx context.Context, priceText, productText string, mode model.Mode) (model.Result, error) {
	if strings.TrimSpace(priceText) == "" || strings.TrimSpace(productText) == "" {
		return model.Result{Lines: []string{}, Unmatched: []model.Unmatched{}, Mode: mode}, nil
	}
	return e.Match(ctx, e.ParsePrices(priceText), e.ParseProducts(productText), mode)
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
