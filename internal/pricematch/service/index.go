package service

import (
	"sort"

	"price-matcher/internal/pricematch/model"
)

// priceIndex — строки прайса по категориям в исходном порядке
// плюс триграммный индекс нормализованных моделей для подсказок.
type priceIndex struct {
	byCategory map[string][]*model.Price
	inv        map[string]map[string]map[string]struct{} // category -> trigram -> set(normalized model)
	display    map[string]map[string]string              // category -> normalized -> исходная модель
}

func (e *Engine) buildIndex(prices []model.Price) *priceIndex {
	idx := &priceIndex{
		byCategory: make(map[string][]*model.Price),
		inv:        make(map[string]map[string]map[string]struct{}),
		display:    make(map[string]map[string]string),
	}
	for i := range prices {
		p := &prices[i]
		idx.byCategory[p.Category] = append(idx.byCategory[p.Category], p)
	}
	return idx
}

// candidates — строки той же категории, порядок прайса сохранён.
func (idx *priceIndex) candidates(category string) []*model.Price {
	return idx.byCategory[category]
}

// ensureTrigrams строит триграммы категории лениво: нужны только для ненайденных товаров.
func (e *Engine) ensureTrigrams(idx *priceIndex, category string) {
	if _, ok := idx.inv[category]; ok {
		return
	}
	inv := make(map[string]map[string]struct{})
	disp := make(map[string]string)
	for _, p := range idx.byCategory[category] {
		nn := e.normalize(p.Model, true)
		if nn == "" {
			continue
		}
		if _, seen := disp[nn]; !seen {
			disp[nn] = p.Model
		}
		for g := range trigramSet(nn) {
			bucket, ok := inv[g]
			if !ok {
				bucket = make(map[string]struct{})
				inv[g] = bucket
			}
			bucket[nn] = struct{}{}
		}
	}
	idx.inv[category] = inv
	idx.display[category] = disp
}

func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	p := " " + s + " "
	r := []rune(p)
	if len(r) < 3 {
		m[p] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

func (idx *priceIndex) candidateNames(category, norm string) []string {
	inv := idx.inv[category]
	if norm == "" || len(inv) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for g := range trigramSet(norm) {
		for nn := range inv[g] {
			seen[nn] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for nn := range seen {
		out = append(out, nn)
	}
	sort.Strings(out) // для детерминированного порядка
	return out
}

// suggest — ближайшая по схожести модель категории (только подсказка, на матчинг не влияет).
func (e *Engine) suggest(idx *priceIndex, p model.Product) (string, float64, bool) {
	e.ensureTrigrams(idx, p.Category)
	norm := e.normalize(p.Description, true)
	bestName, best := "", -1.0
	for _, cand := range idx.candidateNames(p.Category, norm) {
		if s := bestSimilarity(norm, cand); s > best {
			best, bestName = s, cand
		}
	}
	if bestName == "" || best < e.suggestThreshold {
		return "", 0, false
	}
	return idx.display[p.Category][bestName], best, true
}
