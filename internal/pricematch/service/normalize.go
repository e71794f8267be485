package service

import (
	"regexp"
	"strings"
)

// Объём: 128GB, 1TB (с границей слова, без учёта регистра).
var reCapacity = regexp.MustCompile(`(?i)\b\d+(?:GB|TB)\b`)

var reSpaces = regexp.MustCompile(`\s+`)

// buildColorRegexp — цвет в самом конце строки.
func buildColorRegexp(colors []string) *regexp.Regexp {
	alts := make([]string, 0, len(colors))
	for _, c := range colors {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(c))
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\s*$`)
}

// normalize — ключ модели для сравнения:
// вырезать объём, при stripColor срезать хвостовые цвета, верхний регистр, схлопнуть пробелы.
func (e *Engine) normalize(s string, stripColor bool) string {
	out := strings.TrimSpace(reCapacity.ReplaceAllString(s, ""))
	if stripColor && e.reColor != nil {
		for {
			next := strings.TrimSpace(e.reColor.ReplaceAllString(out, ""))
			if next == out {
				break
			}
			out = next
		}
	}
	return collapseSpaces(strings.ToUpper(out))
}

// extractCapacity — первый токен объёма в верхнем регистре или "".
func extractCapacity(s string) string {
	return strings.ToUpper(reCapacity.FindString(s))
}

// needsCapacityMatch: описание относится к семейству, где объём обязателен.
func (e *Engine) needsCapacityMatch(description string) bool {
	return containsAny(strings.ToUpper(description), e.capacityFamilies)
}

// needsColorMatch считается для пары (категория товара, строка прайса):
// в разных строках одной категории цвет может быть указан или нет.
// Категория с маркером LOCKED/UNLOCKED ("港版 Unlocked") цвет не сравнивает.
func (e *Engine) needsColorMatch(category, priceModel string) bool {
	if containsAny(strings.ToUpper(category), e.colorExempt) {
		return false
	}
	upper := strings.ToUpper(priceModel)
	if !containsAny(upper, e.colorFamilies) {
		return false
	}
	// строка прайса без цвета подходит к любому цвету
	return e.hasColorWord(upper)
}

func (e *Engine) hasColorWord(upper string) bool {
	for _, w := range strings.Fields(upper) {
		if _, ok := e.colors[w]; ok {
			return true
		}
	}
	return false
}

// modelsMatch сравнивает нормализованные ключи без пробелов:
// "IPHONE16PRO" == "IPHONE 16 PRO". Вхождение подстроки — только в режиме LooseContainment.
func (e *Engine) modelsMatch(a, b string) bool {
	ca, cb := compact(a), compact(b)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb {
		return true
	}
	return e.rules.LooseContainment && (strings.Contains(ca, cb) || strings.Contains(cb, ca))
}

func compact(s string) string {
	return reSpaces.ReplaceAllString(strings.ToUpper(s), "")
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
