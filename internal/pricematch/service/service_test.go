package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-matcher/internal/pricematch/model"
)

func run(t *testing.T, e *Engine, prices, products string, mode model.Mode) model.Result {
	t.Helper()
	res, err := e.Run(context.Background(), prices, products, mode)
	require.NoError(t, err)
	return res
}

func TestRunPlainAndLocked(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\nIPHONE 15 128GB\t1\t5000"
	products := "UNLOCKED\n1\tIPHONE 15 128GB BLUE"

	plain := run(t, e, prices, products, model.ModePlain)
	assert.Equal(t, []string{"1\t5000"}, plain.Lines)
	assert.Equal(t, "1\t5000", plain.Text)
	assert.Equal(t, model.Stats{Matched: 1, Unmatched: 0, Total: 1}, plain.Stats)
	assert.Equal(t, model.ModePlain, plain.Mode)

	locked := run(t, e, prices, products, model.ModeLocked)
	assert.Equal(t, []string{"1\t4985"}, locked.Lines)
	assert.Equal(t, model.Stats{Matched: 1, Unmatched: 0, Total: 1}, locked.Stats)
}

func TestRunLockedUsesRemarks(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\nIPHONE 15\t128GB\t1\t5000"
	products := "UNLOCKED\n7\t小花 黑機\tIPHONE 15 128GB BLUE\n8\t\tIPHONE 15 128GB BLACK"

	res := run(t, e, prices, products, model.ModeLocked)
	assert.Equal(t, []string{"7\t4685", "8\t4985"}, res.Lines)

	// в обычном режиме вычетов нет
	res = run(t, e, prices, products, model.ModePlain)
	assert.Equal(t, []string{"7\t5000", "8\t5000"}, res.Lines)
}

func TestCapacityInsensitiveMatch(t *testing.T) {
	e := newTestEngine()
	res := run(t, e, "UNLOCKED\nIPHONE 14 BLACK\t1\t3000", "UNLOCKED\n1\tIPHONE 14 BLACK", model.ModePlain)
	assert.Equal(t, []string{"1\t3000"}, res.Lines)
}

func TestCapacitySensitiveRejection(t *testing.T) {
	e := newTestEngine()
	res := run(t, e, "UNLOCKED\nIPHONE 15 256GB BLUE\t1\t6000", "UNLOCKED\n1\tIPHONE 15 128GB BLUE", model.ModePlain)
	assert.Empty(t, res.Lines)
	assert.Equal(t, model.Stats{Matched: 0, Unmatched: 1, Total: 1}, res.Stats)
}

func TestCapacityFromColumnAndModel(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\n" +
		"IPHONE 16 PRO\t256GB\t1\t8000\n" +
		"IPHONE 16 PRO\t512gb\t1\t9000\n" +
		"IPHONE 16 PRO\tMYNG3ZA\t1\t7000\n"
	products := "UNLOCKED\n1\tIPHONE 16 PRO 512GB DESERT\n2\tIPHONE 16 PRO 1TB DESERT\n"

	res := run(t, e, prices, products, model.ModePlain)
	// 1TB: строка с артикулом не знает объёма и подходит
	assert.Equal(t, []string{"1\t9000", "2\t7000"}, res.Lines)
}

func TestUnmatchedCategory(t *testing.T) {
	e := newTestEngine()
	res := run(t, e, "LOCKED\nIPHONE 15\t128GB\t1\t4000", "UNLOCKED\n1\tIPHONE 15 128GB", model.ModePlain)
	assert.Empty(t, res.Lines)
	assert.Equal(t, "", res.Text)
	assert.Equal(t, model.Stats{Matched: 0, Unmatched: 1, Total: 1}, res.Stats)
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, "1", res.Unmatched[0].LineNumber)
	assert.Empty(t, res.Unmatched[0].Suggestion)
}

func TestDefaultCategoryInheritance(t *testing.T) {
	e := newTestEngine()
	res := run(t, e, "IPHONE 14\t128GB\t1\t3000", "1\tIPHONE 14 128GB", model.ModePlain)
	assert.Equal(t, []string{"1\t3000"}, res.Lines)
}

func TestCategorySeparatorAndOrder(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\nIPHONE 14\t128GB\t1\t3000\nLOCKED\nIPHONE 14\t128GB\t1\t2500\n"
	products := "UNLOCKED\n10\tIPHONE 14 128GB\n11\tGALAXY S24\n12\tIPHONE 14 128GB MIDNIGHT\nLOCKED\n20\tIPHONE 14 128GB\n"

	res := run(t, e, prices, products, model.ModePlain)
	assert.Equal(t, []string{"10\t3000", "12\t3000", "", "20\t2500"}, res.Lines)
	assert.Equal(t, "10\t3000\n12\t3000\n\n20\t2500", res.Text)
	assert.Equal(t, model.Stats{Matched: 3, Unmatched: 1, Total: 4}, res.Stats)
}

func TestFirstFitByPriceOrder(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\nIPHONE 15 128GB BLUE\t1\t5100\nIPHONE 15 128GB BLACK\t1\t5000\n"
	products := "UNLOCKED\n1\tIPHONE 15 128GB BLACK"
	res := run(t, e, prices, products, model.ModePlain)
	assert.Equal(t, []string{"1\t5100"}, res.Lines)
}

func TestColorSensitivePerPriceRow(t *testing.T) {
	e := newTestEngine()
	prices := "HK\n" +
		"IPHONE 15 128GB BLUE\t1\t5100\n" +
		"IPHONE 15 128GB BLACK\t1\t5000\n" +
		"IPHONE 15 256GB\t1\t6000\n"
	products := "HK\n1\tIPHONE 15 128GB BLACK\n2\tIPHONE 15 256GB PINK\n3\tIPHONE 15 128GB PINK\n"

	res := run(t, e, prices, products, model.ModePlain)
	assert.Equal(t, []string{"1\t5000", "2\t6000"}, res.Lines)
	assert.Equal(t, model.Stats{Matched: 2, Unmatched: 1, Total: 3}, res.Stats)
}

func TestDegenerateInput(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	res, err := e.Run(ctx, "", "1\tIPHONE 15", model.ModePlain)
	require.NoError(t, err)
	assert.Empty(t, res.Lines)
	assert.Equal(t, model.Stats{}, res.Stats)

	res, err = e.Run(ctx, "IPHONE 15\t128GB\t1\t5000", "  \n", model.ModeLocked)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, res.Stats)

	res, err = e.Match(ctx, nil, []model.Product{{LineNumber: "1", Description: "X", Category: "A"}}, model.ModePlain)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{Matched: 0, Unmatched: 1, Total: 1}, res.Stats)
	assert.NotNil(t, res.Lines)
	assert.Empty(t, res.Lines)

	res, err = e.Match(ctx, e.ParsePrices("IPHONE 15\t128GB\t1\t5000"), nil, model.ModePlain)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, res.Stats)
}

func TestNoParsablePriceRows(t *testing.T) {
	e := newTestEngine()
	// строка прайса короче трёх колонок: прайс непустой, но строк нет
	prices := "UNLOCKED\nIPHONE 15 128GB\t5000"
	products := "UNLOCKED\n1\tIPHONE 15 128GB BLUE\n2\tIPHONE 14 128GB"

	require.Empty(t, e.ParsePrices(prices))
	res := run(t, e, prices, products, model.ModeLocked)
	assert.Empty(t, res.Lines)
	assert.Equal(t, model.Stats{Matched: 0, Unmatched: 2, Total: 2}, res.Stats)
	assert.Len(t, res.Unmatched, 2)
}

func TestStatsInvariant(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\nIPHONE 15\t128GB\t1\t5000\nIPHONE 14\t128GB\t1\t3000\n"
	products := "UNLOCKED\n1\tIPHONE 15 128GB\n2\tIPHONE 15 256GB\n3\tIPHONE 14 64GB\nLOCKED\n4\tIPHONE 14\nnot a row\n"

	res := run(t, e, prices, products, model.ModeLocked)
	parsed := e.ParseProducts(products)
	assert.Equal(t, len(parsed), res.Stats.Total)
	assert.Equal(t, res.Stats.Total, res.Stats.Matched+res.Stats.Unmatched)
	assert.Len(t, res.Unmatched, res.Stats.Unmatched)
}

func TestUnmatchedSuggestion(t *testing.T) {
	e := newTestEngine()
	prices := "UNLOCKED\nIPHONE 15 PRO\t256GB\t1\t7000\nGALAXY S24\t256GB\t1\t4000\n"
	products := "UNLOCKED\n1\tIPHONE 15 PRO MAX 256GB\n"

	res := run(t, e, prices, products, model.ModePlain)
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, "IPHONE 15 PRO", res.Unmatched[0].Suggestion)
	require.NotNil(t, res.Unmatched[0].Score)
	assert.InDelta(t, 1-4.0/17.0, *res.Unmatched[0].Score, 1e-9)
}

func TestLooseContainment(t *testing.T) {
	rules := model.DefaultRules()
	rules.LooseContainment = true
	e := New(rules)

	res := run(t, e, "UNLOCKED\nIPHONE 15 PRO\t256GB\t1\t7000", "UNLOCKED\n1\tIPHONE 15 PRO MAX 256GB", model.ModePlain)
	assert.Equal(t, []string{"1\t7000"}, res.Lines)
}

func TestResolve(t *testing.T) {
	e := newTestEngine()
	prices := e.ParsePrices("UNLOCKED\nIPHONE 15\t128GB\t1\t5000")

	m := e.Resolve(prices, model.Product{LineNumber: "1", Description: "IPHONE 15 128GB", Category: "UNLOCKED"})
	require.True(t, m.Matched())
	assert.Equal(t, "5000", m.Price.UnitPrice.String())

	m = e.Resolve(prices, model.Product{LineNumber: "1", Description: "IPHONE 15 128GB", Category: "unlocked"})
	assert.False(t, m.Matched())
}

func TestMatchCancelled(t *testing.T) {
	e := newTestEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "IPHONE 15\t128GB\t1\t5000", "1\tIPHONE 15 128GB", model.ModePlain)
	assert.ErrorIs(t, err, context.Canceled)
}
