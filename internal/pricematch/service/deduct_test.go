package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"price-matcher/internal/pricematch/model"
)

func TestApplyDeductions(t *testing.T) {
	e := newTestEngine()
	tests := []struct {
		name    string
		base    int64
		remarks string
		want    string
	}{
		{"no keywords", 5000, "", "4985"},
		{"stacked keywords", 5000, "小花 黑機", "4685"},
		{"all keywords", 5000, "小花 花機 大花 舊機 低保 過保 黑機 配置鎖", "3235"},
		{"unknown remark", 5000, "全新", "4985"},
		{"keyword inside text", 5000, "機身大花,已過保", "4435"},
		{"result may go negative", 100, "大花 舊機", "-615"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ApplyDeductions(decimal.NewFromInt(tt.base), tt.remarks)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestApplyDeductionsCustomRules(t *testing.T) {
	rules := model.DefaultRules()
	rules.HandlingFee = 0
	rules.Deductions = []model.Deduction{{Keyword: "scratch", Amount: -50}}
	e := New(rules)

	assert.Equal(t, "950", e.ApplyDeductions(decimal.NewFromInt(1000), "small scratch").String())
	assert.Equal(t, "999.5", e.ApplyDeductions(decimal.RequireFromString("999.5"), "小花").String())
}
