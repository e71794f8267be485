package model

import (
	"errors"
	"fmt"
	"strings"
)

// Deduction — ключевое слово в примечании и (отрицательная) поправка к цене.
type Deduction struct {
	Keyword string `mapstructure:"keyword" json:"keyword"`
	Amount  int64  `mapstructure:"amount" json:"amount"`
}

// Rules — таблицы эвристик сопоставления. Все сравнения по верхнему регистру.
type Rules struct {
	// семейства, у которых обязательно совпадение объёма (ищутся в описании товара)
	CapacityFamilies []string `mapstructure:"capacity_families" json:"capacityFamilies"`
	// семейства, у которых цвет значим (ищутся в модели строки прайса)
	ColorFamilies []string `mapstructure:"color_families" json:"colorFamilies"`
	// категории, где цвет никогда не сравнивается
	ColorExemptCategories []string `mapstructure:"color_exempt_categories" json:"colorExemptCategories"`
	Colors                []string `mapstructure:"colors" json:"colors"`
	// многословные категории, которые не являются строками в верхнем регистре
	CategoryLabels   []string    `mapstructure:"category_labels" json:"categoryLabels"`
	HandlingFee      int64       `mapstructure:"handling_fee" json:"handlingFee"`
	Deductions       []Deduction `mapstructure:"deductions" json:"deductions"`
	LooseContainment bool        `mapstructure:"loose_containment" json:"looseContainment"`
}

func DefaultRules() Rules {
	return Rules{
		CapacityFamilies:      []string{"IPHONE 15", "IPHONE 16", "IPHONE 17"},
		ColorFamilies:         []string{"IPHONE 15", "IPHONE 16", "IPHONE 17"},
		ColorExemptCategories: []string{"LOCKED", "UNLOCKED"},
		Colors: []string{
			"BLACK", "WHITE", "BLUE", "ORANGE", "SILVER", "GOLD", "NATURAL", "DESERT",
			"PINK", "ULTRAMARINE", "GRAY", "GREY", "GREEN", "RED", "PURPLE",
			"YELLOW", "LAVENDER", "SAGE", "MIDNIGHT", "STARLIGHT", "TITANIUM",
			"SPACE", "ROSE", "CORAL", "TEAL", "INDIGO", "CRIMSON",
		},
		CategoryLabels: []string{"港版 Unlocked", "港版 Locked", "美版 Unlocked", "美版 Locked"},
		HandlingFee:    15,
		Deductions: []Deduction{
			{Keyword: "小花", Amount: -100},
			{Keyword: "花機", Amount: -150},
			{Keyword: "大花", Amount: -350},
			{Keyword: "舊機", Amount: -350},
			{Keyword: "低保", Amount: -100},
			{Keyword: "過保", Amount: -200},
			{Keyword: "黑機", Amount: -200},
			{Keyword: "配置鎖", Amount: -300},
		},
	}
}

// Validate проверяет таблицы, загруженные из конфига.
func (r Rules) Validate() error {
	if r.HandlingFee < 0 {
		return fmt.Errorf("handling fee must be >= 0, got %d", r.HandlingFee)
	}
	for i, d := range r.Deductions {
		if strings.TrimSpace(d.Keyword) == "" {
			return fmt.Errorf("deduction #%d: empty keyword", i+1)
		}
	}
	for _, c := range r.Colors {
		if strings.TrimSpace(c) == "" {
			return errors.New("colors: empty color word")
		}
	}
	return nil
}
