package domain

import "strings"

// ProductFilter — набор необязательных предикатов листинга каталога.
// Числовые границы заданы указателями: nil означает «параметр не передан»,
// поэтому явный ноль остаётся рабочим значением фильтра.
type ProductFilter struct {
	Name      string
	Brand     string
	Category  string
	MinRating *float64
	MaxRating *float64
	MinPrice  *float64
	MaxPrice  *float64
}

// IsZero сообщает, что ни один предикат не задан.
func (f ProductFilter) IsZero() bool {
	return f.Name == "" && f.Brand == "" && f.Category == "" &&
		f.MinRating == nil && f.MaxRating == nil &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// Matches проверяет продукт на соответствие всем заданным предикатам (AND).
// Строковые предикаты — регистронезависимое вхождение подстроки,
// числовые границы включительные.
func (f ProductFilter) Matches(p Product) bool {
	if f.Name != "" && !containsFold(p.Name, f.Name) {
		return false
	}
	if f.Brand != "" && !containsFold(p.Brand, f.Brand) {
		return false
	}
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	if f.MaxRating != nil && p.Rating > *f.MaxRating {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}

	return true
}

// MatchesQuery реализует свободный поиск: вхождение подстроки
// в название или бренд (OR), без учёта регистра.
func (p Product) MatchesQuery(q string) bool {
	return containsFold(p.Name, q) || containsFold(p.Brand, q)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
