package firebasedb

import "github.com/shopsphere/catalog-service/internal/domain"

// filterProducts оставляет записи, прошедшие все заданные предикаты.
func filterProducts(items []domain.Product, filter domain.ProductFilter) []domain.Product {
	if filter.IsZero() {
		return items
	}

	matched := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}

	return matched
}

// searchProducts оставляет записи с вхождением query в название или бренд.
func searchProducts(items []domain.Product, query string) []domain.Product {
	matched := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item.MatchesQuery(query) {
			matched = append(matched, item)
		}
	}

	return matched
}

// paginate возвращает срез items[offset : offset+limit] без выхода за границы.
// Отрицательный offset — переполнение арифметики страниц выше по стеку,
// такая страница лежит за концом любой коллекции.
func paginate(items []domain.Product, limit, offset int) []domain.Product {
	if offset < 0 || offset >= len(items) {
		return nil
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}
