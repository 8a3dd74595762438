package pgdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopsphere/catalog-service/internal/domain"
)

// patchableColumns отображает канонические имена полей записи на колонки
// таблицы products. Ключи patch вне этой таблицы молча игнорируются:
// у реляционной схемы, в отличие от RTDB, нет места под произвольные поля.
var patchableColumns = map[string]string{
	domain.FieldProductID:   "product_id",
	domain.FieldName:        "name",
	domain.FieldBrand:       "brand",
	domain.FieldCategory:    "category",
	domain.FieldPrice:       "price",
	domain.FieldRating:      "rating",
	domain.FieldDescription: "description",
	domain.FieldImageURL:    "image_url",
	domain.FieldWeight:      "weight",
}

// likeEscaper экранирует спецсимволы шаблона ILIKE: фильтры каталога —
// буквальные подстроки, "%" в запросе пользователя не метасимвол.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// listConditions собирает WHERE-условия листинга. Нумерация плейсхолдеров
// продолжается с len(args)+1, чтобы вызывающий мог дописать свои аргументы.
func listConditions(filter domain.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(expr string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if filter.Name != "" {
		add("name ILIKE $%d", likePattern(filter.Name))
	}
	if filter.Brand != "" {
		add("brand ILIKE $%d", likePattern(filter.Brand))
	}
	if filter.Category != "" {
		add("category ILIKE $%d", likePattern(filter.Category))
	}
	if filter.MinRating != nil {
		add("rating >= $%d", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		add("rating <= $%d", *filter.MaxRating)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}

	if len(conds) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// patchAssignments строит SET-часть частичного обновления из patch,
// начиная нумерацию плейсхолдеров с firstArg.
func patchAssignments(patch map[string]any, firstArg int) (string, []any) {
	var (
		sets []string
		args []any
	)

	// Стабильный порядок колонок, чтобы запрос был воспроизводим.
	for _, field := range []string{
		domain.FieldProductID, domain.FieldName, domain.FieldBrand,
		domain.FieldCategory, domain.FieldPrice, domain.FieldRating,
		domain.FieldDescription, domain.FieldImageURL, domain.FieldWeight,
	} {
		value, ok := patch[field]
		if !ok {
			continue
		}

		args = append(args, normalizePatchValue(field, value))
		sets = append(sets, fmt.Sprintf("%s = $%d", patchableColumns[field], firstArg+len(args)-1))
	}

	return strings.Join(sets, ", "), args
}

// normalizePatchValue приводит значения из JSON к типам колонок:
// product_id приходит из декодера как float64, а колонка — BIGINT;
// числовой product_weight уходит в TEXT строкой.
func normalizePatchValue(field string, value any) any {
	f, isNumber := value.(float64)
	if !isNumber {
		return value
	}

	switch field {
	case domain.FieldProductID:
		return int64(f)
	case domain.FieldWeight:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return value
	}
}
