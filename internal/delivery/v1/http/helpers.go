package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/usecase"
	"github.com/shopsphere/catalog-service/pkg/e"
)

const (
	maxRequestBodySize = 50 << 20
	maxImageSize       = 15 << 20
	maxMultipartMemory = 32 << 20
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrNoProducts):
		return http.StatusNotFound, e.ErrNoProducts.Error()
	case errors.Is(err, e.ErrNoMatchingProducts):
		return http.StatusNotFound, e.ErrNoMatchingProducts.Error()
	case errors.Is(err, e.ErrInvalidRequestBody):
		return http.StatusBadRequest, e.ErrInvalidRequestBody.Error()
	case errors.Is(err, e.ErrInvalidFilterParam):
		return http.StatusBadRequest, e.ErrInvalidFilterParam.Error()
	case errors.Is(err, e.ErrEmptyBulkRequest):
		return http.StatusBadRequest, e.ErrEmptyBulkRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrNoImage):
		return http.StatusBadRequest, e.ErrNoImage.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, e.ErrUnsupportedMediaType.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseListQuery собирает фильтр и пагинацию из query-параметров.
// Отсутствующий параметр пропускает предикат; непарсибельное значение — ошибка.
// limit и page меньше либо равные нулю заменяются значениями по умолчанию в usecase.
func parseListQuery(r *http.Request) (*usecase.ListProductsReq, error) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Name:     q.Get("name"),
		Brand:    q.Get("brand"),
		Category: q.Get("category"),
	}

	var err error
	if filter.MinRating, err = parseFloatPtr(q.Get("minRating")); err != nil {
		return nil, e.Wrap("minRating", e.ErrInvalidFilterParam)
	}
	if filter.MaxRating, err = parseFloatPtr(q.Get("maxRating")); err != nil {
		return nil, e.Wrap("maxRating", e.ErrInvalidFilterParam)
	}
	if filter.MinPrice, err = parseFloatPtr(q.Get("minPrice")); err != nil {
		return nil, e.Wrap("minPrice", e.ErrInvalidFilterParam)
	}
	if filter.MaxPrice, err = parseFloatPtr(q.Get("maxPrice")); err != nil {
		return nil, e.Wrap("maxPrice", e.ErrInvalidFilterParam)
	}

	limit, err := parseIntParam(q.Get("limit"))
	if err != nil {
		return nil, e.Wrap("limit", e.ErrInvalidFilterParam)
	}

	page, err := parseIntParam(q.Get("page"))
	if err != nil {
		return nil, e.Wrap("page", e.ErrInvalidFilterParam)
	}

	return usecase.NewListProductsReq(filter, limit, page), nil
}

// parseFloatPtr возвращает nil для пустой строки, иначе парсит float64.
// Ноль — валидное значение предиката.
func parseFloatPtr(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func parseIntParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

// parseProductID парсит идентификатор из path-параметра.
// Непарсибельный идентификатор не совпадёт ни с одной записью,
// поэтому трактуется как not found.
func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return id, nil
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidRequestBody)
	}

	return nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseImage(files []*multipart.FileHeader) (*usecase.ProductImage, error) {
	if len(files) == 0 {
		return nil, e.ErrNoImage
	}

	fh := files[0]
	data, mimeType, err := readImageFile(fh, maxImageSize)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}

func readImageFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
