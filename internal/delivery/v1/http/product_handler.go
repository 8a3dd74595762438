package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/usecase"
	"github.com/shopsphere/catalog-service/pkg/logger"
)

type CatalogHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogHandler(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, logger: logger}
}

// createProduct
//
//	@Summary		Добавление товара
//	@Description	Создает новый товар в каталоге
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		domain.Product			true	"Товар"
//	@Success		201		{object}	map[string]interface{}	"Успешное создание"
//	@Failure		400		{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/products [post]
func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var product domain.Product
	if err := decodeJSONBody(r, &product); err != nil {
		h.logger.Warnf("%d createProduct: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	key, err := h.catalogUC.CreateProduct(r.Context(), &product)
	if err != nil {
		h.logger.Warnf("createProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"id":      key,
	})
}

// bulkInsertProducts
//
//	@Summary		Массовое добавление товаров
//	@Description	Вставляет массив товаров пачками по 500 записей
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			products	body		[]domain.Product		true	"Товары"
//	@Success		201			{object}	map[string]interface{}	"Успешная вставка"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/products/bulk [post]
func (h *CatalogHandler) bulkInsertProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var products []domain.Product
	if err := decodeJSONBody(r, &products); err != nil {
		h.logger.Warnf("%d bulkInsertProducts: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	count, err := h.catalogUC.BulkInsertProducts(r.Context(), products)
	if err != nil {
		h.logger.Warnf("bulkInsertProducts: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "Multiple products added successfully",
		"count":   count,
	})
}

// listProducts
//
//	@Summary		Листинг товаров
//	@Description	Возвращает страницу каталога с опциональными фильтрами
//	@Tags			products
//	@Produce		json
//	@Param			name		query		string			false	"Подстрока названия"
//	@Param			brand		query		string			false	"Подстрока бренда"
//	@Param			category	query		string			false	"Подстрока категории"
//	@Param			minRating	query		number			false	"Минимальный рейтинг"
//	@Param			maxRating	query		number			false	"Максимальный рейтинг"
//	@Param			minPrice	query		number			false	"Минимальная цена"
//	@Param			maxPrice	query		number			false	"Максимальная цена"
//	@Param			limit		query		int				false	"Размер страницы (по умолчанию 80)"
//	@Param			page		query		int				false	"Номер страницы с 1"
//	@Success		200			{array}		domain.Product
//	@Failure		404			{object}	ErrorResponse	"Нет подходящих товаров"
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	req, err := parseListQuery(r)
	if err != nil {
		h.logger.Warnf("%d listProducts: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	products, err := h.catalogUC.ListProducts(r.Context(), req)
	if err != nil {
		h.logger.Warnf("listProducts: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}

// searchProducts
//
//	@Summary		Поиск товаров
//	@Description	Поиск по подстроке в названии или бренде без пагинации
//	@Tags			products
//	@Produce		json
//	@Param			q	query		string	false	"Поисковая строка"
//	@Success		200	{array}		domain.Product
//	@Failure		404	{object}	ErrorResponse	"Каталог пуст"
//	@Router			/search [get]
func (h *CatalogHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogUC.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Warnf("searchProducts: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, products)
}

// getProduct
//
//	@Summary		Получение товара
//	@Description	Возвращает первый товар с указанным product_id
//	@Tags			products
//	@Produce		json
//	@Param			product_id	path		int	true	"Идентификатор товара"
//	@Success		200			{object}	domain.Product
//	@Failure		404			{object}	ErrorResponse	"Товар не найден"
//	@Router			/products/{product_id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "product_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		h.logger.Warnf("getProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, product)
}

// updateProduct
//
//	@Summary		Частичное обновление товара
//	@Description	Обновляет только присланные поля, остальные не трогает
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product_id	path		int						true	"Идентификатор товара"
//	@Param			patch		body		map[string]interface{}	true	"Обновляемые поля"
//	@Success		200			{object}	map[string]interface{}	"Успешное обновление"
//	@Failure		404			{object}	ErrorResponse			"Товар не найден"
//	@Router			/products/{product_id} [put]
func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	id, err := parseProductID(chi.URLParam(r, "product_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	var patch map[string]interface{}
	if err := decodeJSONBody(r, &patch); err != nil {
		h.logger.Warnf("%d updateProduct: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	if err := h.catalogUC.UpdateProduct(r.Context(), id, patch); err != nil {
		h.logger.Warnf("updateProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
	})
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Удаляет первый товар с указанным product_id
//	@Tags			products
//	@Produce		json
//	@Param			product_id	path		int						true	"Идентификатор товара"
//	@Success		200			{object}	map[string]interface{}	"Успешное удаление"
//	@Failure		404			{object}	ErrorResponse			"Товар не найден"
//	@Router			/products/{product_id} [delete]
func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseProductID(chi.URLParam(r, "product_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Warnf("deleteProduct: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
	})
}

// uploadImage
//
//	@Summary		Загрузка изображения товара
//	@Description	Принимает multipart-файл, кладёт в объектное хранилище и обновляет ссылку у товара
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			product_id	path		int						true	"Идентификатор товара"
//	@Param			image		formData	file					true	"Изображение"
//	@Success		200			{object}	map[string]interface{}	"Успешная загрузка"
//	@Failure		400			{object}	ErrorResponse			"Ошибка валидации"
//	@Router			/products/{product_id}/image [post]
func (h *CatalogHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	id, err := parseProductID(chi.URLParam(r, "product_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := ensureMultipartForm(r, maxMultipartMemory); err != nil {
		h.logger.Warnf("%d uploadImage: %s", http.StatusBadRequest, r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	image, err := parseImage(r.MultipartForm.File["image"])
	if err != nil {
		h.logger.Warnf("%d uploadImage: %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	key, err := h.catalogUC.AttachImage(r.Context(), usecase.NewAttachImageReq(id, *image))
	if err != nil {
		h.logger.Warnf("uploadImage: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Image uploaded successfully",
		"key":     key,
	})
}
