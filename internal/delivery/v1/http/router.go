package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/shopsphere/catalog-service/docs" // Импорт сгенерированных файлов
	"github.com/shopsphere/catalog-service/internal/usecase"
	"github.com/shopsphere/catalog-service/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

// Init регистрирует маршруты каталога. Маршрут загрузки изображений
// добавляется только при включённом объектном хранилище.
func (r *Router) Init(catalogUC usecase.CatalogUC, imagesEnabled bool) {
	// Витрина ходит с любого origin
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:3300/swagger/doc.json"), // ссылка на JSON
	))

	handler := NewCatalogHandler(catalogUC, r.logger)
	registerCatalogRoutes(r.router, handler, imagesEnabled)
}

func registerCatalogRoutes(router chi.Router, handler *CatalogHandler, imagesEnabled bool) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", handler.createProduct)
		pr.Get("/", handler.listProducts)
		pr.Post("/bulk", handler.bulkInsertProducts)

		pr.Route("/{product_id}", func(item chi.Router) {
			item.Get("/", handler.getProduct)
			item.Put("/", handler.updateProduct)
			item.Delete("/", handler.deleteProduct)
			if imagesEnabled {
				item.Post("/image", handler.uploadImage)
			}
		})
	})

	router.Get("/search", handler.searchProducts)
}
