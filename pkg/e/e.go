package e

import "fmt"

var (
	// Внутренние ошибки
	ErrTransactionNotFound  = fmt.Errorf("transaction not found")
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrImagesDisabled       = fmt.Errorf("image storage is not configured")

	// 404 Not Found
	ErrProductNotFound    = fmt.Errorf("product not found")
	ErrNoProducts         = fmt.Errorf("no products found")
	ErrNoMatchingProducts = fmt.Errorf("no products found matching the criteria")

	// 400 Bad Request
	ErrInvalidRequestBody   = fmt.Errorf("invalid request body")
	ErrInvalidFilterParam   = fmt.Errorf("invalid filter parameter")
	ErrEmptyBulkRequest     = fmt.Errorf("bulk request must contain at least one product")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data request")
	ErrNoImage              = fmt.Errorf("no image provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
