package transport

import "github.com/Skotchmaster/storefront/internal/service"

// Field names follow the client contract: productId/quantity in requests.
// Quantity is a pointer so an omitted value can default to 1 while an
// explicit zero still fails validation.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error   string                   `json:"error"`
	Details []service.FieldViolation `json:"details"`
}
