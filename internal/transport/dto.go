package transport

import (
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AccountPatchRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2"`
	Image *string `json:"image"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=3"`
	Description string          `json:"description" validate:"omitempty,min=10"`
	Price       decimal.Decimal `json:"price"       validate:"gt=0"`
	Cover       string          `json:"cover"       validate:"required"`
	CategoryIDs []uint          `json:"category_ids"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=3"`
	Description *string          `json:"description" validate:"omitempty,min=10"`
	Price       *decimal.Decimal `json:"price"       validate:"omitempty,gt=0"`
	Cover       *string          `json:"cover"       validate:"omitempty,min=1"`
}

type CartLine struct {
	ID  uint `json:"id"  validate:"required"`
	Qty uint `json:"qty" validate:"required,gte=1"`
}

type PutCartRequest struct {
	Lines []CartLine `json:"lines" validate:"dive"`
}

type OrderLineRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Lines []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UserPatchRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
	Role *string `json:"role" validate:"omitempty,oneof=user admin super_admin"`
}

type ChangeEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}
