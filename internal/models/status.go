package models

// OrderStatus is stored and exchanged in its lower-case English form.
// Presentation layers translate labels, the server never does.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order currently in s may move to target.
// A pending order may move anywhere; repeating the current status is always
// allowed (idempotent no-op); everything else is rejected.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if target == s {
		return true
	}
	return s == StatusPending
}

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
