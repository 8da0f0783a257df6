package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name        string          `gorm:"not null"                      json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	Cover       string          `gorm:"not null"                      json:"cover"`
	Categories  []Category      `gorm:"many2many:product_categories"  json:"categories"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
	Slug string `gorm:"uniqueIndex;not null"     json:"slug"`
}

type Order struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID    uint            `gorm:"index;not null"              json:"user_id"`
	Status    OrderStatus     `gorm:"not null"                    json:"status"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Lines     []OrderLine     `gorm:"foreignKey:OrderID"          json:"lines"`
}

// OrderLine keeps the unit price the product had when the order was
// created. Later catalog price changes never touch it.
type OrderLine struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	ProductID uint            `gorm:"not null"                    json:"product_id"`
	Quantity  uint            `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Product   Product         `gorm:"foreignKey:ProductID"        json:"product"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	Role         Role      `gorm:"not null;default:user"    json:"role"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// CartBlob is the server-side backing row for one persisted cart list,
// keyed by owner key ("cart" for guests, "cart:<user id>" for accounts).
type CartBlob struct {
	OwnerKey  string    `gorm:"primaryKey" json:"owner_key"`
	Payload   []byte    `json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

func All() []any {
	return []any{
		&Product{},
		&Category{},
		&Order{},
		&OrderLine{},
		&User{},
		&RefreshToken{},
		&CartBlob{},
	}
}
