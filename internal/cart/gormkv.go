package cart

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/discoshop/backend/internal/models"
)

// GormKV persists cart payloads in the cart_blobs table so lists survive
// process restarts.
type GormKV struct {
	DB *gorm.DB
}

func (kv *GormKV) Get(key string) ([]byte, bool, error) {
	var blob models.CartBlob
	if err := kv.DB.Where("owner_key = ?", key).First(&blob).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return blob.Payload, true, nil
}

func (kv *GormKV) Set(key string, value []byte) error {
	blob := models.CartBlob{OwnerKey: key, Payload: value}
	return kv.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&blob).Error
}
