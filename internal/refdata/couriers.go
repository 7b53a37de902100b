package refdata

import (
	"context"
	"strings"

	"sample-stock/internal/ledger"
	"sample-stock/internal/models"

	"gorm.io/gorm/clause"
)

type Couriers struct {
	store *ledger.Store
}

func NewCouriers(store *ledger.Store) *Couriers {
	return &Couriers{store: store}
}

func (c *Couriers) List(ctx context.Context) ([]models.Courier, error) {
	couriers := make([]models.Courier, 0)
	if err := c.store.Read(ctx).Order("name ASC").Find(&couriers).Error; err != nil {
		return nil, ledger.StoreErr(err)
	}
	return couriers, nil
}

// Ensure adds the courier if it is not already known and returns the stored row.
func (c *Couriers) Ensure(ctx context.Context, name string) (*models.Courier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledger.Errorf(ledger.KindValidation, "Kargo firması adı zorunludur")
	}

	var courier models.Courier
	err := c.store.Write(ctx, func(tx *ledger.Tx) error {
		row := models.Courier{Name: name}
		if err := tx.DB().Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.DB().Where("name = ?", name).First(&courier).Error
	})
	if err != nil {
		return nil, err
	}
	return &courier, nil
}
