package refdata

import (
	"context"
	"errors"
	"strings"
	"time"

	"sample-stock/internal/ledger"
	"sample-stock/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientPurposes: müşteri -> numune amacı eşlemesi
type ClientPurposes struct {
	store *ledger.Store
}

func NewClientPurposes(store *ledger.Store) *ClientPurposes {
	return &ClientPurposes{store: store}
}

func (p *ClientPurposes) List(ctx context.Context) ([]models.ClientPurpose, error) {
	purposes := make([]models.ClientPurpose, 0)
	if err := p.store.Read(ctx).Order("client ASC").Find(&purposes).Error; err != nil {
		return nil, ledger.StoreErr(err)
	}
	return purposes, nil
}

func (p *ClientPurposes) Get(ctx context.Context, client string) (*models.ClientPurpose, error) {
	var cp models.ClientPurpose
	err := p.store.Read(ctx).Where("client = ?", strings.TrimSpace(client)).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ledger.Errorf(ledger.KindNotFound, "Müşteri için amaç bulunamadı: %s", client)
	}
	if err != nil {
		return nil, ledger.StoreErr(err)
	}
	return &cp, nil
}

func (p *ClientPurposes) Upsert(ctx context.Context, client, purpose string) (*models.ClientPurpose, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, ledger.Errorf(ledger.KindValidation, "Müşteri adı zorunludur")
	}

	var cp models.ClientPurpose
	err := p.store.Write(ctx, func(tx *ledger.Tx) error {
		row := models.ClientPurpose{Client: client, Purpose: purpose, UpdatedAt: time.Now()}
		if err := tx.DB().Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client"}},
			DoUpdates: clause.AssignmentColumns([]string{"purpose", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.DB().Where("client = ?", client).First(&cp).Error
	})
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Lookup returns client -> purpose for export rows.
func (p *ClientPurposes) Lookup(ctx context.Context) (map[string]string, error) {
	purposes, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(purposes))
	for _, cp := range purposes {
		out[cp.Client] = cp.Purpose
	}
	return out, nil
}
