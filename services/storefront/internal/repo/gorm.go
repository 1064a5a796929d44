package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.CartState{})
}

func (r *GormRepo) Open(sessionID string) cart.Storage {
	return &gormStorage{repo: r, sessionID: sessionID}
}

func (r *GormRepo) GetState(ctx context.Context, sessionID string) (*models.CartState, error) {
	var state models.CartState
	if err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&state).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *GormRepo) SaveState(ctx context.Context, sessionID string, payload []byte) error {
	state := models.CartState{
		SessionID: sessionID,
		Payload:   string(payload),
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&state).Error
}

func (r *GormRepo) DeleteState(ctx context.Context, sessionID string) error {
	res := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartState{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type gormStorage struct {
	repo      *GormRepo
	sessionID string
}

func (s *gormStorage) Load(ctx context.Context) ([]byte, error) {
	state, err := s.repo.GetState(ctx, s.sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(state.Payload), nil
}

func (s *gormStorage) Save(ctx context.Context, data []byte) error {
	return s.repo.SaveState(ctx, s.sessionID, data)
}
