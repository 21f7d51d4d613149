package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/adb-reso/adb-reso-go/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 键值设置的数据访问层
type SettingRepository struct {
	db        *gorm.DB
	toggleKey string
}

// NewSettingRepository 创建设置仓库，toggleKey 为自动应用开关的键名
func NewSettingRepository(db *gorm.DB, toggleKey string) *SettingRepository {
	if toggleKey == "" {
		toggleKey = "toggleState"
	}
	return &SettingRepository{db: db, toggleKey: toggleKey}
}

// Get 读取设置，不存在时返回 ok=false
func (r *SettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var s domain.Setting
	err := r.db.WithContext(ctx).Where(&domain.Setting{Key: key}).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return s.Value, true, nil
}

// Set 写入设置，后写覆盖先写
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	s := domain.Setting{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// AutoApply 读取自动应用开关，未设置时为关闭
func (r *SettingRepository) AutoApply(ctx context.Context) (bool, error) {
	v, ok, err := r.Get(ctx, r.toggleKey)
	if err != nil || !ok {
		return false, err
	}
	return domain.ParseToggle(v), nil
}

// SetAutoApply 保存自动应用开关
func (r *SettingRepository) SetAutoApply(ctx context.Context, on bool) error {
	return r.Set(ctx, r.toggleKey, domain.ToggleValue(on))
}
