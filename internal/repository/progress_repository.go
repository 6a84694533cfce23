package repository

import (
	"tmua_guide_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

// FindByUser 返回用户全部作答历史，按作答时间升序。
// 状态折叠依赖这个顺序：最近一次作答决定题目状态。
func (r *ProgressRepository) FindByUser(userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ?", userID).
		Order("attempted_at ASC").
		Find(&attempts).Error
	return attempts, err
}

// FindAll 管理端统计用，聚合在进程内完成
func (r *ProgressRepository) FindAll() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Order("attempted_at ASC").Find(&attempts).Error
	return attempts, err
}

func (r *ProgressRepository) DeleteByUser(userID string) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.Attempt{}).Error
}
