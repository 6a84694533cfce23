package model

import "time"

// Attempt 用户的一次作答记录，只增不改
// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID         string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	QuestionID     uint      `gorm:"index;not null" json:"questionId"`
	SelectedAnswer string    `gorm:"size:255" json:"selectedAnswer"`
	IsCorrect      bool      `gorm:"not null" json:"isCorrect"`
	TimeTaken      int       `gorm:"default:0" json:"timeTaken"` // 秒
	AttemptedAt    time.Time `gorm:"index;default:CURRENT_TIMESTAMP(3)" json:"attemptedAt"`
}

func (Attempt) TableName() string {
	return "user_progress"
}
