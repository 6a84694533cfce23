package model

import "time"

// Question 题库中的一道TMUA真题，题号由导入时指定，系统内不再修改
// swagger:model Question
type Question struct {
	QuesNumber    uint      `gorm:"primaryKey;autoIncrement:false" json:"quesNumber"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	Options       string    `gorm:"type:text;not null" json:"options"` // 原始文本格式，前端负责解析
	Solution      string    `gorm:"type:text" json:"solution"`
	Topic         string    `gorm:"size:100;index" json:"topic"`
	Difficulty    string    `gorm:"size:20;index" json:"difficulty"` // Easy / Medium / Hard
	Source        string    `gorm:"size:100;index" json:"source"`
	QType         int       `gorm:"default:0" json:"qType"`
	CorrectAnswer string    `gorm:"size:255" json:"correctAnswer"`
	Image         *string   `gorm:"size:255" json:"image"`
	SolutionImage *string   `gorm:"size:255" json:"solutionImage"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Question) TableName() string {
	return "questions"
}

// AttemptStatus 某道题相对某个用户的作答状态，按请求即时推导，不落库
type AttemptStatus string

const (
	StatusCorrect     AttemptStatus = "correct"
	StatusIncorrect   AttemptStatus = "incorrect"
	StatusUnattempted AttemptStatus = "unattempted"
)

func ValidAttemptStatus(s AttemptStatus) bool {
	switch s {
	case StatusCorrect, StatusIncorrect, StatusUnattempted:
		return true
	}
	return false
}

// QuestionWithStatus 附带作答状态的题目视图
// swagger:model QuestionWithStatus
type QuestionWithStatus struct {
	Question
	Status AttemptStatus `json:"status"`
}
