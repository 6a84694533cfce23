package repository

import (
	"tmua_guide_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionFilter 题目目录查询条件。
// IncludeIDs 与 ExcludeIDs 同时非空时按 OR 组合（命中包含集，或不在排除集），
// 对应"已答状态命中 或 未作答"这类跨谓词筛选，保证一次查询完成。
type QuestionFilter struct {
	Difficulty string
	Topic      string
	Source     string
	QType      *int
	IncludeIDs []uint
	ExcludeIDs []uint
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) buildQuery(f QuestionFilter) *gorm.DB {
	q := r.DB.Model(&model.Question{})

	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Topic != "" {
		q = q.Where("topic = ?", f.Topic)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.QType != nil {
		q = q.Where("q_type = ?", *f.QType)
	}

	switch {
	case len(f.IncludeIDs) > 0 && len(f.ExcludeIDs) > 0:
		q = q.Where("ques_number IN ? OR ques_number NOT IN ?", f.IncludeIDs, f.ExcludeIDs)
	case len(f.IncludeIDs) > 0:
		q = q.Where("ques_number IN ?", f.IncludeIDs)
	case len(f.ExcludeIDs) > 0:
		q = q.Where("ques_number NOT IN ?", f.ExcludeIDs)
	}

	return q
}

// Count 与 FindPage 使用完全相同的查询条件，否则分页元信息会与页内容脱节
func (r *QuestionRepository) Count(f QuestionFilter) (int64, error) {
	var total int64
	err := r.buildQuery(f).Count(&total).Error
	return total, err
}

func (r *QuestionRepository) FindPage(f QuestionFilter, offset, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.buildQuery(f).
		Order("ques_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByNumber(quesNumber uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, "ques_number = ?", quesNumber).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByNumbers(quesNumbers []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(quesNumbers) == 0 {
		return questions, nil
	}
	err := r.DB.Where("ques_number IN ?", quesNumbers).Find(&questions).Error
	return questions, err
}

// BulkInsert 批量导入题目，每批50条
func (r *QuestionRepository) BulkInsert(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(questions, 50).Error
}

func (r *QuestionRepository) DistinctTopics() ([]string, error) {
	var topics []string
	err := r.DB.Model(&model.Question{}).Distinct("topic").Order("topic ASC").Pluck("topic", &topics).Error
	return topics, err
}

func (r *QuestionRepository) DistinctSources() ([]string, error) {
	var sources []string
	err := r.DB.Model(&model.Question{}).Distinct("source").Order("source ASC").Pluck("source", &sources).Error
	return sources, err
}

// SetImage 关联题面图或解析图，题目其余字段只通过批量导入变更
func (r *QuestionRepository) SetImage(quesNumber uint, solution bool, url string) error {
	column := "image"
	if solution {
		column = "solution_image"
	}
	return r.DB.Model(&model.Question{}).
		Where("ques_number = ?", quesNumber).
		Update(column, url).Error
}
