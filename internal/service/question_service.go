package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/repository"
	"tmua_guide_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// QuestionStore 题库访问契约：等值筛选、题号包含/排除谓词、偏移取页、精确计数
type QuestionStore interface {
	Count(f repository.QuestionFilter) (int64, error)
	FindPage(f repository.QuestionFilter, offset, limit int) ([]model.Question, error)
	FindByNumber(quesNumber uint) (*model.Question, error)
	DistinctTopics() ([]string, error)
	DistinctSources() ([]string, error)
}

// AttemptHistoryStore 作答历史访问契约，返回按作答时间升序的全量历史
type AttemptHistoryStore interface {
	FindByUser(userID string) ([]model.Attempt, error)
}

// ListFilter 题目列表的筛选条件
type ListFilter struct {
	Difficulty string
	Topic      string
	Source     string
	QType      *int
	Statuses   []model.AttemptStatus
}

// QuestionPage 分页后的题目列表
// swagger:model QuestionPage
type QuestionPage struct {
	Items []model.QuestionWithStatus `json:"items"`
	util.PageMeta
}

// FilterOptions 前端可用的筛选项
// swagger:model FilterOptions
type FilterOptions struct {
	Topics       []string `json:"topics"`
	Difficulties []string `json:"difficulties"`
	Sources      []string `json:"sources"`
}

type QuestionService struct {
	Questions QuestionStore
	Attempts  AttemptHistoryStore
	Redis     *redis.Client
}

func NewQuestionService(questions QuestionStore, attempts AttemptHistoryStore, rdb *redis.Client) *QuestionService {
	return &QuestionService{
		Questions: questions,
		Attempts:  attempts,
		Redis:     rdb,
	}
}

// ListQuestions 按筛选条件返回一页附带作答状态的题目。
// 计数与取页是两次独立往返，期间发生的并发写入会让 total 与页内容轻微偏差，
// 远端存储不提供跨调用事务边界，这是接受的已知窗口，不做加锁补偿。
func (s *QuestionService) ListQuestions(userID string, f ListFilter, page, size int) (*QuestionPage, error) {
	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	statusBy, elig := resolveStatuses(attempts, f.Statuses)
	if elig.Empty {
		// 快速路径：资格集为空时不再访问题库
		return &QuestionPage{
			Items:    []model.QuestionWithStatus{},
			PageMeta: util.Paginate(0, page, size),
		}, nil
	}

	qf := repository.QuestionFilter{
		Difficulty: f.Difficulty,
		Topic:      f.Topic,
		Source:     f.Source,
		QType:      f.QType,
	}
	if !elig.Unrestricted {
		qf.IncludeIDs = elig.IncludeIDs
		qf.ExcludeIDs = elig.ExcludeIDs
	}

	total, err := s.Questions.Count(qf)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	meta := util.Paginate(total, page, size)
	questions, err := s.Questions.FindPage(qf, meta.Offset(), meta.Limit())
	if err != nil {
		return nil, util.WrapStore(err)
	}

	items := make([]model.QuestionWithStatus, len(questions))
	for i, q := range questions {
		status, ok := statusBy[q.QuesNumber]
		if !ok {
			status = model.StatusUnattempted
		}
		items[i] = model.QuestionWithStatus{Question: q, Status: status}
	}

	return &QuestionPage{Items: items, PageMeta: meta}, nil
}

func (s *QuestionService) GetQuestion(quesNumber uint) (*model.Question, error) {
	question, err := s.Questions.FindByNumber(quesNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, util.WrapStore(err)
	}
	return question, nil
}

const (
	filterOptionsCacheKey = "question_filters"
	filterOptionsCacheTTL = 10 * time.Minute
)

// GetFilterOptions 返回可用筛选项，结果在Redis中缓存（题库仅批量导入时变化）
func (s *QuestionService) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, filterOptionsCacheKey).Result(); err == nil {
			var opts FilterOptions
			if json.Unmarshal([]byte(val), &opts) == nil {
				return &opts, nil
			}
		}
	}

	topics, err := s.Questions.DistinctTopics()
	if err != nil {
		return nil, util.WrapStore(err)
	}
	sources, err := s.Questions.DistinctSources()
	if err != nil {
		return nil, util.WrapStore(err)
	}

	opts := &FilterOptions{
		Topics:       topics,
		Difficulties: []string{"Easy", "Medium", "Hard"},
		Sources:      sources,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(opts); err == nil {
			s.Redis.Set(ctx, filterOptionsCacheKey, data, filterOptionsCacheTTL)
		}
	}

	return opts, nil
}

// InvalidateFilterOptions 批量导入后清除筛选项缓存
func (s *QuestionService) InvalidateFilterOptions(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, filterOptionsCacheKey)
	}
}
