package service

import (
	"sort"
	"time"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/util"
)

// AttemptStore 作答记录访问契约：单条插入 + 按用户拉取全量历史。
// 不依赖存储端聚合，统计全部在进程内完成。
type AttemptStore interface {
	Create(attempt *model.Attempt) error
	FindByUser(userID string) ([]model.Attempt, error)
}

// QuestionCatalog 进度统计所需的题目目录只读视图
type QuestionCatalog interface {
	FindByNumbers(quesNumbers []uint) ([]model.Question, error)
}

type TimeRange string

const (
	RangeToday TimeRange = "today"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeAll   TimeRange = "all"
)

func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return RangeAll, nil
	}
	r := TimeRange(s)
	switch r {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return r, nil
	}
	return "", util.InvalidArgument("invalid time_range %q", s)
}

// AttemptRequest 记录一次作答
// swagger:model AttemptRequest
type AttemptRequest struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required"`
	TimeTaken      int    `json:"time_taken"`
	IsCorrect      bool   `json:"is_correct"`
}

// UserStats 某时间范围内的作答统计
// swagger:model UserStats
type UserStats struct {
	TotalAttempts  int     `json:"total_attempts"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
}

// TopicProgress 按专题统计
// swagger:model TopicProgress
type TopicProgress struct {
	Topic           string  `json:"topic"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	AverageTime     float64 `json:"average_time"`
}

// DifficultyProgress 按难度统计
// swagger:model DifficultyProgress
type DifficultyProgress struct {
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	AverageTime     float64 `json:"average_time"`
}

// StreakStats 连续练习天数
// swagger:model StreakStats
type StreakStats struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// DailyPerformance 单日作答汇总
// swagger:model DailyPerformance
type DailyPerformance struct {
	Date     string  `json:"date"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type ProgressService struct {
	Attempts  AttemptStore
	Questions QuestionCatalog
}

func NewProgressService(attempts AttemptStore, questions QuestionCatalog) *ProgressService {
	return &ProgressService{
		Attempts:  attempts,
		Questions: questions,
	}
}

// RecordAttempt 追加一条作答记录。题号与题库的外键关系不在本系统强制。
func (s *ProgressService) RecordAttempt(userID string, req AttemptRequest) (*model.Attempt, error) {
	if req.QuestionID == 0 {
		return nil, util.InvalidArgument("question_id is required")
	}
	if req.TimeTaken < 0 {
		return nil, util.InvalidArgument("time_taken must be non-negative")
	}

	attempt := &model.Attempt{
		UserID:         userID,
		QuestionID:     req.QuestionID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      req.IsCorrect,
		TimeTaken:      req.TimeTaken,
		AttemptedAt:    time.Now(),
	}

	if err := s.Attempts.Create(attempt); err != nil {
		return nil, util.WrapStore(err)
	}
	return attempt, nil
}

func rangeStart(r TimeRange, now time.Time) (time.Time, bool) {
	switch r {
	case RangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

// GetStats 统计时间范围内的作答总数、正确数与正确率
func (s *ProgressService) GetStats(userID string, r TimeRange) (*UserStats, error) {
	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	start, bounded := rangeStart(r, time.Now())

	stats := &UserStats{}
	for _, a := range attempts {
		if bounded && a.AttemptedAt.Before(start) {
			continue
		}
		stats.TotalAttempts++
		if a.IsCorrect {
			stats.CorrectAnswers++
		}
	}
	if stats.TotalAttempts > 0 {
		stats.Accuracy = float64(stats.CorrectAnswers) / float64(stats.TotalAttempts) * 100
	}
	return stats, nil
}

// GetTopicProgress 按专题聚合作答统计；引用不存在题目的记录被跳过
func (s *ProgressService) GetTopicProgress(userID string) ([]TopicProgress, error) {
	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	topicByQues, err := s.questionField(attempts, func(q model.Question) string { return q.Topic })
	if err != nil {
		return nil, err
	}

	type agg struct {
		total, correct, timeSum int
	}
	byTopic := make(map[string]*agg)
	for _, a := range attempts {
		topic, ok := topicByQues[a.QuestionID]
		if !ok {
			continue
		}
		st, exists := byTopic[topic]
		if !exists {
			st = &agg{}
			byTopic[topic] = st
		}
		st.total++
		st.timeSum += a.TimeTaken
		if a.IsCorrect {
			st.correct++
		}
	}

	result := make([]TopicProgress, 0, len(byTopic))
	for topic, st := range byTopic {
		tp := TopicProgress{
			Topic:           topic,
			TotalAttempts:   st.total,
			CorrectAttempts: st.correct,
			AverageTime:     float64(st.timeSum) / float64(st.total),
		}
		tp.Accuracy = float64(st.correct) / float64(st.total) * 100
		result = append(result, tp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Topic < result[j].Topic })
	return result, nil
}

// GetDifficultyProgress 按难度聚合作答统计
func (s *ProgressService) GetDifficultyProgress(userID string) (map[string]DifficultyProgress, error) {
	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	difficultyByQues, err := s.questionField(attempts, func(q model.Question) string { return q.Difficulty })
	if err != nil {
		return nil, err
	}

	type agg struct {
		total, correct, timeSum int
	}
	byDifficulty := make(map[string]*agg)
	for _, a := range attempts {
		difficulty, ok := difficultyByQues[a.QuestionID]
		if !ok {
			continue
		}
		st, exists := byDifficulty[difficulty]
		if !exists {
			st = &agg{}
			byDifficulty[difficulty] = st
		}
		st.total++
		st.timeSum += a.TimeTaken
		if a.IsCorrect {
			st.correct++
		}
	}

	result := make(map[string]DifficultyProgress, len(byDifficulty))
	for difficulty, st := range byDifficulty {
		result[difficulty] = DifficultyProgress{
			TotalAttempts:   st.total,
			CorrectAttempts: st.correct,
			Accuracy:        float64(st.correct) / float64(st.total) * 100,
			AverageTime:     float64(st.timeSum) / float64(st.total),
		}
	}
	return result, nil
}

// questionField 拉取作答涉及的题目并提取某个字段，返回 题号->字段值
func (s *ProgressService) questionField(attempts []model.Attempt, field func(model.Question) string) (map[uint]string, error) {
	seen := make(map[uint]bool)
	var quesNumbers []uint
	for _, a := range attempts {
		if !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			quesNumbers = append(quesNumbers, a.QuestionID)
		}
	}

	questions, err := s.Questions.FindByNumbers(quesNumbers)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	result := make(map[uint]string, len(questions))
	for _, q := range questions {
		result[q.QuesNumber] = field(q)
	}
	return result, nil
}

// GetRecentAttempts 返回最近 limit 条作答，按时间倒序
func (s *ProgressService) GetRecentAttempts(userID string, limit int) ([]model.Attempt, error) {
	if limit < 1 || limit > 50 {
		return nil, util.InvalidArgument("limit must be in [1,50]")
	}

	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	if len(attempts) > limit {
		attempts = attempts[len(attempts)-limit:]
	}
	// 历史按时间升序，取尾部后反转
	result := make([]model.Attempt, len(attempts))
	for i, a := range attempts {
		result[len(attempts)-1-i] = a
	}
	return result, nil
}

// GetDailyStreak 计算连续练习天数：当前连击从今天（或昨天）向前数连续有作答的日子
func (s *ProgressService) GetDailyStreak(userID string) (*StreakStats, error) {
	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}
	if len(attempts) == 0 {
		return &StreakStats{}, nil
	}

	daySet := make(map[string]bool)
	var days []time.Time
	for _, a := range attempts {
		key := a.AttemptedAt.Format(util.DateFormat)
		if !daySet[key] {
			daySet[key] = true
			d, _ := time.Parse(util.DateFormat, key)
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	now := time.Now()
	today, _ := time.Parse(util.DateFormat, now.Format(util.DateFormat))
	current := 0
	cursor := today
	// 今天还没练不中断连击，从昨天接着数
	if !daySet[cursor.Format(util.DateFormat)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for daySet[cursor.Format(util.DateFormat)] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return &StreakStats{CurrentStreak: current, LongestStreak: longest}, nil
}

// GetPerformanceTimeline 最近 days 天的逐日作答汇总，按日期升序
func (s *ProgressService) GetPerformanceTimeline(userID string, days int) ([]DailyPerformance, error) {
	if days < 1 || days > 365 {
		return nil, util.InvalidArgument("days must be in [1,365]")
	}

	attempts, err := s.Attempts.FindByUser(userID)
	if err != nil {
		return nil, util.WrapStore(err)
	}

	start := time.Now().AddDate(0, 0, -days)
	type agg struct {
		total, correct int
	}
	byDate := make(map[string]*agg)
	for _, a := range attempts {
		if a.AttemptedAt.Before(start) {
			continue
		}
		key := a.AttemptedAt.Format(util.DateFormat)
		st, exists := byDate[key]
		if !exists {
			st = &agg{}
			byDate[key] = st
		}
		st.total++
		if a.IsCorrect {
			st.correct++
		}
	}

	result := make([]DailyPerformance, 0, len(byDate))
	for date, st := range byDate {
		dp := DailyPerformance{
			Date:     date,
			Attempts: st.total,
			Correct:  st.correct,
		}
		if st.total > 0 {
			dp.Accuracy = float64(st.correct) / float64(st.total) * 100
		}
		result = append(result, dp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}
