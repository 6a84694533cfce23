package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/repository"
	"tmua_guide_backend/internal/util"

	"gorm.io/gorm"
)

// UserAdminStore 管理端的用户目录访问契约
type UserAdminStore interface {
	FindAll() ([]model.User, error)
	FindByID(id string) (*model.User, error)
	Update(user *model.User) error
	Delete(id string) error
	Count() (int64, error)
}

// ProgressAdminStore 管理端的作答记录访问契约
type ProgressAdminStore interface {
	FindAll() ([]model.Attempt, error)
	DeleteByUser(userID string) error
}

// QuestionAdminStore 管理端的题库维护契约
type QuestionAdminStore interface {
	Count(f repository.QuestionFilter) (int64, error)
	FindByNumber(quesNumber uint) (*model.Question, error)
	BulkInsert(questions []model.Question) error
	SetImage(quesNumber uint, solution bool, url string) error
}

// AdminUserStats 单个用户的作答概况
// swagger:model AdminUserStats
type AdminUserStats struct {
	UserID          string     `json:"user_id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Role            string     `json:"role"`
	Disabled        bool       `json:"disabled"`
	TotalAttempts   int        `json:"total_attempts"`
	CorrectAttempts int        `json:"correct_attempts"`
	LastActive      *time.Time `json:"last_active"`
}

// UserUpdateRequest 管理端修改用户
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	Role     *model.UserRole `json:"role"`
	Disabled *bool           `json:"disabled"`
}

// SystemStats 系统总体统计
// swagger:model SystemStats
type SystemStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalQuestions    int64 `json:"total_questions"`
	TotalAttempts     int   `json:"total_attempts"`
	WeeklyActiveUsers int   `json:"weekly_active_users"`
	WeeklyAttempts    int   `json:"weekly_attempts"`
}

type AdminService struct {
	Users     UserAdminStore
	Progress  ProgressAdminStore
	Questions QuestionAdminStore
	Storage   *StorageService
}

func NewAdminService(users UserAdminStore, progress ProgressAdminStore, questions QuestionAdminStore, storage *StorageService) *AdminService {
	return &AdminService{
		Users:     users,
		Progress:  progress,
		Questions: questions,
		Storage:   storage,
	}
}

// ListUserStats 全量用户的作答概况，聚合在进程内完成
func (s *AdminService) ListUserStats() ([]AdminUserStats, error) {
	users, err := s.Users.FindAll()
	if err != nil {
		return nil, util.WrapStore(err)
	}
	attempts, err := s.Progress.FindAll()
	if err != nil {
		return nil, util.WrapStore(err)
	}

	type agg struct {
		total, correct int
		lastActive     time.Time
	}
	byUser := make(map[string]*agg)
	for _, a := range attempts {
		st, exists := byUser[a.UserID]
		if !exists {
			st = &agg{}
			byUser[a.UserID] = st
		}
		st.total++
		if a.IsCorrect {
			st.correct++
		}
		if a.AttemptedAt.After(st.lastActive) {
			st.lastActive = a.AttemptedAt
		}
	}

	result := make([]AdminUserStats, len(users))
	for i, u := range users {
		stats := AdminUserStats{
			UserID:   u.ID,
			Email:    u.Email,
			Name:     u.Name,
			Role:     string(u.Role),
			Disabled: u.Disabled,
		}
		if st, ok := byUser[u.ID]; ok {
			stats.TotalAttempts = st.total
			stats.CorrectAttempts = st.correct
			last := st.lastActive
			stats.LastActive = &last
		}
		result[i] = stats
	}
	return result, nil
}

func (s *AdminService) UpdateUser(id string, req UserUpdateRequest) error {
	if req.Role != nil && !model.ValidRole(*req.Role) {
		return util.InvalidArgument("invalid role %q", *req.Role)
	}

	user, err := s.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return util.WrapStore(err)
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.Users.Update(user); err != nil {
		return util.WrapStore(err)
	}
	return nil
}

// DeleteUser 先删作答记录再删用户，避免留下孤儿进度
func (s *AdminService) DeleteUser(id string) error {
	if _, err := s.Users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return util.WrapStore(err)
	}

	if err := s.Progress.DeleteByUser(id); err != nil {
		return util.WrapStore(err)
	}
	if err := s.Users.Delete(id); err != nil {
		return util.WrapStore(err)
	}
	return nil
}

func (s *AdminService) GetSystemStats() (*SystemStats, error) {
	totalUsers, err := s.Users.Count()
	if err != nil {
		return nil, util.WrapStore(err)
	}
	totalQuestions, err := s.Questions.Count(repository.QuestionFilter{})
	if err != nil {
		return nil, util.WrapStore(err)
	}
	attempts, err := s.Progress.FindAll()
	if err != nil {
		return nil, util.WrapStore(err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	weeklyUsers := make(map[string]bool)
	weeklyAttempts := 0
	for _, a := range attempts {
		if a.AttemptedAt.Before(weekAgo) {
			continue
		}
		weeklyAttempts++
		weeklyUsers[a.UserID] = true
	}

	return &SystemStats{
		TotalUsers:        totalUsers,
		TotalQuestions:    totalQuestions,
		TotalAttempts:     len(attempts),
		WeeklyActiveUsers: len(weeklyUsers),
		WeeklyAttempts:    weeklyAttempts,
	}, nil
}

// ImportQuestions 批量导入题目。存在行级错误时整体不入库，仅返回错误清单。
func (s *AdminService) ImportQuestions(r io.Reader) (*ImportResult, error) {
	questions, rowErrors, err := parseQuestionCSV(r)
	if err != nil {
		return nil, util.InvalidArgument("%v", err)
	}

	if len(rowErrors) > 0 {
		status := "failed"
		if len(questions) > 0 {
			status = "partial_success"
		}
		return &ImportResult{
			Status:     status,
			Errors:     rowErrors,
			ValidCount: len(questions),
		}, nil
	}

	if err := s.Questions.BulkInsert(questions); err != nil {
		return nil, util.WrapStore(err)
	}

	return &ImportResult{
		Status:        "success",
		Message:       fmt.Sprintf("Successfully imported %d questions", len(questions)),
		ValidCount:    len(questions),
		ImportedCount: len(questions),
	}, nil
}

// AttachQuestionImage 上传题面图或解析图并关联到题目
func (s *AdminService) AttachQuestionImage(ctx context.Context, quesNumber uint, solution bool, file *multipart.FileHeader) (string, error) {
	if _, err := s.Questions.FindByNumber(quesNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrQuestionNotFound
		}
		return "", util.WrapStore(err)
	}

	src, err := file.Open()
	if err != nil {
		return "", util.InvalidArgument("open upload: %v", err)
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", util.InvalidArgument("%v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	kind := "image"
	if solution {
		kind = "solution"
	}
	filename := fmt.Sprintf("questions/%d_%s_%s%s", quesNumber, kind, util.GenerateRandomString(6), ext)

	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", util.WrapStore(err)
	}

	if err := s.Questions.SetImage(quesNumber, solution, url); err != nil {
		return "", util.WrapStore(err)
	}
	return url, nil
}
