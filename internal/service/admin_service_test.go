package service

import (
	"errors"
	"testing"
	"time"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/repository"
	"tmua_guide_backend/internal/util"

	"gorm.io/gorm"
)

type fakeUserAdmin struct {
	users   []model.User
	updated *model.User
	opLog   *[]string
}

func (f *fakeUserAdmin) FindAll() ([]model.User, error) {
	return f.users, nil
}

func (f *fakeUserAdmin) FindByID(id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			result := u
			return &result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserAdmin) Update(user *model.User) error {
	f.updated = user
	return nil
}

func (f *fakeUserAdmin) Delete(id string) error {
	if f.opLog != nil {
		*f.opLog = append(*f.opLog, "delete user "+id)
	}
	return nil
}

func (f *fakeUserAdmin) Count() (int64, error) {
	return int64(len(f.users)), nil
}

type fakeProgressAdmin struct {
	attempts []model.Attempt
	opLog    *[]string
}

func (f *fakeProgressAdmin) FindAll() ([]model.Attempt, error) {
	return f.attempts, nil
}

func (f *fakeProgressAdmin) DeleteByUser(userID string) error {
	if f.opLog != nil {
		*f.opLog = append(*f.opLog, "delete progress "+userID)
	}
	return nil
}

type fakeQuestionAdmin struct {
	questions []model.Question
	inserted  []model.Question
	bulkCalls int
}

func (f *fakeQuestionAdmin) Count(flt repository.QuestionFilter) (int64, error) {
	return int64(len(f.questions)), nil
}

func (f *fakeQuestionAdmin) FindByNumber(quesNumber uint) (*model.Question, error) {
	for _, q := range f.questions {
		if q.QuesNumber == quesNumber {
			result := q
			return &result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionAdmin) BulkInsert(questions []model.Question) error {
	f.bulkCalls++
	f.inserted = append(f.inserted, questions...)
	return nil
}

func (f *fakeQuestionAdmin) SetImage(quesNumber uint, solution bool, url string) error {
	return nil
}

func user(id, email string, role model.UserRole) model.User {
	u := model.User{Name: "User " + id, Email: email, Role: role}
	u.ID = id
	return u
}

func TestListUserStats(t *testing.T) {
	now := time.Now()
	svc := NewAdminService(
		&fakeUserAdmin{users: []model.User{
			user("u1", "a@example.com", model.Student),
			user("u2", "b@example.com", model.Teacher),
		}},
		&fakeProgressAdmin{attempts: []model.Attempt{
			{UserID: "u1", QuestionID: 1, IsCorrect: true, AttemptedAt: now.Add(-2 * time.Hour)},
			{UserID: "u1", QuestionID: 2, IsCorrect: false, AttemptedAt: now.Add(-time.Hour)},
		}},
		&fakeQuestionAdmin{},
		nil,
	)

	stats, err := svc.ListUserStats()
	if err != nil {
		t.Fatalf("ListUserStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].TotalAttempts != 2 || stats[0].CorrectAttempts != 1 {
		t.Errorf("u1 = %+v", stats[0])
	}
	if stats[0].LastActive == nil || !stats[0].LastActive.Equal(now.Add(-time.Hour)) {
		t.Errorf("LastActive = %v", stats[0].LastActive)
	}
	// 从未作答的用户也在列表中，统计为零值
	if stats[1].TotalAttempts != 0 || stats[1].LastActive != nil {
		t.Errorf("u2 = %+v", stats[1])
	}
}

func TestUpdateUser(t *testing.T) {
	users := &fakeUserAdmin{users: []model.User{user("u1", "a@example.com", model.Student)}}
	svc := NewAdminService(users, &fakeProgressAdmin{}, &fakeQuestionAdmin{}, nil)

	role := model.Teacher
	disabled := true
	if err := svc.UpdateUser("u1", UserUpdateRequest{Role: &role, Disabled: &disabled}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if users.updated == nil || users.updated.Role != model.Teacher || !users.updated.Disabled {
		t.Errorf("updated = %+v", users.updated)
	}

	bad := model.UserRole("superuser")
	if err := svc.UpdateUser("u1", UserUpdateRequest{Role: &bad}); !errors.Is(err, util.ErrInvalidArgument) {
		t.Errorf("非法角色应返回 ErrInvalidArgument, got %v", err)
	}
	if err := svc.UpdateUser("missing", UserUpdateRequest{Disabled: &disabled}); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUserRemovesProgressFirst(t *testing.T) {
	var opLog []string
	users := &fakeUserAdmin{users: []model.User{user("u1", "a@example.com", model.Student)}, opLog: &opLog}
	progress := &fakeProgressAdmin{opLog: &opLog}
	svc := NewAdminService(users, progress, &fakeQuestionAdmin{}, nil)

	if err := svc.DeleteUser("u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(opLog) != 2 || opLog[0] != "delete progress u1" || opLog[1] != "delete user u1" {
		t.Errorf("opLog = %v", opLog)
	}

	if err := svc.DeleteUser("missing"); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestGetSystemStats(t *testing.T) {
	now := time.Now()
	svc := NewAdminService(
		&fakeUserAdmin{users: []model.User{
			user("u1", "a@example.com", model.Student),
			user("u2", "b@example.com", model.Student),
		}},
		&fakeProgressAdmin{attempts: []model.Attempt{
			{UserID: "u1", QuestionID: 1, AttemptedAt: now.Add(-time.Hour)},
			{UserID: "u1", QuestionID: 2, AttemptedAt: now.Add(-2 * time.Hour)},
			{UserID: "u2", QuestionID: 1, AttemptedAt: now.AddDate(0, 0, -10)},
		}},
		&fakeQuestionAdmin{questions: []model.Question{question(1, "Algebra", "Easy")}},
		nil,
	)

	stats, err := svc.GetSystemStats()
	if err != nil {
		t.Fatalf("GetSystemStats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.TotalQuestions != 1 || stats.TotalAttempts != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.WeeklyActiveUsers != 1 || stats.WeeklyAttempts != 2 {
		t.Errorf("weekly: %+v", stats)
	}
}
