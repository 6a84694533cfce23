package service

import (
	"errors"
	"reflect"
	"testing"
	"time"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/util"
)

func attempt(quesNumber uint, correct bool, offset time.Duration) model.Attempt {
	return model.Attempt{
		UserID:      "u1",
		QuestionID:  quesNumber,
		IsCorrect:   correct,
		AttemptedAt: time.Now().Add(offset),
	}
}

func TestResolveStatusesLastAttemptWins(t *testing.T) {
	// 历史按时间升序：先答对又答错，状态应为 incorrect
	attempts := []model.Attempt{
		attempt(3, true, -2*time.Hour),
		attempt(3, false, -1*time.Hour),
		attempt(7, false, -3*time.Hour),
		attempt(7, true, -30*time.Minute),
	}

	statusBy, elig := resolveStatuses(attempts, nil)
	if !elig.Unrestricted {
		t.Fatal("未请求状态筛选时资格集应为 Unrestricted")
	}
	if statusBy[3] != model.StatusIncorrect {
		t.Errorf("题3状态 = %s, want incorrect", statusBy[3])
	}
	if statusBy[7] != model.StatusCorrect {
		t.Errorf("题7状态 = %s, want correct", statusBy[7])
	}
}

func TestResolveStatusesUnattemptedOnly(t *testing.T) {
	attempts := []model.Attempt{
		attempt(1, true, -time.Hour),
		attempt(2, false, -time.Minute),
	}

	_, elig := resolveStatuses(attempts, []model.AttemptStatus{model.StatusUnattempted})
	if elig.Empty || elig.Unrestricted {
		t.Fatalf("资格集分类错误: %+v", elig)
	}
	if len(elig.IncludeIDs) != 0 {
		t.Errorf("IncludeIDs = %v, want empty", elig.IncludeIDs)
	}
	if !reflect.DeepEqual(elig.ExcludeIDs, []uint{1, 2}) {
		t.Errorf("ExcludeIDs = %v, want [1 2]", elig.ExcludeIDs)
	}
}

func TestResolveStatusesCorrectWithUnattempted(t *testing.T) {
	attempts := []model.Attempt{
		attempt(2, true, -3*time.Hour),
		attempt(4, false, -2*time.Hour),
		attempt(5, true, -time.Hour),
	}

	_, elig := resolveStatuses(attempts, []model.AttemptStatus{model.StatusCorrect, model.StatusUnattempted})
	if !reflect.DeepEqual(elig.IncludeIDs, []uint{2, 5}) {
		t.Errorf("IncludeIDs = %v, want [2 5]", elig.IncludeIDs)
	}
	if !reflect.DeepEqual(elig.ExcludeIDs, []uint{2, 4, 5}) {
		t.Errorf("ExcludeIDs = %v, want [2 4 5]", elig.ExcludeIDs)
	}
}

func TestResolveStatusesCorrectOnly(t *testing.T) {
	attempts := []model.Attempt{
		attempt(2, true, -2*time.Hour),
		attempt(4, false, -time.Hour),
	}

	_, elig := resolveStatuses(attempts, []model.AttemptStatus{model.StatusCorrect})
	if !reflect.DeepEqual(elig.IncludeIDs, []uint{2}) {
		t.Errorf("IncludeIDs = %v, want [2]", elig.IncludeIDs)
	}
	if len(elig.ExcludeIDs) != 0 {
		t.Errorf("ExcludeIDs = %v, want empty", elig.ExcludeIDs)
	}
}

func TestResolveStatusesEmptyEligibility(t *testing.T) {
	// 请求 incorrect 但用户只有答对记录：资格集确定为空
	attempts := []model.Attempt{
		attempt(1, true, -time.Hour),
	}

	_, elig := resolveStatuses(attempts, []model.AttemptStatus{model.StatusIncorrect})
	if !elig.Empty {
		t.Fatalf("资格集应为 Empty: %+v", elig)
	}

	// 无任何作答时请求 correct 同样为空
	_, elig = resolveStatuses(nil, []model.AttemptStatus{model.StatusCorrect})
	if !elig.Empty {
		t.Fatalf("资格集应为 Empty: %+v", elig)
	}
}

func TestParseStatusFilter(t *testing.T) {
	statuses, err := ParseStatusFilter([]string{"correct", "incorrect,unattempted"})
	if err != nil {
		t.Fatalf("ParseStatusFilter: %v", err)
	}
	want := []model.AttemptStatus{model.StatusCorrect, model.StatusIncorrect, model.StatusUnattempted}
	if !reflect.DeepEqual(statuses, want) {
		t.Errorf("statuses = %v, want %v", statuses, want)
	}

	if _, err := ParseStatusFilter([]string{"solved"}); !errors.Is(err, util.ErrInvalidArgument) {
		t.Errorf("非法状态值应返回 ErrInvalidArgument, got %v", err)
	}

	statuses, err = ParseStatusFilter([]string{" ", ""})
	if err != nil || len(statuses) != 0 {
		t.Errorf("空白参数应解析为空集, got %v, %v", statuses, err)
	}
}
