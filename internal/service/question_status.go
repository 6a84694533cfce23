package service

import (
	"sort"
	"strings"
	"tmua_guide_backend/internal/model"
	"tmua_guide_backend/internal/util"
)

// eligibility 状态筛选推导出的题号资格集。
// Unrestricted 表示未请求状态筛选，题库查询不加题号谓词；
// Empty 表示资格集确定为空，调用方必须直接返回空页，不得访问题库；
// IncludeIDs/ExcludeIDs 同时非空时语义为 OR（见 repository.QuestionFilter）。
type eligibility struct {
	Unrestricted bool
	Empty        bool
	IncludeIDs   []uint
	ExcludeIDs   []uint
}

// resolveStatuses 将作答历史折叠为 题号->状态 映射，并按请求的状态集推导资格集。
// attempts 必须按作答时间升序传入：同一题多次作答时，最近一次作答决定状态，
// 后来的错误作答会覆盖先前的正确作答。
func resolveStatuses(attempts []model.Attempt, requested []model.AttemptStatus) (map[uint]model.AttemptStatus, eligibility) {
	statusBy := make(map[uint]model.AttemptStatus, len(attempts))
	for _, a := range attempts {
		if a.IsCorrect {
			statusBy[a.QuestionID] = model.StatusCorrect
		} else {
			statusBy[a.QuestionID] = model.StatusIncorrect
		}
	}

	if len(requested) == 0 {
		return statusBy, eligibility{Unrestricted: true}
	}

	var wantCorrect, wantIncorrect, wantUnattempted bool
	for _, s := range requested {
		switch s {
		case model.StatusCorrect:
			wantCorrect = true
		case model.StatusIncorrect:
			wantIncorrect = true
		case model.StatusUnattempted:
			wantUnattempted = true
		}
	}

	filterIDs := make([]uint, 0, len(statusBy))
	attemptedIDs := make([]uint, 0, len(statusBy))
	for id, st := range statusBy {
		attemptedIDs = append(attemptedIDs, id)
		if (st == model.StatusCorrect && wantCorrect) || (st == model.StatusIncorrect && wantIncorrect) {
			filterIDs = append(filterIDs, id)
		}
	}
	sort.Slice(filterIDs, func(i, j int) bool { return filterIDs[i] < filterIDs[j] })
	sort.Slice(attemptedIDs, func(i, j int) bool { return attemptedIDs[i] < attemptedIDs[j] })

	switch {
	case wantUnattempted && len(filterIDs) > 0:
		// 命中集 或 未作答，单个谓词下推，避免两次题库查询
		return statusBy, eligibility{IncludeIDs: filterIDs, ExcludeIDs: attemptedIDs}
	case wantUnattempted:
		return statusBy, eligibility{ExcludeIDs: attemptedIDs}
	case len(filterIDs) > 0:
		return statusBy, eligibility{IncludeIDs: filterIDs}
	default:
		// 请求了 correct/incorrect 但一条都不命中
		return statusBy, eligibility{Empty: true}
	}
}

// ParseStatusFilter 解析 status 查询参数，支持重复参数和逗号分隔
func ParseStatusFilter(values []string) ([]model.AttemptStatus, error) {
	var statuses []model.AttemptStatus
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			s := model.AttemptStatus(part)
			if !model.ValidAttemptStatus(s) {
				return nil, util.InvalidArgument("invalid status %q", part)
			}
			statuses = append(statuses, s)
		}
	}
	return statuses, nil
}
