package controller

import (
	"tmua_guide_backend/internal/service"
	"tmua_guide_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary 记录一次作答
// @Tags 练习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AttemptRequest true "作答信息"
// @Success 201 {object} util.Response{data=model.Attempt}
// @Failure 400 {object} util.Response
// @Router /api/progress/attempt [post]
func (c *ProgressController) RecordAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.Service.RecordAttempt(user.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

// @Summary 作答统计
// @Description 指定时间范围内的作答总数、正确数与正确率
// @Tags 练习进度
// @Produce json
// @Security ApiKeyAuth
// @Param time_range query string false "today/week/month/all，默认all"
// @Success 200 {object} util.Response{data=service.UserStats}
// @Router /api/progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	timeRange, err := service.ParseTimeRange(ctx.Query("time_range"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	stats, err := c.Service.GetStats(user.UserID, timeRange)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 按专题统计
// @Tags 练习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TopicProgress}
// @Router /api/progress/topic-progress [get]
func (c *ProgressController) GetTopicProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.Service.GetTopicProgress(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 按难度统计
// @Tags 练习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=map[string]service.DifficultyProgress}
// @Router /api/progress/difficulty-progress [get]
func (c *ProgressController) GetDifficultyProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.Service.GetDifficultyProgress(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 最近作答
// @Tags 练习进度
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "条数，默认10，最大50"
// @Success 200 {object} util.Response{data=[]model.Attempt}
// @Router /api/progress/recent-attempts [get]
func (c *ProgressController) GetRecentAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := util.ParseIntDefault(ctx.Query("limit"), 10)
	attempts, err := c.Service.GetRecentAttempts(user.UserID, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 连续练习天数
// @Tags 练习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StreakStats}
// @Router /api/progress/daily-streak [get]
func (c *ProgressController) GetDailyStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.Service.GetDailyStreak(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}

// @Summary 逐日表现时间线
// @Tags 练习进度
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "天数，默认30，最大365"
// @Success 200 {object} util.Response{data=[]service.DailyPerformance}
// @Router /api/progress/performance-timeline [get]
func (c *ProgressController) GetPerformanceTimeline(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	days := util.ParseIntDefault(ctx.Query("days"), 30)
	timeline, err := c.Service.GetPerformanceTimeline(user.UserID, days)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, timeline)
}
