package controller

import (
	"strconv"
	"tmua_guide_backend/internal/service"
	"tmua_guide_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 获取题目列表
// @Description 按难度/专题/来源/题型/作答状态筛选，返回附带作答状态的分页题目
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认1"
// @Param size query int false "每页条数，默认20，最大100"
// @Param difficulty query string false "难度 Easy/Medium/Hard"
// @Param topic query string false "专题"
// @Param source query string false "来源"
// @Param q_type query int false "题型编码"
// @Param status query string false "作答状态 correct/incorrect/unattempted，可逗号分隔多选"
// @Success 200 {object} util.Response{data=service.QuestionPage}
// @Failure 400 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page := util.ParseIntDefault(ctx.Query("page"), 1)
	size := util.ParseIntDefault(ctx.Query("size"), 20)
	if page < 1 {
		util.BadRequest(ctx, "page must be >= 1")
		return
	}
	if size < 1 || size > 100 {
		util.BadRequest(ctx, "size must be in [1,100]")
		return
	}

	statuses, err := service.ParseStatusFilter(ctx.QueryArray("status"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	filter := service.ListFilter{
		Difficulty: ctx.Query("difficulty"),
		Topic:      ctx.Query("topic"),
		Source:     ctx.Query("source"),
		Statuses:   statuses,
	}
	if raw := ctx.Query("q_type"); raw != "" {
		qType, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid q_type")
			return
		}
		filter.QType = &qType
	}

	result, err := c.Service.ListQuestions(user.UserID, filter, page, size)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取可用筛选项
// @Description 返回题库中出现过的专题与来源，以及固定的难度档位
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.FilterOptions}
// @Router /api/questions/filters [get]
func (c *QuestionController) GetFilters(ctx *gin.Context) {
	opts, err := c.Service.GetFilterOptions(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, opts)
}

// @Summary 获取题目详情
// @Description 返回单道题目（含解析），不存在时返回404
// @Tags 题库
// @Produce json
// @Security ApiKeyAuth
// @Param quesNumber path int true "题号"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{quesNumber} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	quesNumber, err := strconv.Atoi(ctx.Param("quesNumber"))
	if err != nil || quesNumber < 1 {
		util.BadRequest(ctx, "invalid question number")
		return
	}

	question, err := c.Service.GetQuestion(uint(quesNumber))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, question)
}
