package controller

import (
	"tmua_guide_backend/internal/service"
	"tmua_guide_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService    *service.AdminService
	QuestionService *service.QuestionService
}

func NewAdminController(adminService *service.AdminService, questionService *service.QuestionService) *AdminController {
	return &AdminController{
		AdminService:    adminService,
		QuestionService: questionService,
	}
}

// @Summary 用户列表及作答概况
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AdminUserStats}
// @Router /api/admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	stats, err := c.AdminService.ListUserStats()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 修改用户角色或禁用状态
// @Tags 管理端
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Param body body service.UserUpdateRequest true "修改内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	var req service.UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AdminService.UpdateUser(ctx.Param("id"), req); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "User updated successfully"})
}

// @Summary 删除用户及其作答数据
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.AdminService.DeleteUser(ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "User and associated data deleted successfully"})
}

// @Summary 系统总体统计
// @Tags 管理端
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.SystemStats}
// @Router /api/admin/stats/system [get]
func (c *AdminController) GetSystemStats(ctx *gin.Context) {
	stats, err := c.AdminService.GetSystemStats()
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 批量导入题目
// @Description 上传CSV文件批量导入，存在行级错误时整体不入库
// @Tags 管理端
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV文件"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response
// @Router /api/admin/questions/import [post]
func (c *AdminController) ImportQuestions(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	defer src.Close()

	result, err := c.AdminService.ImportQuestions(src)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	if result.ImportedCount > 0 {
		c.QuestionService.InvalidateFilterOptions(ctx.Request.Context())
	}

	util.Success(ctx, result)
}

// @Summary 上传题目配图
// @Description 上传题面图或解析图（type=solution时为解析图）并关联到题目
// @Tags 管理端
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param quesNumber path int true "题号"
// @Param type query string false "image/solution，默认image"
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{quesNumber}/image [post]
func (c *AdminController) UploadQuestionImage(ctx *gin.Context) {
	quesNumber := util.MustParseUint(ctx.Param("quesNumber"))
	if quesNumber == 0 {
		util.BadRequest(ctx, "invalid question number")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	solution := ctx.Query("type") == "solution"
	url, err := c.AdminService.AttachQuestionImage(ctx.Request.Context(), quesNumber, solution, file)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
