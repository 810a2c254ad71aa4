package handler

import (
	"cm-go/internal/api/dto"
	"cm-go/internal/api/middleware"
	"cm-go/internal/api/response"
	"cm-go/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create 发表评论
// @Summary 发表评论
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CommentCreateRequest true "评论内容"
// @Success 201 {object} response.Body{data=dto.CommentInfo} "发表成功"
// @Failure 400 {object} response.Body "请求参数无效"
// @Failure 401 {object} response.Body "未登录"
// @Failure 403 {object} response.Body "没有评论权限"
// @Router /api/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	accountID, _ := middleware.GetCurrentAccountID(c)

	info, err := h.commentService.Create(c.Request.Context(), accountID, req.ArticlePath, req.Content)
	if err != nil {
		handleServiceError(c, "Create comment", err)
		return
	}

	response.Created(c, "发表评论成功", info)
}

// ListByArticle 获取文章评论
// @Summary 获取文章评论
// @Tags 评论
// @Produce json
// @Param path query string true "文章路径"
// @Success 200 {object} response.Body{data=[]dto.CommentInfo} "获取成功"
// @Router /api/comments/article [get]
func (h *CommentHandler) ListByArticle(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.BadRequest(c, "缺少文章路径")
		return
	}

	items, err := h.commentService.ListByArticle(c.Request.Context(), path)
	if err != nil {
		handleServiceError(c, "List article comments", err)
		return
	}

	response.OK(c, "获取评论列表成功", items)
}

// ListAll 获取全部评论（管理员）
// @Summary 获取全部评论
// @Tags 评论管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body{data=[]dto.CommentInfo} "获取成功"
// @Router /admin/api/comments [get]
func (h *CommentHandler) ListAll(c *gin.Context) {
	items, err := h.commentService.ListAll(c.Request.Context())
	if err != nil {
		handleServiceError(c, "List comments", err)
		return
	}
	response.OK(c, "获取评论列表成功", items)
}

// ListByAccount 获取用户评论（管理员）
// @Summary 获取用户评论
// @Tags 评论管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Body{data=[]dto.CommentInfo} "获取成功"
// @Router /admin/api/comments/user/{id} [get]
func (h *CommentHandler) ListByAccount(c *gin.Context) {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	items, err := h.commentService.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		handleServiceError(c, "List account comments", err)
		return
	}
	response.OK(c, "获取评论列表成功", items)
}

// ListByUsername 按登录名获取评论（管理员）
// @Summary 按登录名获取评论
// @Tags 评论管理
// @Produce json
// @Security BearerAuth
// @Param username path string true "登录名"
// @Success 200 {object} response.Body{data=[]dto.CommentInfo} "获取成功"
// @Router /admin/api/comments/username/{username} [get]
func (h *CommentHandler) ListByUsername(c *gin.Context) {
	items, err := h.commentService.ListByHandle(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, "List comments by username", err)
		return
	}
	response.OK(c, "获取评论列表成功", items)
}

// ListByTimeRange 按时间区间获取评论（管理员）
// @Summary 按时间区间获取评论
// @Tags 评论管理
// @Produce json
// @Security BearerAuth
// @Param start query string true "开始时间 RFC3339"
// @Param end query string true "结束时间 RFC3339"
// @Success 200 {object} response.Body{data=[]dto.CommentInfo} "获取成功"
// @Failure 400 {object} response.Body "时间格式错误"
// @Router /admin/api/comments/time [get]
func (h *CommentHandler) ListByTimeRange(c *gin.Context) {
	var q dto.CommentTimeRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	items, err := h.commentService.ListByTimeRange(c.Request.Context(), q.Start, q.End)
	if err != nil {
		handleServiceError(c, "List comments by time", err)
		return
	}
	response.OK(c, "获取评论列表成功", items)
}

// Delete 删除评论及其点赞（管理员）
// @Summary 删除评论
// @Tags 评论管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} response.Body{data=dto.CommentDeleteResult} "删除成功"
// @Failure 404 {object} response.Body "评论不存在"
// @Router /admin/api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	result, err := h.commentService.DeleteWithLikes(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, "Delete comment", err)
		return
	}
	response.OK(c, "删除评论成功", result)
}

// DeleteByArticle 删除文章下全部评论（管理员）
// @Summary 删除文章评论
// @Tags 评论管理
// @Produce json
// @Security BearerAuth
// @Param path query string true "文章路径"
// @Success 200 {object} response.Body{data=dto.ArticleDeleteResult} "删除成功"
// @Router /admin/api/comments/article [delete]
func (h *CommentHandler) DeleteByArticle(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.BadRequest(c, "缺少文章路径")
		return
	}

	result, err := h.commentService.DeleteByArticle(c.Request.Context(), path)
	if err != nil {
		handleServiceError(c, "Delete article comments", err)
		return
	}
	response.OK(c, "删除文章评论成功", result)
}
