package handler

import (
	"cm-go/internal/api/dto"
	"cm-go/internal/api/middleware"
	"cm-go/internal/api/response"
	"cm-go/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like 点赞评论
// @Summary 点赞评论
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Body{data=dto.LikeResult} "点赞成功"
// @Failure 404 {object} response.Body "评论不存在"
// @Failure 409 {object} response.Body "重复点赞"
// @Router /api/comment-likes/{comment_id} [post]
func (h *LikeHandler) Like(c *gin.Context) {
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	accountID, _ := middleware.GetCurrentAccountID(c)

	result, err := h.likeService.Like(c.Request.Context(), accountID, commentID)
	if err != nil {
		handleServiceError(c, "Like comment", err)
		return
	}
	response.OK(c, "点赞成功", result)
}

// Unlike 取消点赞
// @Summary 取消点赞
// @Tags 点赞
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Body{data=dto.LikeResult} "取消成功"
// @Failure 404 {object} response.Body "点赞记录不存在"
// @Router /api/comment-likes/{comment_id}/cancel [patch]
func (h *LikeHandler) Unlike(c *gin.Context) {
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	accountID, _ := middleware.GetCurrentAccountID(c)

	result, err := h.likeService.Unlike(c.Request.Context(), accountID, commentID)
	if err != nil {
		handleServiceError(c, "Unlike comment", err)
		return
	}
	response.OK(c, "取消点赞成功", result)
}

// ListByComment 评论的点赞列表
// @Summary 评论的点赞列表
// @Tags 点赞
// @Produce json
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Body{data=[]dto.CommentLikeInfo} "获取成功"
// @Router /api/comment-likes/comment/{comment_id} [get]
func (h *LikeHandler) ListByComment(c *gin.Context) {
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	items, err := h.likeService.ListLikesForComment(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, "List comment likes", err)
		return
	}
	response.OK(c, "获取点赞列表成功", items)
}

// ListByUsername 用户的点赞列表（管理员）
// @Summary 用户的点赞列表
// @Tags 点赞管理
// @Produce json
// @Security BearerAuth
// @Param username path string true "登录名"
// @Success 200 {object} response.Body{data=[]dto.CommentLikeInfo} "获取成功"
// @Router /admin/api/comment-likes/username/{username} [get]
func (h *LikeHandler) ListByUsername(c *gin.Context) {
	items, err := h.likeService.ListLikesForAccount(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, "List account likes", err)
		return
	}
	response.OK(c, "获取点赞列表成功", items)
}

// DeleteByAccount 删除用户的全部点赞（管理员）
// @Summary 删除用户的全部点赞
// @Tags 点赞管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Body{data=dto.LikeDeleteResult} "删除成功"
// @Router /admin/api/comment-likes/user/{id} [delete]
func (h *LikeHandler) DeleteByAccount(c *gin.Context) {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	n, err := h.likeService.CascadeDeleteForAccount(c.Request.Context(), accountID)
	if err != nil {
		handleServiceError(c, "Delete account likes", err)
		return
	}
	response.OK(c, "删除点赞成功", &dto.LikeDeleteResult{Deleted: n})
}

// DeleteByComment 删除评论的全部点赞（管理员）
// @Summary 删除评论的全部点赞
// @Tags 点赞管理
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Body{data=dto.LikeDeleteResult} "删除成功"
// @Router /admin/api/comment-likes/comment/{comment_id} [delete]
func (h *LikeHandler) DeleteByComment(c *gin.Context) {
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.BadRequest(c, "无效的评论ID")
		return
	}

	n, err := h.likeService.CascadeDeleteForComment(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, "Delete comment likes", err)
		return
	}
	response.OK(c, "删除点赞成功", &dto.LikeDeleteResult{Deleted: n})
}
