package handler

import (
	"cm-go/internal/api/dto"
	"cm-go/internal/api/response"
	"cm-go/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchComments 搜索评论
// @Summary 搜索评论
// @Description 按关键词搜索评论内容和文章路径，ES 不可用时降级为数据库模糊查询
// @Tags 评论
// @Produce json
// @Param q query string true "搜索关键词"
// @Param limit query int false "返回条数" default(20)
// @Success 200 {object} response.Body{data=dto.SearchCommentData} "搜索成功"
// @Failure 400 {object} response.Body "请求参数无效"
// @Router /api/comments/search [get]
func (h *SearchHandler) SearchComments(c *gin.Context) {
	var req dto.SearchCommentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchComments(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, "Search comments", err)
		return
	}
	response.OK(c, "搜索成功", data)
}
