package handler

import (
	"strconv"

	"cm-go/internal/api/dto"
	"cm-go/internal/api/response"
	"cm-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler 账号管理（管理员）
type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List 获取全部用户
// @Summary 获取全部用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body{data=[]dto.AccountInfo} "获取成功"
// @Router /admin/api/users [get]
func (h *AccountHandler) List(c *gin.Context) {
	items, err := h.accountService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, "List accounts", err)
		return
	}
	response.OK(c, "获取用户列表成功", items)
}

// Get 获取用户
// @Summary 获取用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Body{data=dto.AccountInfo} "获取成功"
// @Failure 404 {object} response.Body "用户不存在"
// @Router /admin/api/users/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	info, err := h.accountService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, "Get account", err)
		return
	}
	response.OK(c, "获取用户成功", info)
}

// GetByExternalID 按 GitHub ID 获取用户
// @Summary 按 GitHub ID 获取用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param external_id path int true "GitHub 用户ID"
// @Success 200 {object} response.Body{data=dto.AccountInfo} "获取成功"
// @Failure 404 {object} response.Body "用户不存在"
// @Router /admin/api/users/github/{external_id} [get]
func (h *AccountHandler) GetByExternalID(c *gin.Context) {
	externalID, err := strconv.ParseInt(c.Param("external_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的 GitHub ID")
		return
	}

	info, err := h.accountService.GetByExternalID(c.Request.Context(), externalID)
	if err != nil {
		handleServiceError(c, "Get account by external id", err)
		return
	}
	response.OK(c, "获取用户成功", info)
}

// GetByEmail 按邮箱获取用户
// @Summary 按邮箱获取用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param email path string true "邮箱"
// @Success 200 {object} response.Body{data=dto.AccountInfo} "获取成功"
// @Failure 404 {object} response.Body "用户不存在"
// @Router /admin/api/users/email/{email} [get]
func (h *AccountHandler) GetByEmail(c *gin.Context) {
	info, err := h.accountService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleServiceError(c, "Get account by email", err)
		return
	}
	response.OK(c, "获取用户成功", info)
}

// GetByUsername 按登录名获取用户
// @Summary 按登录名获取用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param username path string true "登录名"
// @Success 200 {object} response.Body{data=dto.AccountInfo} "获取成功"
// @Failure 404 {object} response.Body "用户不存在"
// @Router /admin/api/users/username/{username} [get]
func (h *AccountHandler) GetByUsername(c *gin.Context) {
	info, err := h.accountService.GetByHandle(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleServiceError(c, "Get account by username", err)
		return
	}
	response.OK(c, "获取用户成功", info)
}

// Create 创建用户
// @Summary 创建用户
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AccountCreateRequest true "用户信息"
// @Success 201 {object} response.Body{data=dto.AccountInfo} "创建成功"
// @Failure 409 {object} response.Body "GitHub ID 已绑定"
// @Router /admin/api/users [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.accountService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, "Create account", err)
		return
	}
	response.Created(c, "创建用户成功", info)
}

// UpdatePermission 修改评论权限和角色
// @Summary 修改用户权限
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.AccountPermissionRequest true "权限"
// @Success 200 {object} response.Body{data=dto.AccountInfo} "修改成功"
// @Failure 404 {object} response.Body "用户不存在"
// @Router /admin/api/users/{id} [put]
func (h *AccountHandler) UpdatePermission(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	var req dto.AccountPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.accountService.UpdatePermission(c.Request.Context(), id, req.CommentEnabled, req.Role)
	if err != nil {
		handleServiceError(c, "Update account permission", err)
		return
	}
	response.OK(c, "修改用户权限成功", info)
}

// Delete 级联删除用户
// @Summary 删除用户
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} response.Body{data=dto.AccountDeleteResult} "删除成功"
// @Failure 404 {object} response.Body "用户不存在"
// @Router /admin/api/users/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	result, err := h.accountService.Delete(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, "Delete account", err)
		return
	}
	response.OK(c, "删除用户成功", result)
}
