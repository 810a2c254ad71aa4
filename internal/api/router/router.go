package router

import (
	"cm-go/internal/api/handler"
	"cm-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	accountHandler *handler.AccountHandler,
	searchHandler *handler.SearchHandler,
) {
	r.GET("/healthz", healthHandler.Check)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- 第三方登录 ---
	r.GET("/oauth2/authorization/github", authHandler.Authorize)
	r.GET("/login/oauth2/code/github", authHandler.Callback)

	api := r.Group("/api")

	auth := api.Group("/auth", middleware.AuthRequired())
	{
		auth.GET("/me", authHandler.Me)
		auth.POST("/logout", authHandler.Logout)
	}

	// --- 评论模块 ---
	comments := api.Group("/comments")
	{
		comments.GET("/article", commentHandler.ListByArticle)
		comments.GET("/search", searchHandler.SearchComments)
		comments.POST("", middleware.AuthRequired(), commentHandler.Create)
	}

	// --- 点赞模块 ---
	likes := api.Group("/comment-likes")
	{
		likes.GET("/comment/:comment_id", likeHandler.ListByComment)

		likesAuth := likes.Group("", middleware.AuthRequired())
		{
			likesAuth.POST("/:comment_id", likeHandler.Like)
			likesAuth.PATCH("/:comment_id/cancel", likeHandler.Unlike)
		}
	}

	// --- 管理后台 ---
	admin := r.Group("/admin/api", middleware.AuthRequired(), middleware.AdminRequired())

	users := admin.Group("/users")
	{
		users.GET("", accountHandler.List)
		users.POST("", accountHandler.Create)
		users.GET("/:id", accountHandler.Get)
		users.PUT("/:id", accountHandler.UpdatePermission)
		users.DELETE("/:id", accountHandler.Delete)
		users.GET("/github/:external_id", accountHandler.GetByExternalID)
		users.GET("/email/:email", accountHandler.GetByEmail)
		users.GET("/username/:username", accountHandler.GetByUsername)
	}

	adminComments := admin.Group("/comments")
	{
		adminComments.GET("", commentHandler.ListAll)
		adminComments.GET("/user/:id", commentHandler.ListByAccount)
		adminComments.GET("/username/:username", commentHandler.ListByUsername)
		adminComments.GET("/article", commentHandler.ListByArticle)
		adminComments.GET("/time", commentHandler.ListByTimeRange)
		adminComments.DELETE("/article", commentHandler.DeleteByArticle)
		adminComments.DELETE("/:id", commentHandler.Delete)
	}

	adminLikes := admin.Group("/comment-likes")
	{
		adminLikes.GET("/comment/:comment_id", likeHandler.ListByComment)
		adminLikes.GET("/username/:username", likeHandler.ListByUsername)
		adminLikes.DELETE("/user/:id", likeHandler.DeleteByAccount)
		adminLikes.DELETE("/comment/:comment_id", likeHandler.DeleteByComment)
	}
}
