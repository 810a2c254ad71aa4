package dto

// SearchCommentRequest 评论搜索参数
type SearchCommentRequest struct {
	Q     string `form:"q" binding:"required,min=1,max=100"`
	Limit int    `form:"limit"`
}

// SearchCommentData 评论搜索结果
type SearchCommentData struct {
	Comments []CommentInfo `json:"comments"`
	Total    int64         `json:"total"`
	Source   string        `json:"source"` // es | db
}
