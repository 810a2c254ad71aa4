package dto

// CurrentUser 当前登录用户
type CurrentUser struct {
	Account     AccountInfo `json:"account"`
	Login       string      `json:"login"`
	Authorities []string    `json:"authorities"`
}

// OAuthCallbackQuery 第三方回调参数
type OAuthCallbackQuery struct {
	Code  string `form:"code"`
	State string `form:"state"`
	Error string `form:"error"`
}
