package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 注册自定义校验规则，gin 默认校验器即 validator v10
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("articlepath", validateArticlePath)
}

// validateArticlePath 文章路径必须以 / 开头且不含空白
func validateArticlePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if !strings.HasPrefix(path, "/") {
		return false
	}
	return !strings.ContainsAny(path, " \t\r\n")
}
