package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind 业务错误分类，handler 据此映射 HTTP 状态码
type Kind int

const (
	KindUnexpected Kind = iota
	KindMalformedIdentity
	KindNotFound
	KindConflict
	KindValidation
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindMalformedIdentity:
		return "malformed_identity"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unexpected"
	}
}

// Error 带分类的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 同一哨兵错误按指针比较，包装出来的错误按 Kind+Message 比较
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrMalformedIdentity         = newError(KindMalformedIdentity, "第三方用户信息缺少有效的用户ID")
	ErrAccountNotFound           = newError(KindNotFound, "用户不存在")
	ErrCommentNotFound           = newError(KindNotFound, "评论不存在")
	ErrLikeNotFound              = newError(KindNotFound, "点赞记录不存在")
	ErrDuplicateExternalIdentity = newError(KindConflict, "该第三方账号已绑定用户")
	ErrAlreadyLiked              = newError(KindConflict, "已经点赞过该评论")
	ErrCommentForbidden          = newError(KindForbidden, "该用户没有评论权限")
	ErrInvalidTimeRange          = newError(KindValidation, "开始时间不能晚于结束时间")
	ErrInvalidRole               = newError(KindValidation, "无效的用户角色")
	ErrUnauthorized              = newError(KindUnauthorized, "未登录或登录已过期")
	ErrLoginStateNotFound        = newError(KindUnauthorized, "登录状态无效或已过期")
)

// unexpected 包装存储层等非预期错误
func unexpected(op string, err error) error {
	if err == nil {
		return nil
	}
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}
	return &Error{Kind: KindUnexpected, Message: op, Err: err}
}

// notFoundOr gorm 记录不存在转换为 sentinel，其余按非预期错误处理
func notFoundOr(sentinel *Error, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return unexpected(op, err)
}

// KindOf 返回错误分类，非 *Error 一律视为 Unexpected
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnexpected
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
