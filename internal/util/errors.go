package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrInvalidArgument 业务参数校验失败，统一翻译为 400
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable 远端存储调用失败，统一翻译为 503 而不是笼统的 400
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidArgument 构造带说明的参数错误
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// WrapStore 将存储层错误归类为上游不可用
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
