package animator

import (
	"errors"
	"fmt"
)

// 配置错误分类，均在启动时检测，不会在 Tick 中出现
var (
	ErrInvalidRate           = errors.New("invalid frame rate")
	ErrMissingAudioResources = errors.New("missing audio resources")
	ErrEmptyFrameSet         = errors.New("empty frame set")
	ErrInvalidSceneTarget    = errors.New("invalid scene target")
)

// ConfigError 描述单个失败的启动检查
type ConfigError struct {
	Object string // 对象名称
	Field  string // 无效的配置字段
	Detail string // 人类可读的说明
	Err    error  // 分类错误（上面的 Err* 之一）
}

// Error 实现 error 接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("'%s' has invalid values in %s: %s", e.Object, e.Field, e.Detail)
}

// Unwrap 返回分类错误，便于 errors.Is 判断
func (e *ConfigError) Unwrap() error {
	return e.Err
}
