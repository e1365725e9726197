package animator

import (
	"fmt"
	"math"
)

// Validate 对配置进行启动检查
//
// 每项检查独立执行，一项失败不会跳过其余检查。
// 返回全部失败项；返回空切片表示配置合法。
// sinkBound 表示所选 Sink 类型对应的渲染目标是否存在。
func Validate[F any](cfg Config[F], sinkBound bool, deps Deps) []*ConfigError {
	var failures []*ConfigError

	// NaN 无法推进帧索引，与 0 同样视为未设置
	if cfg.FramesPerSecond == 0 || math.IsNaN(cfg.FramesPerSecond) {
		failures = append(failures, &ConfigError{
			Object: cfg.Name,
			Field:  "FramesPerSecond",
			Detail: "frames per second not set",
			Err:    ErrInvalidRate,
		})
	}

	if cfg.UseSound && (cfg.SoundHandle == "" || deps.Audio == nil) {
		failures = append(failures, &ConfigError{
			Object: cfg.Name,
			Field:  "SoundHandle",
			Detail: "sound handle or audio output not set",
			Err:    ErrMissingAudioResources,
		})
	}

	if !sinkBound || len(cfg.Frames) == 0 {
		failures = append(failures, &ConfigError{
			Object: cfg.Name,
			Field:  "Frames",
			Detail: fmt.Sprintf("no frames defined for sink: %s", cfg.Sink),
			Err:    ErrEmptyFrameSet,
		})
	}

	// 场景编号无条件校验
	if deps.Scenes == nil || !deps.Scenes.HasScene(cfg.TargetSceneID) {
		failures = append(failures, &ConfigError{
			Object: cfg.Name,
			Field:  "TargetSceneID",
			Detail: fmt.Sprintf("scene index does not exist: %d", cfg.TargetSceneID),
			Err:    ErrInvalidSceneTarget,
		})
	}

	return failures
}
