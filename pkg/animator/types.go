// Package animator 实现与渲染器无关的定帧率序列帧动画驱动
//
// 核心只负责帧索引计算与状态转换，绘制、场景加载、音频播放和诊断输出
// 全部通过接口交给宿主实现。
package animator

// SinkType 帧输出目标类型（配置时确定，生命周期内不变）
type SinkType int

const (
	// SinkSprite 精灵渲染器
	SinkSprite SinkType = iota
	// SinkRawImage UI 原始图片
	SinkRawImage
	// SinkMaterial 材质主纹理
	SinkMaterial
)

// String 返回 SinkType 的配置名称
func (t SinkType) String() string {
	switch t {
	case SinkSprite:
		return "sprite"
	case SinkRawImage:
		return "raw_image"
	case SinkMaterial:
		return "material"
	default:
		return "unknown"
	}
}

// ParseSinkType 将配置字符串解析为 SinkType
func ParseSinkType(name string) (SinkType, bool) {
	switch name {
	case "sprite", "":
		return SinkSprite, true
	case "raw_image", "image":
		return SinkRawImage, true
	case "material":
		return SinkMaterial, true
	default:
		return SinkSprite, false
	}
}

// FrameSink 接收当前应显示帧的渲染目标
type FrameSink[F any] interface {
	Display(frame F)
}

// SceneTransitioner 异步场景切换能力（发出请求即返回，不等待完成）
type SceneTransitioner interface {
	RequestTransition(sceneID int)
}

// SceneResolver 判断场景编号是否存在
type SceneResolver interface {
	HasScene(sceneID int) bool
}

// SceneHost 同时提供场景解析和切换
type SceneHost interface {
	SceneResolver
	SceneTransitioner
}

// SoundPlayer 音频输出目标
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// Diagnostics 宿主的诊断输出通道
type Diagnostics interface {
	LogError(message, context string)
}

// Config 动画器配置，初始化时校验一次
type Config[F any] struct {
	Name                string // 所属对象名称（用于诊断信息）
	Sink                SinkType
	Frames              []F
	FramesPerSecond     float64
	Loop                bool
	AutoStart           bool
	SwitchSceneOnFinish bool
	TargetSceneID       int
	UseSound            bool
	SoundHandle         string
	// ResetPhaseOnStart 为 true 时以启动时刻作为时钟零点，首帧总是第 0 帧；
	// 为 false 时直接使用全局动画时钟，多个实例保持同步
	ResetPhaseOnStart bool
}

// Deps 动画器依赖的外部协作者，任一字段都可以为 nil
type Deps struct {
	Scenes      SceneHost
	Audio       SoundPlayer
	Diagnostics Diagnostics
}

// State 动画器运行时状态
type State struct {
	CurrentFrameIndex   int
	IsRunning           bool
	HasFinishedOnce     bool
	HasTransitionedOnce bool
}

// Phase 状态机阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}
