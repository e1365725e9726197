package animator

import (
	"errors"
	"log"
)

// FrameAnimator 定帧率序列帧动画驱动
//
// 状态机：Idle → Running → Finished（仅非循环动画可达，终止态）。
// 循环动画停留在 Running 中无限循环。
// 所有方法都应在宿主的主更新线程上调用。
type FrameAnimator[F any] struct {
	cfg  Config[F]
	sink FrameSink[F]
	deps Deps

	state State
	phase Phase

	initialized bool
	enabled     bool // 启动校验失败后永久为 false

	hasDisplayed bool    // 本轮运行是否已推送过帧
	anchored     bool    // 是否已记录时钟零点
	startTime    float64 // ResetPhaseOnStart 时的时钟零点
}

// New 创建动画器，需调用 Init 完成校验后才能运行
//
// sink 为 nil 表示所选类型的渲染目标不存在，Init 将报告 ErrEmptyFrameSet。
func New[F any](cfg Config[F], sink FrameSink[F], deps Deps) *FrameAnimator[F] {
	if deps.Diagnostics == nil {
		deps.Diagnostics = LogDiagnostics{}
	}
	return &FrameAnimator[F]{
		cfg:  cfg,
		sink: sink,
		deps: deps,
	}
}

// Init 校验配置并重置状态
//
// 每个失败的检查输出一条诊断信息；任一检查失败则动画器被永久禁用，
// 返回所有失败项 join 后的错误。AutoStart 为 true 时直接进入 Running。
func (a *FrameAnimator[F]) Init() error {
	a.initialized = true
	// 场景切换标记在整个生命周期内保留，重复 Init 也不会重新允许切换
	a.state = State{HasTransitionedOnce: a.state.HasTransitionedOnce}
	a.phase = PhaseIdle
	a.hasDisplayed = false
	a.anchored = false

	failures := Validate(a.cfg, a.sink != nil, a.deps)
	if len(failures) > 0 {
		errs := make([]error, 0, len(failures))
		for _, f := range failures {
			a.deps.Diagnostics.LogError(f.Error(), a.cfg.Name)
			errs = append(errs, f)
		}
		a.enabled = false
		return errors.Join(errs...)
	}

	a.enabled = true
	if a.cfg.AutoStart {
		a.Start()
	}
	return nil
}

// Start 外部启动信号：Idle → Running
//
// 只对本实例生效。未通过校验、已在运行或已结束时返回 false。
func (a *FrameAnimator[F]) Start() bool {
	if !a.enabled || a.phase != PhaseIdle {
		return false
	}

	a.phase = PhaseRunning
	a.state.IsRunning = true
	a.anchored = false

	log.Printf("[FrameAnimator] '%s' 开始播放 (帧数: %d, fps: %.2f, 循环: %v)",
		a.cfg.Name, len(a.cfg.Frames), a.cfg.FramesPerSecond, a.cfg.Loop)

	if a.cfg.UseSound && a.deps.Audio != nil {
		if !a.deps.Audio.PlaySound(a.cfg.SoundHandle) {
			log.Printf("[FrameAnimator] Warning: '%s' 无法播放音效 %s", a.cfg.Name, a.cfg.SoundHandle)
		}
	}
	return true
}

// Tick 每个宿主 tick 调用一次
//
// t 为宿主提供的单调动画时钟（秒）。非 Running 状态下为空操作。
func (a *FrameAnimator[F]) Tick(t float64) {
	if !a.enabled || a.phase != PhaseRunning {
		return
	}

	elapsed := t
	if a.cfg.ResetPhaseOnStart {
		if !a.anchored {
			a.startTime = t
			a.anchored = true
		}
		elapsed = t - a.startTime
	}

	n := len(a.cfg.Frames)
	last := n - 1
	index := FrameIndex(elapsed, a.cfg.FramesPerSecond, n)

	a.show(index)

	// 非循环动画在推送最后一帧后进入终止态
	finished := !a.cfg.Loop && index == last
	if finished {
		a.state.HasFinishedOnce = true
	}

	if index == last && a.cfg.SwitchSceneOnFinish && !a.state.HasTransitionedOnce {
		a.state.HasTransitionedOnce = true
		log.Printf("[FrameAnimator] '%s' 请求切换场景: %d", a.cfg.Name, a.cfg.TargetSceneID)
		if a.deps.Scenes != nil {
			a.deps.Scenes.RequestTransition(a.cfg.TargetSceneID)
		}
	}

	if finished {
		a.phase = PhaseFinished
		a.state.IsRunning = false
		log.Printf("[FrameAnimator] '%s' 播放完成，停在最后一帧", a.cfg.Name)
	}
}

// show 仅在帧索引变化时推送到 sink
func (a *FrameAnimator[F]) show(index int) {
	if a.hasDisplayed && index == a.state.CurrentFrameIndex {
		return
	}
	a.state.CurrentFrameIndex = index
	a.hasDisplayed = true
	a.sink.Display(a.cfg.Frames[index])
}

// Reset 外部重置：回到 Idle，可再次 Start
//
// 场景切换的一次性标记在整个生命周期内保留，不会被重置。
// 未通过校验的动画器保持禁用。
func (a *FrameAnimator[F]) Reset() {
	if !a.initialized || !a.enabled {
		return
	}
	a.state = State{HasTransitionedOnce: a.state.HasTransitionedOnce}
	a.phase = PhaseIdle
	a.hasDisplayed = false
	a.anchored = false
}

// Disable 永久禁用动画器，之后 Start、Tick、Reset 均为空操作
func (a *FrameAnimator[F]) Disable() {
	a.enabled = false
	a.state.IsRunning = false
	if a.phase == PhaseRunning {
		a.phase = PhaseIdle
	}
}

// State 返回当前状态快照
func (a *FrameAnimator[F]) State() State {
	return a.state
}

// Phase 返回当前状态机阶段
func (a *FrameAnimator[F]) Phase() Phase {
	return a.phase
}

// Enabled 是否通过了启动校验
func (a *FrameAnimator[F]) Enabled() bool {
	return a.enabled
}

// Name 返回所属对象名称
func (a *FrameAnimator[F]) Name() string {
	return a.cfg.Name
}

// Config 返回动画器配置
func (a *FrameAnimator[F]) Config() Config[F] {
	return a.cfg
}
