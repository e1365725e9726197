package systems

import (
	"errors"
	"log"

	"github.com/decker502/flipbook/pkg/animator"
	"github.com/decker502/flipbook/pkg/components"
	"github.com/decker502/flipbook/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// Clock 全局动画时钟
type Clock interface {
	Now() float64
}

// FrameAnimatorSystem 驱动所有拥有 FrameAnimatorComponent 的实体
//
// Init 阶段为每个实体绑定渲染目标、补全音效并完成启动检查；
// Update 阶段用全局时钟推进每个动画器。
type FrameAnimatorSystem struct {
	entityManager *ecs.EntityManager
	clock         Clock
	deps          animator.Deps
}

// NewFrameAnimatorSystem 创建动画器系统
func NewFrameAnimatorSystem(em *ecs.EntityManager, clock Clock, deps animator.Deps) *FrameAnimatorSystem {
	return &FrameAnimatorSystem{
		entityManager: em,
		clock:         clock,
		deps:          deps,
	}
}

// Init 初始化所有尚未初始化的动画器实体
//
// 校验失败的动画器被禁用，不影响其他实体；返回所有失败的 join 错误。
func (s *FrameAnimatorSystem) Init() error {
	var errs []error

	for _, id := range ecs.GetEntitiesWith1[*components.FrameAnimatorComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.FrameAnimatorComponent](s.entityManager, id)
		if comp.Animator != nil {
			continue
		}

		cfg := comp.Config
		if cfg.Name == "" {
			cfg.Name = s.entityManager.Name(id)
		}

		// 配置未指定音效时，使用实体自带的音效组件
		if cfg.UseSound && cfg.SoundHandle == "" {
			if src, ok := ecs.GetComponent[*components.AudioSourceComponent](s.entityManager, id); ok {
				cfg.SoundHandle = src.SoundID
			}
		}

		sink := bindSink(s.entityManager, id, cfg.Sink)
		comp.Animator = animator.New(cfg, sink, s.deps)
		if err := comp.Animator.Init(); err != nil {
			log.Printf("[FrameAnimatorSystem] 实体 %d ('%s') 已禁用", id, cfg.Name)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Update 用全局时钟推进所有动画器
func (s *FrameAnimatorSystem) Update(deltaTime float64) {
	now := s.clock.Now()
	for _, id := range ecs.GetEntitiesWith1[*components.FrameAnimatorComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.FrameAnimatorComponent](s.entityManager, id)
		if comp.Animator == nil {
			continue
		}
		comp.Animator.Tick(now)
	}
}

// Start 按名称启动动画器（外部启动信号），找不到或无法启动时返回 false
func (s *FrameAnimatorSystem) Start(name string) bool {
	anim := s.find(name)
	if anim == nil {
		log.Printf("[FrameAnimatorSystem] Warning: 未找到动画器: %s", name)
		return false
	}
	return anim.Start()
}

// StartAll 启动所有处于 Idle 的动画器，返回启动的数量
func (s *FrameAnimatorSystem) StartAll() int {
	started := 0
	for _, id := range ecs.GetEntitiesWith1[*components.FrameAnimatorComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.FrameAnimatorComponent](s.entityManager, id)
		if comp.Animator != nil && comp.Animator.Start() {
			started++
		}
	}
	return started
}

// Reset 按名称重置动画器，找不到时返回 false
func (s *FrameAnimatorSystem) Reset(name string) bool {
	anim := s.find(name)
	if anim == nil {
		return false
	}
	anim.Reset()
	return true
}

// ResetAll 将所有已启用的动画器恢复为空闲状态，返回重置的数量
func (s *FrameAnimatorSystem) ResetAll() int {
	reset := 0
	for _, id := range ecs.GetEntitiesWith1[*components.FrameAnimatorComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.FrameAnimatorComponent](s.entityManager, id)
		if comp.Animator != nil && comp.Animator.Enabled() {
			comp.Animator.Reset()
			reset++
		}
	}
	return reset
}

func (s *FrameAnimatorSystem) find(name string) *animator.FrameAnimator[*ebiten.Image] {
	for _, id := range ecs.GetEntitiesWith1[*components.FrameAnimatorComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.FrameAnimatorComponent](s.entityManager, id)
		if comp.Animator != nil && comp.Animator.Name() == name {
			return comp.Animator
		}
	}
	return nil
}
