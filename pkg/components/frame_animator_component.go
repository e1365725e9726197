package components

import (
	"github.com/decker502/flipbook/pkg/animator"
	"github.com/hajimehoshi/ebiten/v2"
)

// FrameAnimatorComponent 序列帧动画器组件
//
// Config 在实体创建时写入；Animator 由 FrameAnimatorSystem 在初始化阶段
// 绑定渲染目标并完成校验后创建，之前为 nil。
type FrameAnimatorComponent struct {
	Config   animator.Config[*ebiten.Image]
	Animator *animator.FrameAnimator[*ebiten.Image]
}
