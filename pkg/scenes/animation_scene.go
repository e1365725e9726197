package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/flipbook/pkg/animator"
	"github.com/decker502/flipbook/pkg/components"
	"github.com/decker502/flipbook/pkg/config"
	"github.com/decker502/flipbook/pkg/ecs"
	"github.com/decker502/flipbook/pkg/game"
	"github.com/decker502/flipbook/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneContext 场景构建所需的共享服务
type SceneContext struct {
	Resources *game.ResourceManager
	Clock     *game.AnimationClock
	Deps      animator.Deps
}

// AnimationScene 由配置构建的帧动画场景
//
// 每个动画器对应一个实体：位置 + 输出组件（精灵/原始图片/材质）
// + 帧动画组件，可选挂载音效组件。
type AnimationScene struct {
	id         int
	name       string
	background color.RGBA

	entityManager  *ecs.EntityManager
	animatorSystem *systems.FrameAnimatorSystem
	renderSystem   *systems.FrameRenderSystem

	initialized bool
}

// NewAnimationScene 根据场景配置创建实体并加载帧资源
//
// 帧加载失败只记录警告，对应动画器以空帧集参与校验并被禁用。
func NewAnimationScene(ctx SceneContext, cfg *config.SceneConfig) *AnimationScene {
	scene := &AnimationScene{
		id:            cfg.ID,
		name:          cfg.Name,
		background:    color.RGBA{A: 255},
		entityManager: ecs.NewEntityManager(),
	}
	if cfg.Background != "" {
		if bg, err := config.ParseColor(cfg.Background); err == nil {
			scene.background = bg
		}
	}

	for i := range cfg.Animators {
		scene.addAnimator(ctx.Resources, &cfg.Animators[i])
	}

	scene.animatorSystem = systems.NewFrameAnimatorSystem(scene.entityManager, ctx.Clock, ctx.Deps)
	scene.renderSystem = systems.NewFrameRenderSystem(scene.entityManager)

	log.Printf("[AnimationScene] 场景 %d (%s) 创建了 %d 个动画器", cfg.ID, cfg.Name, len(cfg.Animators))
	return scene
}

func (s *AnimationScene) addAnimator(rm *game.ResourceManager, a *config.AnimatorConfig) {
	var frames []*ebiten.Image
	if rm != nil && len(a.Frames) > 0 {
		loaded, err := rm.LoadFrames(a.Frames)
		if err != nil {
			log.Printf("[AnimationScene] Warning: 动画器 '%s' 帧加载失败: %v", a.Name, err)
		} else {
			frames = loaded
		}
	}

	id := s.entityManager.CreateNamedEntity(a.Name)
	ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: a.Position.X, Y: a.Position.Y})

	switch a.SinkType() {
	case animator.SinkRawImage:
		ecs.AddComponent(s.entityManager, id, &components.RawImageComponent{
			Width:  a.Size.Width,
			Height: a.Size.Height,
		})
	case animator.SinkMaterial:
		mat := &components.MaterialComponent{}
		if a.Tint != "" {
			if tint, err := config.ParseColor(a.Tint); err == nil {
				mat.Tint.ScaleWithColor(tint)
			}
		}
		ecs.AddComponent(s.entityManager, id, mat)
	default:
		ecs.AddComponent(s.entityManager, id, &components.SpriteComponent{})
	}

	if a.SourceSound != "" {
		ecs.AddComponent(s.entityManager, id, &components.AudioSourceComponent{SoundID: a.SourceSound})
	}

	ecs.AddComponent(s.entityManager, id, &components.FrameAnimatorComponent{
		Config: config.BuildAnimatorConfig(a, frames),
	})
}

// OnEnter 场景激活时初始化所有动画器
func (s *AnimationScene) OnEnter() {
	if s.initialized {
		return
	}
	s.initialized = true
	if err := s.animatorSystem.Init(); err != nil {
		log.Printf("[AnimationScene] 场景 %d 有动画器被禁用: %v", s.id, err)
	}
}

// Update 推进所有动画器
func (s *AnimationScene) Update(deltaTime float64) {
	s.animatorSystem.Update(deltaTime)
}

// Draw 绘制背景和所有动画实体
func (s *AnimationScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.renderSystem.Draw(screen)
}

// StartAnimator 手动启动指定名称的动画器
func (s *AnimationScene) StartAnimator(name string) bool {
	return s.animatorSystem.Start(name)
}

// StartAll 启动场景中所有空闲的动画器，返回启动数量
func (s *AnimationScene) StartAll() int {
	return s.animatorSystem.StartAll()
}

// ResetAnimator 将指定名称的动画器恢复为空闲状态
func (s *AnimationScene) ResetAnimator(name string) bool {
	return s.animatorSystem.Reset(name)
}

// ResetAll 将场景中所有已启用的动画器恢复为空闲状态
func (s *AnimationScene) ResetAll() int {
	return s.animatorSystem.ResetAll()
}

// ID 场景编号
func (s *AnimationScene) ID() int {
	return s.id
}

// EntityManager 返回场景的实体管理器
func (s *AnimationScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}
