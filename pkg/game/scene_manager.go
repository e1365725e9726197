package game

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/fogleman/ease"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 每次切换都创建新的场景实例（整场景替换）
type SceneFactory func(sceneID int) Scene

type transitionPhase int

const (
	transitionIdle transitionPhase = iota
	transitionFadeOut
	transitionFadeIn
)

// SceneManager manages which scene is active. Scenes are registered under an
// integer build index; transition requests are fire-and-forget and complete
// on a later Update, optionally behind a fade to black.
type SceneManager struct {
	currentScene Scene
	currentID    int
	factories    map[int]SceneFactory

	pendingID  int
	hasPending bool

	fadeDuration float64 // 单程淡入/淡出时长(秒)，0 表示立即切换
	phase        transitionPhase
	fadeTime     float64
	overlay      *ebiten.Image
}

// NewSceneManager creates a SceneManager with no registered scenes.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		currentID: -1,
		factories: make(map[int]SceneFactory),
	}
}

// Register 注册场景编号对应的工厂函数
func (sm *SceneManager) Register(sceneID int, factory SceneFactory) {
	sm.factories[sceneID] = factory
}

// SetFadeDuration 设置切换时的淡出/淡入时长
func (sm *SceneManager) SetFadeDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	sm.fadeDuration = seconds
}

// HasScene 场景编号是否已注册
func (sm *SceneManager) HasScene(sceneID int) bool {
	_, ok := sm.factories[sceneID]
	return ok
}

// SceneIDs 返回所有已注册的场景编号（升序）
func (sm *SceneManager) SceneIDs() []int {
	ids := make([]int, 0, len(sm.factories))
	for id := range sm.factories {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LoadScene 立即加载场景（用于启动时加载首个场景）
func (sm *SceneManager) LoadScene(sceneID int) error {
	factory, ok := sm.factories[sceneID]
	if !ok {
		return fmt.Errorf("scene %d is not registered", sceneID)
	}

	scene := factory(sceneID)
	if scene == nil {
		return fmt.Errorf("scene factory returned nil for scene %d", sceneID)
	}

	sm.currentScene = scene
	sm.currentID = sceneID
	if enterable, ok := scene.(Enterable); ok {
		enterable.OnEnter()
	}
	log.Printf("[SceneManager] 成功切换到场景: %d", sceneID)
	return nil
}

// RequestTransition 请求切换场景（发出即返回）
//
// 切换在之后的 Update 中完成。已有未完成的请求时，新请求被忽略。
func (sm *SceneManager) RequestTransition(sceneID int) {
	if !sm.HasScene(sceneID) {
		log.Printf("[SceneManager] 错误: 场景未注册: %d", sceneID)
		return
	}
	if sm.hasPending {
		log.Printf("[SceneManager] 已有待处理的切换请求 (%d)，忽略: %d", sm.pendingID, sceneID)
		return
	}

	log.Printf("[SceneManager] 收到切换请求: %d -> %d", sm.currentID, sceneID)
	sm.pendingID = sceneID
	sm.hasPending = true
	if sm.fadeDuration > 0 && sm.currentScene != nil {
		if sm.phase == transitionFadeIn {
			// 从当前遮罩不透明度继续淡出（InOutQuad 关于中点对称）
			sm.fadeTime = sm.fadeDuration - sm.fadeTime
			if sm.fadeTime < 0 {
				sm.fadeTime = 0
			}
		} else {
			sm.fadeTime = 0
		}
		sm.phase = transitionFadeOut
	}
}

// IsTransitioning 是否有切换正在进行（包括淡入阶段）
func (sm *SceneManager) IsTransitioning() bool {
	return sm.hasPending || sm.phase != transitionIdle
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentSceneID 返回当前场景编号，没有活动场景时返回 -1
func (sm *SceneManager) CurrentSceneID() int {
	return sm.currentID
}

// Update 推进切换流程，然后更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	switch sm.phase {
	case transitionFadeOut:
		sm.fadeTime += deltaTime
		if sm.fadeTime >= sm.fadeDuration {
			sm.completePending()
			sm.phase = transitionFadeIn
			sm.fadeTime = 0
		}
	case transitionFadeIn:
		sm.fadeTime += deltaTime
		if sm.fadeTime >= sm.fadeDuration {
			sm.phase = transitionIdle
			sm.fadeTime = 0
		}
	default:
		if sm.hasPending {
			sm.completePending()
		}
	}

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

func (sm *SceneManager) completePending() {
	id := sm.pendingID
	sm.hasPending = false
	if err := sm.LoadScene(id); err != nil {
		log.Printf("[SceneManager] 错误: 无法加载场景 %d: %v", id, err)
	}
}

// FadeAlpha 返回当前黑色遮罩的不透明度 (0.0 ~ 1.0)
func (sm *SceneManager) FadeAlpha() float64 {
	if sm.fadeDuration <= 0 {
		return 0
	}
	progress := sm.fadeTime / sm.fadeDuration
	if progress > 1 {
		progress = 1
	}
	switch sm.phase {
	case transitionFadeOut:
		return ease.InOutQuad(progress)
	case transitionFadeIn:
		return 1 - ease.InOutQuad(progress)
	default:
		return 0
	}
}

// Draw 绘制当前场景和切换遮罩
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}

	alpha := sm.FadeAlpha()
	if alpha <= 0 {
		return
	}
	if sm.overlay == nil {
		sm.overlay = ebiten.NewImage(1, 1)
		sm.overlay.Fill(color.Black)
	}
	bounds := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(sm.overlay, op)
}
