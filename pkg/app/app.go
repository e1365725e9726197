// Package app 提供播放器应用的核心包装器
//
// 该包把配置加载、资源管理器、场景注册和远程触发组装成一个 ebiten.Game，
// main.go 只负责解析命令行参数和设置窗口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/flipbook/pkg/animator"
	"github.com/decker502/flipbook/pkg/config"
	"github.com/decker502/flipbook/pkg/game"
	"github.com/decker502/flipbook/pkg/remote"
	"github.com/decker502/flipbook/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 动画配置文件路径，帧和音效路径相对该文件所在目录解析
	ConfigPath string
	// StartScene 覆盖配置文件中的起始场景，小于 0 表示不覆盖
	StartScene int
	// NoAudio 不创建音频上下文（使用音效的动画器会被禁用）
	NoAudio bool
}

// volumeStep 每次按键调整的音量
const volumeStep = 0.1

// resetPrefix 远程消息前缀，表示重置而不是启动
const resetPrefix = "reset:"

// animatorHost 可从外部启动和重置动画器的场景
type animatorHost interface {
	StartAnimator(name string) bool
	StartAll() int
	ResetAnimator(name string) bool
	ResetAll() int
}

// App 是播放器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg             *config.AnimationConfig
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager // 没有音频输出时为 nil
	clock           *game.AnimationClock
	trigger         *remote.Trigger
	deltaTime       float64
}

// NewApp 加载配置并进入起始场景
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	animCfg, err := config.LoadAnimationConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	log.Printf("[Config] 加载动画配置: %s (%d 个场景)", cfg.ConfigPath, len(animCfg.Scenes))

	var audioContext *audio.Context
	if !cfg.NoAudio {
		audioContext = audio.NewContext(48000)
	}
	resourceManager := game.NewResourceManager(audioContext, filepath.Dir(cfg.ConfigPath))

	gdataManager, err := gdata.Open(gdata.Config{AppName: "flipbook"})
	if err != nil {
		log.Printf("[App] Warning: 无法打开设置存储，使用默认设置: %v", err)
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	clock := game.NewAnimationClock()

	// 接口字段不能持有类型化的 nil
	var sound animator.SoundPlayer
	var audioManager *game.AudioManager
	if resourceManager.HasAudio() {
		audioManager = game.NewAudioManager(resourceManager, settingsManager)
		audioManager.Preload(collectSounds(animCfg))
		sound = audioManager
	}

	ctx := scenes.SceneContext{
		Resources: resourceManager,
		Clock:     clock,
		Deps: animator.Deps{
			Scenes:      sceneManager,
			Audio:       sound,
			Diagnostics: animator.LogDiagnostics{},
		},
	}
	for i := range animCfg.Scenes {
		sceneCfg := &animCfg.Scenes[i]
		sceneManager.Register(sceneCfg.ID, func(int) game.Scene {
			// 离开该场景时使用它自己的淡出时长
			sceneManager.SetFadeDuration(sceneCfg.FadeSeconds)
			return scenes.NewAnimationScene(ctx, sceneCfg)
		})
	}

	start := animCfg.Start
	if cfg.StartScene >= 0 {
		start = cfg.StartScene
	}
	if err := sceneManager.LoadScene(start); err != nil {
		return nil, fmt.Errorf("无法加载起始场景: %w", err)
	}

	a := &App{
		cfg:             animCfg,
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		clock:           clock,
		deltaTime:       1.0 / float64(animCfg.TPS),
	}

	if trigger := remote.NewTrigger(animCfg.Remote); trigger != nil {
		if err := trigger.Connect(); err != nil {
			log.Printf("[App] Warning: 远程触发不可用: %v", err)
		} else {
			a.trigger = trigger
		}
	}
	return a, nil
}

func collectSounds(cfg *config.AnimationConfig) []string {
	seen := make(map[string]bool)
	var sounds []string
	for _, scene := range cfg.Scenes {
		for _, anim := range scene.Animators {
			for _, id := range []string{anim.Sound, anim.SourceSound} {
				if id != "" && !seen[id] {
					seen[id] = true
					sounds = append(sounds, id)
				}
			}
		}
	}
	return sounds
}

// Update 更新播放逻辑
// 时钟先于场景推进，同一 tick 内所有动画器读取同一时间值
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settingsManager.SetFullscreen(fullscreen)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.toggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		a.adjustVolume(-volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		a.adjustVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.clock.SetPaused(!a.clock.IsPaused())
		log.Printf("[App] 动画时钟暂停: %v", a.clock.IsPaused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if host, ok := a.sceneManager.GetCurrentScene().(animatorHost); ok {
			log.Printf("[App] 手动启动了 %d 个动画器", host.StartAll())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if host, ok := a.sceneManager.GetCurrentScene().(animatorHost); ok {
			log.Printf("[App] 重置了 %d 个动画器", host.ResetAll())
		}
	}

	if a.trigger != nil {
		a.trigger.Drain(a.handleRemote)
	}

	a.clock.Advance(a.deltaTime)
	a.sceneManager.Update(a.deltaTime)
	return nil
}

// handleRemote 处理一条远程消息
//
// "<name>" 启动当前场景中的动画器，"reset:<name>" 将其恢复为空闲；
// 名称为 "*" 时作用于全部动画器。
func (a *App) handleRemote(message string) {
	host, ok := a.sceneManager.GetCurrentScene().(animatorHost)
	if !ok {
		return
	}

	if name, isReset := strings.CutPrefix(message, resetPrefix); isReset {
		name = strings.TrimSpace(name)
		if name == "*" {
			host.ResetAll()
			return
		}
		if !host.ResetAnimator(name) {
			log.Printf("[App] 远程重置失败: 场景 %d 中没有动画器 '%s'", a.sceneManager.CurrentSceneID(), name)
		}
		return
	}

	if message == "*" {
		host.StartAll()
		return
	}
	if !host.StartAnimator(message) {
		log.Printf("[App] 远程启动失败: 场景 %d 中没有可启动的动画器 '%s'", a.sceneManager.CurrentSceneID(), message)
	}
}

// toggleSound 切换音效开关并保存
func (a *App) toggleSound() {
	settings := a.settingsManager.GetSettings()
	a.settingsManager.SetSoundEnabled(!settings.SoundEnabled)
	log.Printf("[App] 音效: %v", settings.SoundEnabled)
	a.saveSettings()
}

// adjustVolume 调整音效音量并保存
func (a *App) adjustVolume(delta float64) {
	volume := a.settingsManager.GetSettings().SoundVolume + delta
	if a.audioManager != nil {
		a.audioManager.SetSoundVolume(volume)
	} else {
		a.settingsManager.SetSoundVolume(volume)
	}
	log.Printf("[App] 音量: %.1f", a.settingsManager.GetSettings().SoundVolume)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: 保存设置失败: %v", err)
	}
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时以黑色 letterbox 线性缩放画面
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回配置中的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// Window 返回窗口配置
func (a *App) Window() config.WindowConfig {
	return a.cfg.Window
}

// TPS 返回主循环目标 TPS
func (a *App) TPS() int {
	return a.cfg.TPS
}

// Close 断开远程连接
func (a *App) Close() {
	if a.trigger != nil {
		a.trigger.Close()
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
