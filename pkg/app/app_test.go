package app

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/flipbook/pkg/config"
	"github.com/decker502/flipbook/pkg/scenes"
)

const testConfig = `
window:
  width: 320
  height: 240
start: 0
scenes:
  - id: 0
    name: intro
    animators:
      - name: logo
        frames: [f.png]
        frames_per_second: 4
      - name: chime
        frames: [f.png]
        use_sound: true
        sound: chime.wav
  - id: 2
    name: outro
`

// writeTestProject 在临时目录写入配置和一帧图片，返回配置路径
func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	f, err := os.Create(filepath.Join(dir, "f.png"))
	if err != nil {
		t.Fatalf("create frame: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode frame: %v", err)
	}

	path := filepath.Join(dir, "flipbook.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestNewAppLoadsStartScene 测试启动时进入配置的起始场景
func TestNewAppLoadsStartScene(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeTestProject(t), StartScene: -1, NoAudio: true})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	defer a.Close()

	if id := a.GetSceneManager().CurrentSceneID(); id != 0 {
		t.Errorf("CurrentSceneID: got %d, want 0", id)
	}
	if w, h := a.Layout(0, 0); w != 320 || h != 240 {
		t.Errorf("Layout: got %dx%d, want 320x240", w, h)
	}
	if a.TPS() != config.DefaultTPS {
		t.Errorf("TPS: got %d, want %d", a.TPS(), config.DefaultTPS)
	}
}

// TestNewAppStartSceneOverride 测试命令行覆盖起始场景
func TestNewAppStartSceneOverride(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeTestProject(t), StartScene: 2, NoAudio: true})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	if id := a.GetSceneManager().CurrentSceneID(); id != 2 {
		t.Errorf("CurrentSceneID: got %d, want 2", id)
	}

	if _, err := NewApp(Config{Verbose: true, ConfigPath: writeTestProject(t), StartScene: 9, NoAudio: true}); err == nil {
		t.Error("unknown start scene should fail")
	}
}

// TestHandleRemoteStart 测试远程启动请求的分发
func TestHandleRemoteStart(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeTestProject(t), StartScene: -1, NoAudio: true})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	scene := a.GetSceneManager().GetCurrentScene().(*scenes.AnimationScene)

	a.handleRemote("logo")
	if scene.StartAnimator("logo") {
		t.Error("logo should already be running after a remote start")
	}

	// 没有音频时 chime 被禁用，"*" 也无法启动它
	a.handleRemote("*")
	if scene.StartAnimator("chime") {
		t.Error("chime should be disabled without audio")
	}
}

// TestHandleRemoteReset 测试远程重置后动画器可以再次启动
func TestHandleRemoteReset(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeTestProject(t), StartScene: -1, NoAudio: true})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	scene := a.GetSceneManager().GetCurrentScene().(*scenes.AnimationScene)

	a.handleRemote("logo")
	a.handleRemote("reset:logo")
	if !scene.StartAnimator("logo") {
		t.Error("logo should start again after reset:logo")
	}

	a.handleRemote("reset:*")
	if !scene.StartAnimator("logo") {
		t.Error("logo should start again after reset:*")
	}
}

// TestSoundSettingsPersist 测试音效开关和音量调整会写入存储
func TestSoundSettingsPersist(t *testing.T) {
	a, err := NewApp(Config{Verbose: true, ConfigPath: writeTestProject(t), StartScene: -1, NoAudio: true})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}

	a.toggleSound()
	a.adjustVolume(-volumeStep)
	a.adjustVolume(-volumeStep)

	settings := a.settingsManager.GetSettings()
	if settings.SoundEnabled {
		t.Error("SoundEnabled should be false after toggle")
	}
	if math.Abs(settings.SoundVolume-0.6) > 1e-9 {
		t.Errorf("SoundVolume: got %v, want 0.6", settings.SoundVolume)
	}

	// 重新加载，检查已保存
	if err := a.settingsManager.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	settings = a.settingsManager.GetSettings()
	if settings.SoundEnabled || math.Abs(settings.SoundVolume-0.6) > 1e-9 {
		t.Errorf("reloaded settings: got %+v", settings)
	}

	for i := 0; i < 20; i++ {
		a.adjustVolume(volumeStep)
	}
	if a.settingsManager.GetSettings().SoundVolume != 1 {
		t.Errorf("volume should clamp at 1, got %v", a.settingsManager.GetSettings().SoundVolume)
	}
}

// TestCollectSounds 测试预加载列表去重
func TestCollectSounds(t *testing.T) {
	cfg := &config.AnimationConfig{Scenes: []config.SceneConfig{
		{Animators: []config.AnimatorConfig{{Sound: "a.wav"}, {SourceSound: "b.wav"}}},
		{Animators: []config.AnimatorConfig{{Sound: "a.wav", SourceSound: "a.wav"}}},
	}}
	got := collectSounds(cfg)
	if len(got) != 2 || got[0] != "a.wav" || got[1] != "b.wav" {
		t.Errorf("collectSounds: got %v, want [a.wav b.wav]", got)
	}
}
