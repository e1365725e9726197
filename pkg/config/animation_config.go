package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/decker502/flipbook/pkg/animator"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultFramesPerSecond = 25.0
	DefaultTPS             = 60
	DefaultWindowWidth     = 800
	DefaultWindowHeight    = 600
	DefaultWindowTitle     = "flipbook"
)

// AnimationConfig 动画播放器配置文件结构
type AnimationConfig struct {
	Version string        `yaml:"version"`
	Window  WindowConfig  `yaml:"window"`
	TPS     int           `yaml:"tps"`   // 主循环目标 TPS，决定每个 tick 的时钟步长
	Start   int           `yaml:"start"` // 启动时加载的场景编号
	Scenes  []SceneConfig `yaml:"scenes"`
	Remote  RemoteConfig  `yaml:"remote"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// RemoteConfig MQTT 远程启动配置（Broker 为空表示不启用）
type RemoteConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"` // 订阅的主题，消息体为动画器名称
}

// SceneConfig 单个场景配置，ID 即场景编号
type SceneConfig struct {
	ID          int              `yaml:"id"`
	Name        string           `yaml:"name"`
	Background  string           `yaml:"background"`   // 背景色 "#rrggbb"
	FadeSeconds float64          `yaml:"fade_seconds"` // 离开本场景时的淡出时长
	Animators   []AnimatorConfig `yaml:"animators"`
}

// AnimatorConfig 场景中的一个动画器对象
type AnimatorConfig struct {
	Name                string         `yaml:"name"`
	Sink                string         `yaml:"sink"` // sprite | raw_image | material
	Frames              []string       `yaml:"frames"`
	FramesPerSecond     *float64       `yaml:"frames_per_second"` // nil 时使用默认值 25
	Loop                bool           `yaml:"loop"`
	AutoStart           bool           `yaml:"auto_start"`
	SwitchSceneOnFinish bool           `yaml:"switch_scene_on_finish"`
	TargetScene         int            `yaml:"target_scene"`
	UseSound            bool           `yaml:"use_sound"`
	Sound               string         `yaml:"sound"`
	ResetPhaseOnStart   *bool          `yaml:"reset_phase_on_start"` // nil 时默认 true
	Position            PositionConfig `yaml:"position"`
	Size                SizeConfig     `yaml:"size"`         // raw_image 的显示尺寸
	Tint                string         `yaml:"tint"`         // material 的颜色调制 "#rrggbb"
	SourceSound         string         `yaml:"source_sound"` // 挂在实体上的音效组件
}

// PositionConfig 位置
type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SizeConfig 尺寸
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadAnimationConfig 从 YAML 文件加载配置
//
// 这里只检查文件结构（场景编号唯一、sink 名称有效等）；帧率、帧集、音效、
// 目标场景等对象级检查由动画器在启动时完成并输出诊断。
func LoadAnimationConfig(path string) (*AnimationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation config file %s: %w", path, err)
	}
	return ParseAnimationConfig(data)
}

// ParseAnimationConfig 解析 YAML 数据
func ParseAnimationConfig(data []byte) (*AnimationConfig, error) {
	var cfg AnimationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse animation config YAML: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateAnimationConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid animation config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *AnimationConfig) {
	if cfg.TPS <= 0 {
		cfg.TPS = DefaultTPS
	}
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = DefaultWindowTitle
	}
	if cfg.Remote.ClientID == "" {
		cfg.Remote.ClientID = "flipbook"
	}
	if cfg.Remote.Topic == "" {
		cfg.Remote.Topic = "flipbook/start"
	}

	for i := range cfg.Scenes {
		scene := &cfg.Scenes[i]
		for j := range scene.Animators {
			anim := &scene.Animators[j]
			if anim.FramesPerSecond == nil {
				fps := DefaultFramesPerSecond
				anim.FramesPerSecond = &fps
			}
			if anim.ResetPhaseOnStart == nil {
				reset := true
				anim.ResetPhaseOnStart = &reset
			}
			if anim.Name == "" {
				anim.Name = fmt.Sprintf("%s/animator-%d", scene.Name, j)
			}
		}
	}
}

func validateAnimationConfig(cfg *AnimationConfig) error {
	if len(cfg.Scenes) == 0 {
		return fmt.Errorf("no scenes defined")
	}

	seen := make(map[int]bool)
	for _, scene := range cfg.Scenes {
		if seen[scene.ID] {
			return fmt.Errorf("duplicate scene id %d", scene.ID)
		}
		seen[scene.ID] = true

		if scene.Background != "" {
			if _, err := ParseColor(scene.Background); err != nil {
				return fmt.Errorf("scene %d background: %w", scene.ID, err)
			}
		}

		for _, anim := range scene.Animators {
			if _, ok := animator.ParseSinkType(anim.Sink); !ok {
				return fmt.Errorf("scene %d animator '%s': unknown sink %q", scene.ID, anim.Name, anim.Sink)
			}
			if anim.Tint != "" {
				if _, err := ParseColor(anim.Tint); err != nil {
					return fmt.Errorf("scene %d animator '%s' tint: %w", scene.ID, anim.Name, err)
				}
			}
		}
	}

	if !seen[cfg.Start] {
		return fmt.Errorf("start scene %d is not defined", cfg.Start)
	}
	return nil
}

// Scene 按编号查找场景配置
func (c *AnimationConfig) Scene(id int) (*SceneConfig, bool) {
	for i := range c.Scenes {
		if c.Scenes[i].ID == id {
			return &c.Scenes[i], true
		}
	}
	return nil, false
}

// ParseColor 解析 "#rrggbb" 十六进制颜色
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// SinkType 返回解析后的 sink 类型
func (a *AnimatorConfig) SinkType() animator.SinkType {
	st, _ := animator.ParseSinkType(a.Sink)
	return st
}

// BuildAnimatorConfig 将配置项与已加载的帧集组合为动画器配置
func BuildAnimatorConfig[F any](a *AnimatorConfig, frames []F) animator.Config[F] {
	fps := DefaultFramesPerSecond
	if a.FramesPerSecond != nil {
		fps = *a.FramesPerSecond
	}
	reset := true
	if a.ResetPhaseOnStart != nil {
		reset = *a.ResetPhaseOnStart
	}

	return animator.Config[F]{
		Name:                a.Name,
		Sink:                a.SinkType(),
		Frames:              frames,
		FramesPerSecond:     fps,
		Loop:                a.Loop,
		AutoStart:           a.AutoStart,
		SwitchSceneOnFinish: a.SwitchSceneOnFinish,
		TargetSceneID:       a.TargetScene,
		UseSound:            a.UseSound,
		SoundHandle:         a.Sound,
		ResetPhaseOnStart:   reset,
	}
}
