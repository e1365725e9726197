package systems

import (
	"errors"
	"testing"

	"github.com/decker502/flipbook/pkg/animator"
	"github.com/decker502/flipbook/pkg/components"
	"github.com/decker502/flipbook/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// testClock 可手动设置的动画时钟
type testClock struct {
	now float64
}

func (c *testClock) Now() float64 { return c.now }

// testScenes 记录场景切换请求
type testScenes struct {
	requests []int
}

func (s *testScenes) HasScene(id int) bool      { return id >= 0 && id < 3 }
func (s *testScenes) RequestTransition(id int) { s.requests = append(s.requests, id) }

// testAudio 记录播放的音效
type testAudio struct {
	played []string
}

func (a *testAudio) PlaySound(id string) bool {
	a.played = append(a.played, id)
	return true
}

// silentDiagnostics 丢弃诊断信息并计数
type silentDiagnostics struct {
	count int
}

func (d *silentDiagnostics) LogError(message, context string) { d.count++ }

func newTestFrames(n int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = ebiten.NewImage(4, 4)
	}
	return frames
}

func addAnimatorEntity(em *ecs.EntityManager, name string, cfg animator.Config[*ebiten.Image]) ecs.EntityID {
	id := em.CreateNamedEntity(name)
	ecs.AddComponent(em, id, &components.FrameAnimatorComponent{Config: cfg})
	return id
}

// TestFrameAnimatorSystemSinks 测试三种输出目标都能收到帧
func TestFrameAnimatorSystemSinks(t *testing.T) {
	em := ecs.NewEntityManager()
	clock := &testClock{}
	frames := newTestFrames(3)
	base := animator.Config[*ebiten.Image]{
		Frames:          frames,
		FramesPerSecond: 1,
		Loop:            true,
		AutoStart:       true,
	}

	spriteCfg := base
	spriteCfg.Sink = animator.SinkSprite
	spriteID := addAnimatorEntity(em, "sprite", spriteCfg)
	sprite := &components.SpriteComponent{}
	ecs.AddComponent(em, spriteID, sprite)

	rawCfg := base
	rawCfg.Sink = animator.SinkRawImage
	rawID := addAnimatorEntity(em, "raw", rawCfg)
	raw := &components.RawImageComponent{}
	ecs.AddComponent(em, rawID, raw)

	matCfg := base
	matCfg.Sink = animator.SinkMaterial
	matID := addAnimatorEntity(em, "material", matCfg)
	mat := &components.MaterialComponent{}
	ecs.AddComponent(em, matID, mat)

	system := NewFrameAnimatorSystem(em, clock, animator.Deps{Scenes: &testScenes{}, Diagnostics: &silentDiagnostics{}})
	if err := system.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	system.Update(0)
	if sprite.Image != frames[0] || !sprite.Visible {
		t.Error("sprite should show frame 0 on the first tick")
	}

	clock.now = 1.0
	system.Update(1.0)
	if sprite.Image != frames[1] || raw.Texture != frames[1] || mat.MainTexture != frames[1] {
		t.Error("every sink should show frame 1 after one second")
	}
}

// TestFrameAnimatorSystemMissingSink 测试缺少渲染组件的实体被禁用，其他实体不受影响
func TestFrameAnimatorSystemMissingSink(t *testing.T) {
	em := ecs.NewEntityManager()
	clock := &testClock{}
	diag := &silentDiagnostics{}
	frames := newTestFrames(2)

	brokenID := addAnimatorEntity(em, "broken", animator.Config[*ebiten.Image]{
		Sink: animator.SinkMaterial, Frames: frames, FramesPerSecond: 1, AutoStart: true,
	})
	// 只有精灵组件，没有材质组件
	ecs.AddComponent(em, brokenID, &components.SpriteComponent{})

	okID := addAnimatorEntity(em, "ok", animator.Config[*ebiten.Image]{
		Sink: animator.SinkSprite, Frames: frames, FramesPerSecond: 1, AutoStart: true, Loop: true,
	})
	sprite := &components.SpriteComponent{}
	ecs.AddComponent(em, okID, sprite)

	system := NewFrameAnimatorSystem(em, clock, animator.Deps{Scenes: &testScenes{}, Diagnostics: diag})
	err := system.Init()
	if !errors.Is(err, animator.ErrEmptyFrameSet) {
		t.Fatalf("expected ErrEmptyFrameSet, got %v", err)
	}
	if diag.count != 1 {
		t.Errorf("expected 1 diagnostic, got %d", diag.count)
	}

	broken, _ := ecs.GetComponent[*components.FrameAnimatorComponent](em, brokenID)
	if broken.Animator.Enabled() {
		t.Error("broken animator should be disabled")
	}

	system.Update(0)
	if sprite.Image != frames[0] {
		t.Error("healthy animator should still run")
	}
}

// TestFrameAnimatorSystemSoundFallback 测试从实体音效组件补全音效
func TestFrameAnimatorSystemSoundFallback(t *testing.T) {
	em := ecs.NewEntityManager()
	audio := &testAudio{}
	id := addAnimatorEntity(em, "jingle", animator.Config[*ebiten.Image]{
		Sink: animator.SinkSprite, Frames: newTestFrames(2), FramesPerSecond: 1,
		UseSound: true, AutoStart: true,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{})
	ecs.AddComponent(em, id, &components.AudioSourceComponent{SoundID: "jingle.ogg"})

	system := NewFrameAnimatorSystem(em, &testClock{}, animator.Deps{
		Scenes: &testScenes{}, Audio: audio, Diagnostics: &silentDiagnostics{},
	})
	if err := system.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if len(audio.played) != 1 || audio.played[0] != "jingle.ogg" {
		t.Errorf("played: got %v, want [jingle.ogg]", audio.played)
	}
}

// TestFrameAnimatorSystemStartByName 测试按名称启动只影响对应实体
func TestFrameAnimatorSystemStartByName(t *testing.T) {
	em := ecs.NewEntityManager()
	clock := &testClock{}
	frames := newTestFrames(2)

	sprites := make(map[string]*components.SpriteComponent)
	for _, name := range []string{"left", "right"} {
		id := addAnimatorEntity(em, name, animator.Config[*ebiten.Image]{
			Sink: animator.SinkSprite, Frames: frames, FramesPerSecond: 1, Loop: true,
		})
		sprites[name] = &components.SpriteComponent{}
		ecs.AddComponent(em, id, sprites[name])
	}

	system := NewFrameAnimatorSystem(em, clock, animator.Deps{Scenes: &testScenes{}, Diagnostics: &silentDiagnostics{}})
	system.Init()

	if !system.Start("left") {
		t.Fatal("Start(left) should succeed")
	}
	if system.Start("missing") {
		t.Error("Start(missing) should fail")
	}

	system.Update(0)
	if sprites["left"].Image == nil {
		t.Error("left should be running")
	}
	if sprites["right"].Image != nil {
		t.Error("right should stay idle")
	}

	if started := system.StartAll(); started != 1 {
		t.Errorf("StartAll: got %d, want 1", started)
	}
}

// TestFrameAnimatorSystemTransition 测试非循环动画结束时请求切换场景
func TestFrameAnimatorSystemTransition(t *testing.T) {
	em := ecs.NewEntityManager()
	clock := &testClock{now: 5}
	scenes := &testScenes{}
	id := addAnimatorEntity(em, "intro", animator.Config[*ebiten.Image]{
		Sink: animator.SinkSprite, Frames: newTestFrames(3), FramesPerSecond: 2,
		AutoStart: true, SwitchSceneOnFinish: true, TargetSceneID: 2, ResetPhaseOnStart: true,
	})
	ecs.AddComponent(em, id, &components.SpriteComponent{})

	system := NewFrameAnimatorSystem(em, clock, animator.Deps{Scenes: scenes, Diagnostics: &silentDiagnostics{}})
	system.Init()

	for i := 0; i < 120; i++ {
		system.Update(1.0 / 60)
		clock.now += 1.0 / 60
	}

	if len(scenes.requests) != 1 || scenes.requests[0] != 2 {
		t.Errorf("requests: got %v, want [2]", scenes.requests)
	}

	comp, _ := ecs.GetComponent[*components.FrameAnimatorComponent](em, id)
	if comp.Animator.Phase() != animator.PhaseFinished {
		t.Errorf("Phase: got %v, want Finished", comp.Animator.Phase())
	}

	if !system.Reset("intro") || comp.Animator.Phase() != animator.PhaseIdle {
		t.Error("Reset(intro) should return the animator to Idle")
	}
}
