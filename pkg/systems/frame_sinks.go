package systems

import (
	"github.com/decker502/flipbook/pkg/animator"
	"github.com/decker502/flipbook/pkg/components"
	"github.com/decker502/flipbook/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSink 将帧写入精灵渲染器
type SpriteSink struct {
	Sprite *components.SpriteComponent
}

// Display 实现 animator.FrameSink
func (s SpriteSink) Display(frame *ebiten.Image) {
	s.Sprite.Image = frame
	s.Sprite.Visible = true
}

// RawImageSink 将帧写入 UI 原始图片
type RawImageSink struct {
	Image *components.RawImageComponent
}

// Display 实现 animator.FrameSink
func (s RawImageSink) Display(frame *ebiten.Image) {
	s.Image.Texture = frame
}

// MaterialSink 将帧写入材质主纹理
type MaterialSink struct {
	Material *components.MaterialComponent
}

// Display 实现 animator.FrameSink
func (s MaterialSink) Display(frame *ebiten.Image) {
	s.Material.MainTexture = frame
}

// bindSink 从实体上查找所选类型的渲染组件
// 组件不存在时返回 nil，动画器启动检查会报告该对象
func bindSink(em *ecs.EntityManager, id ecs.EntityID, sinkType animator.SinkType) animator.FrameSink[*ebiten.Image] {
	switch sinkType {
	case animator.SinkSprite:
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
			return SpriteSink{Sprite: sprite}
		}
	case animator.SinkRawImage:
		if img, ok := ecs.GetComponent[*components.RawImageComponent](em, id); ok {
			return RawImageSink{Image: img}
		}
	case animator.SinkMaterial:
		if mat, ok := ecs.GetComponent[*components.MaterialComponent](em, id); ok {
			return MaterialSink{Material: mat}
		}
	}
	return nil
}
