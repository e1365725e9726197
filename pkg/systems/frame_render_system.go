package systems

import (
	"github.com/decker502/flipbook/pkg/components"
	"github.com/decker502/flipbook/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// FrameRenderSystem 绘制三类帧输出目标
//
// 按实体ID顺序绘制：精灵按原尺寸绘制，UI 图片拉伸到指定尺寸，
// 材质叠加颜色调制。没有 PositionComponent 的实体绘制在原点。
type FrameRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewFrameRenderSystem 创建渲染系统
func NewFrameRenderSystem(em *ecs.EntityManager) *FrameRenderSystem {
	return &FrameRenderSystem{entityManager: em}
}

// drawCommand 一次待绘制的纹理
type drawCommand struct {
	id      ecs.EntityID
	texture *ebiten.Image
	op      *ebiten.DrawImageOptions
}

// Draw 按实体ID顺序绘制所有帧输出目标
func (s *FrameRenderSystem) Draw(screen *ebiten.Image) {
	for _, cmd := range s.commands() {
		screen.DrawImage(cmd.texture, cmd.op)
	}
}

// commands 按实体顺序生成绘制命令，同一实体的多个输出目标按精灵、UI 图片、材质顺序
func (s *FrameRenderSystem) commands() []drawCommand {
	var cmds []drawCommand
	for _, id := range s.entityManager.Entities() {
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok && sprite.Visible && sprite.Image != nil {
			op := &ebiten.DrawImageOptions{}
			s.translate(op, id)
			cmds = append(cmds, drawCommand{id: id, texture: sprite.Image, op: op})
		}

		if img, ok := ecs.GetComponent[*components.RawImageComponent](s.entityManager, id); ok && img.Texture != nil {
			op := &ebiten.DrawImageOptions{}
			bounds := img.Texture.Bounds()
			op.GeoM.Scale(stretchScale(img.Width, img.Height, bounds.Dx(), bounds.Dy()))
			s.translate(op, id)
			cmds = append(cmds, drawCommand{id: id, texture: img.Texture, op: op})
		}

		if mat, ok := ecs.GetComponent[*components.MaterialComponent](s.entityManager, id); ok && mat.MainTexture != nil {
			op := &ebiten.DrawImageOptions{}
			op.ColorScale = mat.Tint
			s.translate(op, id)
			cmds = append(cmds, drawCommand{id: id, texture: mat.MainTexture, op: op})
		}
	}
	return cmds
}

func (s *FrameRenderSystem) translate(op *ebiten.DrawImageOptions, id ecs.EntityID) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		op.GeoM.Translate(pos.X, pos.Y)
	}
}

// stretchScale 计算把纹理拉伸到目标尺寸的缩放比例，目标尺寸未设置时不缩放
func stretchScale(width, height float64, texW, texH int) (float64, float64) {
	if width <= 0 || height <= 0 || texW <= 0 || texH <= 0 {
		return 1, 1
	}
	return width / float64(texW), height / float64(texH)
}
