package components

import "github.com/hajimehoshi/ebiten/v2"

// MaterialComponent 材质：主纹理 + 颜色调制
// 动画器只替换 MainTexture，Tint 在渲染时叠加
type MaterialComponent struct {
	MainTexture *ebiten.Image
	Tint        ebiten.ColorScale
}
