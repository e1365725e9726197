package components

import "github.com/hajimehoshi/ebiten/v2"

// RawImageComponent UI 原始图片
// 与精灵不同，UI 图片按指定矩形拉伸绘制
type RawImageComponent struct {
	Texture *ebiten.Image
	Width   float64 // 显示宽度（0 表示使用纹理原始宽度）
	Height  float64 // 显示高度（0 表示使用纹理原始高度）
}
