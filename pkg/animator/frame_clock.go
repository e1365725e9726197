package animator

import "math"

// FrameIndex 将时钟时间映射为帧索引
//
// 计算 floor(t*fps) mod n，结果总是落在 [0, n-1]（乘积为负时同样归一化）。
// 函数无状态，共享同一时钟 t 的动画器会保持同步。
func FrameIndex(t, fps float64, n int) int {
	if n <= 0 {
		return 0
	}

	raw := math.Floor(t * fps)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}

	idx := math.Mod(raw, float64(n))
	if idx < 0 {
		idx += float64(n)
	}
	return int(idx)
}
