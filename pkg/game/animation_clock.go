package game

// AnimationClock 全局动画时钟
//
// 由主循环每个 tick 推进一次，所有动画器读取同一个时间值。
// 切换场景时不会重置。
type AnimationClock struct {
	elapsed float64
	paused  bool
}

// NewAnimationClock 创建从 0 开始的时钟
func NewAnimationClock() *AnimationClock {
	return &AnimationClock{}
}

// Advance 推进时钟（暂停时忽略）
func (c *AnimationClock) Advance(deltaTime float64) {
	if c.paused || deltaTime <= 0 {
		return
	}
	c.elapsed += deltaTime
}

// Now 返回自启动以来经过的动画时间（秒）
func (c *AnimationClock) Now() float64 {
	return c.elapsed
}

// SetPaused 暂停或恢复时钟
func (c *AnimationClock) SetPaused(paused bool) {
	c.paused = paused
}

// IsPaused 时钟是否暂停
func (c *AnimationClock) IsPaused() bool {
	return c.paused
}
