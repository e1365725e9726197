package components

// AudioSourceComponent 实体自带的音效来源
// 动画器配置未指定音效时，从同一实体上查找此组件
type AudioSourceComponent struct {
	SoundID string // 音效资源路径或ID
}
