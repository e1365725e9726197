package animator

import "log"

// LogDiagnostics 将诊断信息写入标准日志
type LogDiagnostics struct{}

// LogError 实现 Diagnostics 接口
func (LogDiagnostics) LogError(message, context string) {
	log.Printf("[Diagnostics] %s: %s", context, message)
}
