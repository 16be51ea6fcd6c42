package utils

import (
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ParseLogLevel 无法识别时使用 info
func ParseLogLevel(level string) hlog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}
