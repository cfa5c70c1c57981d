package handler

import "go.uber.org/zap"

// logFail 核心上报失败时统一以 {method, args, message} 形态进日志
func logFail(l *zap.Logger, method string, args any, message string) {
	l.Error(message,
		zap.String("method", method),
		zap.Any("args", args),
		zap.String("message", message),
	)
}
