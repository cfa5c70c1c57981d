package domain

import "errors"

// 仓储层统一的哨兵错误，上层用 errors.Is 分支，不做异常拦截
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("login already exists")
	ErrTxFailed = errors.New("transaction failed")
)
