package errors

import "errors"

// ErrNoRowsAffected 带条件的写操作未命中任何记录：记录已被删除或调用方不满足条件
var ErrNoRowsAffected = errors.New("记录不存在或无权修改")
