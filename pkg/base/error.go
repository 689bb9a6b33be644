// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"errors"
	"fmt"
)

// ----- 通用的 ---------------------------------------------------------------------------------------------------------

var ErrFileNotExist = errors.New("flvavc: file not exist")

// ----- pkg/httpflv ---------------------------------------------------------------------------------------------------

var (
	// ErrFlvFormat magic不对、body offset小于9、tag过大等
	ErrFlvFormat = errors.New("flvavc.httpflv: invalid flv format")

	// ErrFlvTruncated 结构还没读完，流就结束了
	ErrFlvTruncated = errors.New("flvavc.httpflv: flv stream truncated")

	// ErrFlvHeaderTruncated flv header没读完流就结束了，同时是 ErrFlvTruncated 和 ErrFlvFormat
	ErrFlvHeaderTruncated = fmt.Errorf("%w, %w", ErrFlvTruncated, ErrFlvFormat)
)

// ----- pkg/avc -------------------------------------------------------------------------------------------------------

// ErrAvcFormat avc payload中不支持的结构，同时也是 ErrFlvFormat
var ErrAvcFormat = fmt.Errorf("%w: unsupported avc payload", ErrFlvFormat)

// ---------------------------------------------------------------------------------------------------------------------

// PosError 携带出错位置（相对于流起始的绝对字节偏移）
//
// Error() 的格式为 `POS {pos} {msg}`
type PosError struct {
	Pos int64
	Err error
	Msg string
}

func NewPosError(pos int64, err error, format string, v ...interface{}) *PosError {
	return &PosError{
		Pos: pos,
		Err: err,
		Msg: fmt.Sprintf(format, v...),
	}
}

func (e *PosError) Error() string {
	return fmt.Sprintf("POS %d %s", e.Pos, e.Msg)
}

func (e *PosError) Unwrap() error {
	return e.Err
}

func NewErrFlvFormat(pos int64, format string, v ...interface{}) error {
	return NewPosError(pos, ErrFlvFormat, format, v...)
}

func NewErrFlvTruncated(pos int64, need, actual int, what string) error {
	return NewPosError(pos, ErrFlvTruncated, "stream ended before %s. need=%d, actual=%d", what, need, actual)
}

func NewErrAvcFormat(pos int64, format string, v ...interface{}) error {
	return NewPosError(pos, ErrAvcFormat, format, v...)
}
