// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"encoding/hex"
	"fmt"

	"github.com/q191201771/naza/pkg/nazabytes"
	"github.com/q191201771/naza/pkg/nazalog"
)

type LogDump struct {
	log         nazalog.Logger
	debugMaxNum int
	hexMaxLen   int

	debugCount int
}

// NewLogDump
//
// @param debugMaxNum: 日志最小级别为debug时，使用debug打印日志次数的阈值
//
// @param hexMaxLen: Dumpf 打印hex时，最多打印多少字节
//
func NewLogDump(log nazalog.Logger, debugMaxNum int, hexMaxLen int) LogDump {
	return LogDump{
		log:         log,
		debugMaxNum: debugMaxNum,
		hexMaxLen:   hexMaxLen,
	}
}

func (ld *LogDump) ShouldDump() bool {
	switch ld.log.GetOption().Level {
	case nazalog.LevelTrace:
		return true
	case nazalog.LevelDebug:
		if ld.debugCount >= ld.debugMaxNum {
			return false
		}
		ld.debugCount++
		return true
	}
	return false
}

// Dumpf 打印日志，并在末尾追加 b 的前 hexMaxLen 个字节的hex
//
// 调用之前需调用 ShouldDump ，避免不需要打印日志时构造实参的开销
func (ld *LogDump) Dumpf(b []byte, format string, v ...interface{}) {
	ld.log.Out(ld.log.GetOption().Level, 3, fmt.Sprintf(format, v...)+"\n"+hex.Dump(nazabytes.Prefix(b, ld.hexMaxLen)))
}
