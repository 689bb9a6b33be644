// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/nazalog"

var Log = nazalog.GetGlobalLogger()

// ----- httpflv --------------------
var (
	// MaxTagDataSize tag body大小的上限，单位字节
	//
	// 超过这个值，大概率是从错误的位置开始解析了（比如文件中间有脏数据），继续读会申请一块巨大且无意义的内存。
	//
	MaxTagDataSize uint32 = 10485760
)

// ----- remux --------------------
var (
	// DumpNaluNum 日志级别为debug时，每个NaluStream最多打印多少个nalu的hex
	DumpNaluNum = 8

	// SegmentFileSuffix 分段提取时，输出文件名的后缀
	SegmentFileSuffix = ".h264"
)
