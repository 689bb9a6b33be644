// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package innertest 构造单元测试使用的flv数据
package innertest

import (
	"bytes"

	"github.com/lalkit/flvavc/pkg/httpflv"
	"github.com/q191201771/naza/pkg/bele"
)

var (
	Sps   = []byte{0x67, 0x64, 0x00, 0x1f, 0xac, 0xd9, 0x40}
	Sps2  = []byte{0x67, 0x4d, 0x00, 0x28, 0x96, 0x35}
	Pps   = []byte{0x68, 0xeb, 0xe3, 0xcb}
	Pps2  = []byte{0x68, 0xee, 0x3c, 0x80}
	Sei   = []byte{0x06, 0x05, 0x02, 0xdc, 0x45, 0x80}
	Idr   = []byte{0x65, 0x88, 0x84, 0x00, 0x33}
	Slice = []byte{0x41, 0x9a, 0x24, 0x6c}
)

// AvcSeqHeaderPayload video tag body，avc packet type为0
func AvcSeqHeaderPayload(spss [][]byte, ppss [][]byte) []byte {
	return AvcSeqHeaderPayloadWithLengthSize(0xFF, spss, ppss)
}

func AvcSeqHeaderPayloadWithLengthSize(lengthSizeMinusOne uint8, spss [][]byte, ppss [][]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x17, 0x00, 0x00, 0x00, 0x00})
	buf.Write([]byte{0x01, 0x64, 0x00, 0x1f}) // configurationVersion, profile, compatibility, level
	buf.WriteByte(lengthSizeMinusOne)
	buf.WriteByte(0xE0 | uint8(len(spss)))
	for _, sps := range spss {
		var l [2]byte
		bele.BePutUint16(l[:], uint16(len(sps)))
		buf.Write(l[:])
		buf.Write(sps)
	}
	buf.WriteByte(uint8(len(ppss)))
	for _, pps := range ppss {
		var l [2]byte
		bele.BePutUint16(l[:], uint16(len(pps)))
		buf.Write(l[:])
		buf.Write(pps)
	}
	return buf.Bytes()
}

// AvcNaluPayload video tag body，avc packet type为1，每个nalu前加4字节长度
func AvcNaluPayload(key bool, nalus ...[]byte) []byte {
	var buf bytes.Buffer
	if key {
		buf.WriteByte(0x17)
	} else {
		buf.WriteByte(0x27)
	}
	buf.Write([]byte{0x01, 0x00, 0x00, 0x00})
	for _, nalu := range nalus {
		var l [4]byte
		bele.BePutUint32(l[:], uint32(len(nalu)))
		buf.Write(l[:])
		buf.Write(nalu)
	}
	return buf.Bytes()
}

func NewTag(t uint8, timestamp uint32, payload []byte) httpflv.Tag {
	raw := httpflv.PackHttpflvTag(t, timestamp, payload)
	return httpflv.Tag{
		Header: httpflv.TagHeader{
			Type:      t,
			DataSize:  uint32(len(payload)),
			Timestamp: timestamp,
		},
		Raw: raw[:httpflv.TagHeaderSize+len(payload)],
	}
}

func NewVideoTag(payload []byte) httpflv.Tag {
	return NewTag(httpflv.TagTypeVideo, 0, payload)
}

// PackFlv flv header + PreviousTagSize0 + 多个 (tag + prev tag size)
func PackFlv(tags ...httpflv.Tag) []byte {
	var buf bytes.Buffer
	buf.Write(httpflv.FlvHeader)
	for _, tag := range tags {
		buf.Write(tag.Raw)
		var l [4]byte
		bele.BePutUint32(l[:], uint32(len(tag.Raw)))
		buf.Write(l[:])
	}
	return buf.Bytes()
}

// WriteFlvFile 与 PackFlv 的内容相同，写入文件
func WriteFlvFile(filename string, tags ...httpflv.Tag) (err error) {
	var ffw httpflv.FlvFileWriter
	if err = ffw.Open(filename); err != nil {
		return
	}
	defer func() {
		if closeErr := ffw.Dispose(); err == nil {
			err = closeErr
		}
	}()
	if err = ffw.WriteFlvHeader(); err != nil {
		return
	}
	for _, tag := range tags {
		if err = ffw.WriteTag(tag); err != nil {
			return
		}
	}
	return
}
