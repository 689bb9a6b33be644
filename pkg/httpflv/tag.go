// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package httpflv

import (
	"github.com/q191201771/naza/pkg/bele"
)

type TagHeader struct {
	Type      uint8  // type
	DataSize  uint32 // body大小，不包含 header 和 prev tag size 字段
	Timestamp uint32 // 绝对时间戳，单位毫秒
	StreamId  uint32 // always 0
}

type Tag struct {
	Header TagHeader

	// DataOffset body在源流中的绝对位置
	DataOffset int64

	Raw []byte // 结构为 (11字节的 tag header) + (body)
}

func (tag *Tag) Payload() []byte {
	return tag.Raw[TagHeaderSize:]
}

func (tag *Tag) IsVideo() bool {
	return tag.Header.Type == TagTypeVideo
}

func (tag *Tag) IsAvc() bool {
	return tag.IsVideo() && len(tag.Raw) > TagHeaderSize && tag.Raw[TagHeaderSize]&0xF == CodecIdAvc
}

func (tag *Tag) IsAvcSeqHeader() bool {
	return tag.IsAvc() && len(tag.Raw) > TagHeaderSize+1 && tag.Raw[TagHeaderSize+1] == AvcPacketTypeSeqHeader
}

// PackHttpflvTag 打包一个序列化后的 tag 二进制buffer，包含 tag header，body，prev tag size
func PackHttpflvTag(t uint8, timestamp uint32, in []byte) []byte {
	out := make([]byte, TagHeaderSize+len(in)+prevTagSizeFieldSize)
	out[0] = t
	bele.BePutUint24(out[1:], uint32(len(in)))
	bele.BePutUint24(out[4:], timestamp&0xFFFFFF)
	out[7] = uint8(timestamp >> 24)
	out[8] = 0
	out[9] = 0
	out[10] = 0
	copy(out[11:], in)
	bele.BePutUint32(out[TagHeaderSize+len(in):], uint32(TagHeaderSize+len(in)))
	return out
}

func parseTagHeader(rawHeader []byte) TagHeader {
	var h TagHeader
	h.Type = rawHeader[0]
	h.DataSize = bele.BeUint24(rawHeader[1:])
	h.Timestamp = (uint32(rawHeader[7]) << 24) + bele.BeUint24(rawHeader[4:])
	h.StreamId = bele.BeUint24(rawHeader[8:])
	return h
}
