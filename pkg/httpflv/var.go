// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package httpflv

var (
	// FlvHeader 9字节的flv header，加上4字节值为0的 PreviousTagSize0
	FlvHeader = []byte{0x46, 0x4c, 0x56, 0x01, 0x05, 0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x00}

	flvMagic = []byte{0x46, 0x4c, 0x56, 0x01} // 'F', 'L', 'V', version 1
)

const (
	TagTypeAudio    uint8 = 8
	TagTypeVideo    uint8 = 9
	TagTypeMetadata uint8 = 18
)

const (
	CodecIdAvc uint8 = 7

	AvcPacketTypeSeqHeader uint8 = 0
	AvcPacketTypeNalu      uint8 = 1
)

const (
	flvHeaderSize        = 9
	TagHeaderSize        = 11
	prevTagSizeFieldSize = 4
)
