// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package avc

// Annex-B start code，四字节形式
var NaluStartCode = []byte{0x0, 0x0, 0x0, 0x1}

var NaluUintTypeMapping = map[uint8]string{
	1: "SLICE",
	5: "IDR",
	6: "SEI",
	7: "SPS",
	8: "PPS",
	9: "AUD",
}

const (
	NaluUnitTypeSlice    uint8 = 1
	NaluUnitTypeIdrSlice uint8 = 5
	NaluUnitTypeSei      uint8 = 6
	NaluUnitTypeSps      uint8 = 7
	NaluUnitTypePps      uint8 = 8
	NaluUnitTypeAud      uint8 = 9
)

// lengthSizeMinusOne字段的唯一支持值，即nalu长度字段为4字节（高6位是保留位，全1）
const LengthSizeMinusOneFourBytes uint8 = 0xFF

// CalcNaluType
//
// @param nalu: 不包含start code的nalu
//
func CalcNaluType(nalu []byte) uint8 {
	return nalu[0] & 0x1f
}

func CalcNaluTypeReadable(nalu []byte) string {
	t := nalu[0] & 0x1f
	ret, ok := NaluUintTypeMapping[t]
	if !ok {
		return "unknown"
	}
	return ret
}

// Annotation 诊断输出时使用的nalu类型标注，只区分IDR、SEI、SPS、PPS，其他类型返回空字符串
//
// @param annexb: 包含四字节start code的nalu
//
func Annotation(annexb []byte) string {
	if len(annexb) <= len(NaluStartCode) {
		return ""
	}
	switch CalcNaluType(annexb[len(NaluStartCode):]) {
	case NaluUnitTypeIdrSlice:
		return "IDR"
	case NaluUnitTypeSei:
		return "SEI"
	case NaluUnitTypeSps:
		return "SPS"
	case NaluUnitTypePps:
		return "PPS"
	}
	return ""
}
