// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package remux

import (
	"io"

	"github.com/lalkit/flvavc/pkg/avc"
	"github.com/lalkit/flvavc/pkg/base"
	"github.com/lalkit/flvavc/pkg/httpflv"
	"github.com/q191201771/naza/pkg/bele"
)

// TagNaluExtractor 将一个flv video tag中的AVCC格式的nalu，逐个转换成Annex-B格式
//
// video tag body的结构：
//
//   1字节 frame type(高4位) + codec id(低4位)，codec id为7时才继续解析
//   1字节 avc packet type
//   packet type为1（nalu）:
//     3字节 composition time
//     重复 [4字节长度 + nalu]，直到body结束
//   packet type为0（seq header）:
//     3字节 composition time（总是0）
//     configurationVersion, AVCProfileIndication, profile_compatibility, AVCLevelIndication 各1字节
//     1字节 lengthSizeMinusOne，只支持0xFF
//     1字节 numOfSequenceParameterSets（低5位），重复 [2字节长度 + sps]
//     1字节 numOfPictureParameterSets，重复 [2字节长度 + pps]
//   其他packet type不产出nalu
//
// 非video tag不产出nalu。
//
type TagNaluExtractor struct {
	payload []byte
	base    int64 // payload[0]在源流中的绝对位置
	index   int

	state extractorState
	left  int // sps表或pps表中剩余的个数
}

type extractorState uint8

const (
	extractorStateInit extractorState = iota
	extractorStateNaluPacket
	extractorStateSpsTable
	extractorStatePpsTable
	extractorStateDone
)

func NewTagNaluExtractor(tag httpflv.Tag) *TagNaluExtractor {
	e := &TagNaluExtractor{
		payload: tag.Payload(),
		base:    tag.DataOffset,
	}
	if !tag.IsVideo() {
		e.state = extractorStateDone
	}
	return e
}

// Next 返回下一个nalu，没有更多nalu时返回 io.EOF
//
// 出错后，后续调用都返回 io.EOF。
//
func (e *TagNaluExtractor) Next() (nalu avc.Nalu, err error) {
	for {
		switch e.state {
		case extractorStateInit:
			if err = e.parsePrefix(); err != nil {
				e.state = extractorStateDone
				return
			}
		case extractorStateNaluPacket:
			if e.index >= len(e.payload) {
				e.state = extractorStateDone
				continue
			}
			if nalu, err = e.readAvccNalu(); err != nil {
				e.state = extractorStateDone
			}
			return
		case extractorStateSpsTable:
			if e.left == 0 {
				var ppsCount uint8
				if ppsCount, err = e.readUint8("pps count"); err != nil {
					e.state = extractorStateDone
					return
				}
				e.left = int(ppsCount)
				e.state = extractorStatePpsTable
				continue
			}
			e.left--
			if nalu, err = e.readTableNalu(avc.NaluKindSps); err != nil {
				e.state = extractorStateDone
			}
			return
		case extractorStatePpsTable:
			if e.left == 0 {
				e.state = extractorStateDone
				continue
			}
			e.left--
			if nalu, err = e.readTableNalu(avc.NaluKindPps); err != nil {
				e.state = extractorStateDone
			}
			return
		default:
			return nalu, io.EOF
		}
	}
}

// ---------------------------------------------------------------------------------------------------------------------

func (e *TagNaluExtractor) parsePrefix() error {
	frameTypeAndCodecId, err := e.readUint8("frame type and codec id")
	if err != nil {
		return err
	}
	if frameTypeAndCodecId&0xF != httpflv.CodecIdAvc {
		e.state = extractorStateDone
		return nil
	}

	avcPacketType, err := e.readUint8("avc packet type")
	if err != nil {
		return err
	}

	switch avcPacketType {
	case httpflv.AvcPacketTypeNalu:
		if err = e.skip(3, "composition time"); err != nil {
			return err
		}
		e.state = extractorStateNaluPacket
	case httpflv.AvcPacketTypeSeqHeader:
		if err = e.skip(3, "composition time"); err != nil {
			return err
		}
		// configurationVersion, AVCProfileIndication, profile_compatibility, AVCLevelIndication
		if err = e.skip(4, "avc decoder configuration record"); err != nil {
			return err
		}

		pos := e.pos()
		lengthSizeMinusOne, err := e.readUint8("length size minus one")
		if err != nil {
			return err
		}
		if lengthSizeMinusOne != avc.LengthSizeMinusOneFourBytes {
			return base.NewErrAvcFormat(pos, "lengthSizeMinusOne != 3 in SPS, not supported. value=0x%02x", lengthSizeMinusOne)
		}

		spsCount, err := e.readUint8("sps count")
		if err != nil {
			return err
		}
		e.left = int(spsCount & 0x1F)
		e.state = extractorStateSpsTable
	default:
		e.state = extractorStateDone
	}
	return nil
}

func (e *TagNaluExtractor) readAvccNalu() (nalu avc.Nalu, err error) {
	offset := e.pos()
	b, err := e.read(4, "nalu length")
	if err != nil {
		return
	}
	naluLen := bele.BeUint32(b)
	b, err = e.read(naluLen, "nalu data")
	if err != nil {
		return
	}
	return avc.Nalu{
		Offset: offset,
		Len:    naluLen,
		Data:   avc.PackAnnexb(b),
		Kind:   avc.NaluKindOther,
	}, nil
}

func (e *TagNaluExtractor) readTableNalu(kind avc.NaluKind) (nalu avc.Nalu, err error) {
	offset := e.pos()
	b, err := e.read(2, "parameter set length")
	if err != nil {
		return
	}
	psLen := uint32(bele.BeUint16(b))
	b, err = e.read(psLen, "parameter set data")
	if err != nil {
		return
	}
	return avc.Nalu{
		Offset: offset,
		Len:    psLen + 2,
		Data:   avc.PackAnnexb(b),
		Kind:   kind,
	}, nil
}

func (e *TagNaluExtractor) pos() int64 {
	return e.base + int64(e.index)
}

// read 返回的内存块引用payload
func (e *TagNaluExtractor) read(n uint32, what string) ([]byte, error) {
	remain := len(e.payload) - e.index
	if uint64(n) > uint64(remain) {
		return nil, base.NewErrFlvTruncated(e.pos(), int(n), remain, what)
	}
	b := e.payload[e.index : e.index+int(n)]
	e.index += int(n)
	return b, nil
}

func (e *TagNaluExtractor) readUint8(what string) (uint8, error) {
	b, err := e.read(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (e *TagNaluExtractor) skip(n uint32, what string) error {
	_, err := e.read(n, what)
	return err
}
