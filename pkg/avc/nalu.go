// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package avc

import (
	"fmt"
	"io"
)

// NaluKind nalu来自seq header中的sps表、pps表，还是来自nalu packet
type NaluKind uint8

const (
	NaluKindSps NaluKind = iota
	NaluKindPps
	NaluKindOther
)

func (k NaluKind) String() string {
	switch k {
	case NaluKindSps:
		return "SPS"
	case NaluKindPps:
		return "PPS"
	case NaluKindOther:
		return "OTHER"
	}
	return fmt.Sprintf("NaluKind(%d)", uint8(k))
}

// Nalu 一个已经转换成Annex-B格式的nalu
type Nalu struct {
	// Offset 长度字段在源流中的绝对位置
	Offset int64

	// Len
	//
	// NaluKindOther:               nalu长度，不包含4字节的长度字段
	// NaluKindSps, NaluKindPps:    nalu长度 + 2（2字节的长度字段）
	//
	Len uint32

	// Data 四字节start code + nalu
	Data []byte

	Kind NaluKind
}

func (n *Nalu) DebugString() string {
	return fmt.Sprintf("kind=%s, offset=%d, len=%d, data=%d", n.Kind, n.Offset, n.Len, len(n.Data))
}

// PackAnnexb start code + nalu
func PackAnnexb(nalu []byte) []byte {
	out := make([]byte, len(NaluStartCode)+len(nalu))
	copy(out, NaluStartCode)
	copy(out[len(NaluStartCode):], nalu)
	return out
}

// NaluIterator 逐个产出nalu，结束时返回 io.EOF
type NaluIterator interface {
	Next() (Nalu, error)
}

type NaluSliceIterator struct {
	nalus []Nalu
	index int
}

func NewNaluSliceIterator(nalus []Nalu) *NaluSliceIterator {
	return &NaluSliceIterator{nalus: nalus}
}

func (it *NaluSliceIterator) Next() (Nalu, error) {
	if it.index >= len(it.nalus) {
		return Nalu{}, io.EOF
	}
	it.index++
	return it.nalus[it.index-1], nil
}
