// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

// Package avctrace 通过nalu内容的hash，在多个flv文件之间对nalu做关联
//
// 典型场景是排查转发服务器的重复推流问题：把服务器输出的流（target）中的每个nalu，
// 与若干个输入流（source）中的nalu做比对，看它来自哪个输入的哪个位置，以及是否重复出现。
//
package avctrace

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lalkit/flvavc/pkg/avc"
	"github.com/q191201771/naza/pkg/nazamd5"
)

// Digest nalu的内容hash（md5，hex字符串），包含start code
func Digest(b []byte) string {
	return nazamd5.Md5(b)
}

type NaluHash struct {
	// Label e.g. `src1[3] _IDR_`
	Label      string
	Index      int    // 在所属文件中的序号，从1开始
	Annotation string // IDR, SEI, SPS, PPS 或空

	Offset int64
	Len    uint32
	Hash   string
}

// End 最后一个字节的位置
func (h *NaluHash) End() int64 {
	return h.Offset + int64(h.Len) - 1
}

func NewNaluHash(nalu avc.Nalu, sourceLabel string, index int) NaluHash {
	annotation := avc.Annotation(nalu.Data)
	return NaluHash{
		Label:      MakeLabel(sourceLabel, index, annotation),
		Index:      index,
		Annotation: annotation,
		Offset:     nalu.Offset,
		Len:        nalu.Len,
		Hash:       Digest(nalu.Data),
	}
}

// MakeLabel e.g. `src1[3]`，`src1[1] _SPS_`
func MakeLabel(sourceLabel string, index int, annotation string) string {
	label := sourceLabel + "[" + strconv.Itoa(index) + "]"
	if annotation != "" {
		label += " _" + annotation + "_"
	}
	return label
}

// LabelNalus 按顺序计算it中每个nalu的hash
func LabelNalus(it avc.NaluIterator, sourceLabel string) ([]NaluHash, error) {
	var ret []NaluHash
	for index := 1; ; index++ {
		nalu, err := it.Next()
		if err != nil {
			if err == io.EOF {
				return ret, nil
			}
			return ret, err
		}
		ret = append(ret, NewNaluHash(nalu, sourceLabel, index))
	}
}

// ---------------------------------------------------------------------------------------------------------------------

// Duplicate Aggregate 时遇到的已经存在的hash，不是错误
type Duplicate struct {
	Entry  NaluHash // 后出现的
	Stored NaluHash // 表中已有的
}

func (d Duplicate) String() string {
	return fmt.Sprintf("%s is the same as %s", d.Entry.Label, d.Stored.Label)
}

// TraceResult target中一个nalu的查找结果
type TraceResult struct {
	Target NaluHash
	Source NaluHash // Found 为true时有效
	Found  bool
}

func (r TraceResult) String() string {
	if !r.Found {
		return "Not Found"
	}
	return fmt.Sprintf("from %d to %d  <--  %s from %d to %d",
		r.Target.Offset, r.Target.End(), r.Source.Label, r.Source.Offset, r.Source.End())
}
