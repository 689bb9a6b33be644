// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package httpflv

import (
	"os"

	"github.com/lalkit/flvavc/pkg/base"
	"github.com/q191201771/naza/pkg/bele"
)

type FlvFileWriter struct {
	fp *os.File
}

func (ffw *FlvFileWriter) Open(filename string) (err error) {
	ffw.fp, err = os.Create(filename)
	return
}

func (ffw *FlvFileWriter) WriteRaw(b []byte) (err error) {
	if ffw.fp == nil {
		return base.ErrFileNotExist
	}
	_, err = ffw.fp.Write(b)
	return
}

func (ffw *FlvFileWriter) WriteFlvHeader() (err error) {
	return ffw.WriteRaw(FlvHeader)
}

// WriteTag 写入tag header，body，以及紧随其后的prev tag size
func (ffw *FlvFileWriter) WriteTag(tag Tag) (err error) {
	if err = ffw.WriteRaw(tag.Raw); err != nil {
		return
	}
	var prevTagSize [prevTagSizeFieldSize]byte
	bele.BePutUint32(prevTagSize[:], uint32(len(tag.Raw)))
	return ffw.WriteRaw(prevTagSize[:])
}

func (ffw *FlvFileWriter) Dispose() error {
	if ffw.fp == nil {
		return base.ErrFileNotExist
	}
	return ffw.fp.Close()
}
