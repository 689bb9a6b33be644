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
)

type NaluStreamOption struct {
	MaxTagDataSize        uint32 // 参见 httpflv.FlvFileReaderOption
	TolerateTruncatedTail bool   // 参见 httpflv.FlvFileReaderOption
	DumpNaluNum           int    // debug日志级别时，打印前多少个nalu的hex
}

var defaultNaluStreamOption = NaluStreamOption{
	MaxTagDataSize:        0,
	TolerateTruncatedTail: false,
}

type ModNaluStreamOption func(option *NaluStreamOption)

// NaluStream 整个flv流中的所有nalu，顺序为tag在文件中的顺序，tag内部为编码顺序
//
// 第一次调用 Next 时回到流的起始位置并解析flv header，之后只向前读。
//
type NaluStream struct {
	uniqueKey string
	option    NaluStreamOption

	ffr       httpflv.FlvFileReader
	extractor *TagNaluExtractor
	logDump   base.LogDump

	headerDone bool
	err        error // 一旦非nil（包括io.EOF），后续 Next 都直接返回它

	tagCount  int
	naluCount int
}

func NewNaluStream(rs io.ReadSeeker, modOptions ...ModNaluStreamOption) *NaluStream {
	option := defaultNaluStreamOption
	option.DumpNaluNum = base.DumpNaluNum
	for _, fn := range modOptions {
		fn(&option)
	}

	s := &NaluStream{
		uniqueKey: base.GenUkNaluStream(),
		option:    option,
		logDump:   base.NewLogDump(base.Log, option.DumpNaluNum, 32),
	}
	s.ffr.OpenReader(rs, func(ffrOption *httpflv.FlvFileReaderOption) {
		ffrOption.MaxTagDataSize = option.MaxTagDataSize
		ffrOption.TolerateTruncatedTail = option.TolerateTruncatedTail
	})
	return s
}

// Next 返回下一个nalu，流正常结束时返回 io.EOF
func (s *NaluStream) Next() (nalu avc.Nalu, err error) {
	if s.err != nil {
		return nalu, s.err
	}

	if !s.headerDone {
		h, err := s.ffr.ReadFlvHeader()
		if err != nil {
			return nalu, s.fail(err)
		}
		s.headerDone = true
		base.Log.Debugf("[%s] read flv header. version=%d, audio=%t, video=%t, offset=%d",
			s.uniqueKey, h.Version, h.HasAudio(), h.HasVideo(), h.DataOffset)
	}

	for {
		if s.extractor != nil {
			nalu, err = s.extractor.Next()
			if err == nil {
				s.naluCount++
				if s.logDump.ShouldDump() {
					s.logDump.Dumpf(nalu.Data, "[%s] nalu. index=%d, %s", s.uniqueKey, s.naluCount, nalu.DebugString())
				}
				return nalu, nil
			}
			if err != io.EOF {
				return nalu, s.fail(err)
			}
			s.extractor = nil
		}

		tag, err := s.ffr.ReadTag()
		if err != nil {
			if err == io.EOF {
				base.Log.Debugf("[%s] EOF. tags=%d, nalus=%d", s.uniqueKey, s.tagCount, s.naluCount)
			}
			return avc.Nalu{}, s.fail(err)
		}
		s.tagCount++
		s.extractor = NewTagNaluExtractor(tag)
	}
}

func (s *NaluStream) UniqueKey() string {
	return s.uniqueKey
}

// ---------------------------------------------------------------------------------------------------------------------

func (s *NaluStream) fail(err error) error {
	if err != io.EOF {
		base.Log.Errorf("[%s] read nalu failed. err=%+v", s.uniqueKey, err)
	}
	s.err = err
	return err
}
