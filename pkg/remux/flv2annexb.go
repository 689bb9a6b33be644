// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package remux

import (
	"fmt"
	"io"
	"os"

	"github.com/lalkit/flvavc/pkg/avc"
	"github.com/lalkit/flvavc/pkg/base"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

// SegmentOpener 打开第index个分段的输出，index从1开始
type SegmentOpener func(index int) (io.WriteCloser, error)

// ExtractAnnexb 按顺序将所有nalu写入w，得到一个连续的H264裸流
//
// @return n: 写入的nalu个数
//
func ExtractAnnexb(it avc.NaluIterator, w io.Writer) (n int, err error) {
	for {
		nalu, err := it.Next()
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if _, err = w.Write(nalu.Data); err != nil {
			return n, nazaerrors.Wrap(err)
		}
		n++
	}
}

// ExtractAnnexbSegmented 遇到sps时切分出一个新的输出
//
// 写第一个nalu之前打开第1个分段，之后每遇到一个 avc.NaluKindSps 的nalu，先关闭当前分段，再打开下一个。
// 有的解码器假设整个流只有一组sps，切分后每个分段只包含一组。
//
// 任何路径退出时，已打开的分段都会被关闭。
//
// @return segments: 打开过的分段个数
//
func ExtractAnnexbSegmented(it avc.NaluIterator, open SegmentOpener) (segments int, err error) {
	var w io.WriteCloser
	defer func() {
		if w == nil {
			return
		}
		if closeErr := w.Close(); closeErr != nil {
			if err == nil {
				err = nazaerrors.Wrap(closeErr)
			} else {
				err = nazaerrors.CombineErrors(err, nazaerrors.Wrap(closeErr))
			}
		}
	}()

	for {
		nalu, nextErr := it.Next()
		if nextErr != nil {
			if nextErr == io.EOF {
				return segments, nil
			}
			return segments, nextErr
		}

		if w == nil || nalu.Kind == avc.NaluKindSps {
			if w != nil {
				closeErr := w.Close()
				w = nil
				if closeErr != nil {
					return segments, nazaerrors.Wrap(closeErr)
				}
			}
			segments++
			nw, openErr := open(segments)
			if openErr != nil {
				return segments, openErr
			}
			w = nw
		}

		if _, err = w.Write(nalu.Data); err != nil {
			return segments, nazaerrors.Wrap(err)
		}
	}
}

// ExtractAnnexbFile 从flv文件中提取一个连续的H264裸流文件
func ExtractAnnexbFile(inFileName, outFileName string, modOptions ...ModNaluStreamOption) (err error) {
	in, err := os.Open(inFileName)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outFileName)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	s := NewNaluStream(in, modOptions...)
	n, err := ExtractAnnexb(s, out)
	base.Log.Infof("[%s] extract done. in=%s, out=%s, nalus=%d, err=%+v", s.UniqueKey(), inFileName, outFileName, n, err)
	return err
}

// ExtractAnnexbSegmentedFile 从flv文件中提取H264裸流，在每个sps处切分
//
// 输出文件名为 {outPrefix}_1{base.SegmentFileSuffix}, {outPrefix}_2{base.SegmentFileSuffix}, ...
//
func ExtractAnnexbSegmentedFile(inFileName, outPrefix string, modOptions ...ModNaluStreamOption) error {
	in, err := os.Open(inFileName)
	if err != nil {
		return err
	}
	defer in.Close()

	s := NewNaluStream(in, modOptions...)
	segments, err := ExtractAnnexbSegmented(s, func(index int) (io.WriteCloser, error) {
		filename := SegmentFileName(outPrefix, index)
		base.Log.Debugf("[%s] open segment. file=%s", s.UniqueKey(), filename)
		return os.Create(filename)
	})
	base.Log.Infof("[%s] extract segmented done. in=%s, prefix=%s, segments=%d, err=%+v",
		s.UniqueKey(), inFileName, outPrefix, segments, err)
	return err
}

func SegmentFileName(outPrefix string, index int) string {
	return fmt.Sprintf("%s_%d%s", outPrefix, index, base.SegmentFileSuffix)
}
