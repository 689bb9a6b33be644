// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package httpflv

import (
	"bytes"
	"io"
	"os"

	"github.com/lalkit/flvavc/pkg/base"
	"github.com/q191201771/naza/pkg/bele"
	"github.com/q191201771/naza/pkg/nazaerrors"
)

type FlvFileReaderOption struct {
	// MaxTagDataSize tag body大小上限，为0时使用 base.MaxTagDataSize
	MaxTagDataSize uint32

	// TolerateTruncatedTail 最后一个tag的body不完整时的行为
	//
	// false: 返回 base.ErrFlvTruncated
	// true:  当作正常结束，返回 io.EOF，并打印warn日志
	//
	TolerateTruncatedTail bool
}

type ModFlvFileReaderOption func(option *FlvFileReaderOption)

type FlvFileHeader struct {
	Version    uint8
	Flags      uint8
	DataOffset uint32 // body的起始位置，至少为9
}

func (h FlvFileHeader) HasAudio() bool {
	return h.Flags&0x04 != 0
}

func (h FlvFileHeader) HasVideo() bool {
	return h.Flags&0x01 != 0
}

// FlvFileReader
//
// 只向前读。唯一的一次回退发生在 ReadFlvHeader 开始时，回到流的起始位置。
//
type FlvFileReader struct {
	option FlvFileReaderOption

	fp  *os.File // 通过 Open 打开时才持有，由 Dispose 关闭
	rs  io.ReadSeeker
	pos int64 // 已经从 rs 中消费的字节数，也即下一个字节的绝对位置
}

func (ffr *FlvFileReader) Open(filename string, modOptions ...ModFlvFileReaderOption) (err error) {
	ffr.fp, err = os.Open(filename)
	if err != nil {
		return err
	}
	ffr.OpenReader(ffr.fp, modOptions...)
	return nil
}

// OpenReader 使用外部传入的流，Dispose 不会关闭它
func (ffr *FlvFileReader) OpenReader(rs io.ReadSeeker, modOptions ...ModFlvFileReaderOption) {
	ffr.rs = rs
	ffr.pos = 0
	for _, fn := range modOptions {
		fn(&ffr.option)
	}
	if ffr.option.MaxTagDataSize == 0 {
		ffr.option.MaxTagDataSize = base.MaxTagDataSize
	}
}

// ReadFlvHeader 回到流的起始位置，读取并校验flv header，跳过header和body之间的字节
func (ffr *FlvFileReader) ReadFlvHeader() (h FlvFileHeader, err error) {
	if ffr.rs == nil {
		return h, nazaerrors.Wrap(base.ErrFileNotExist)
	}
	if _, err = ffr.rs.Seek(0, io.SeekStart); err != nil {
		return h, nazaerrors.Wrap(err)
	}
	ffr.pos = 0

	raw := make([]byte, flvHeaderSize)
	n, err := ffr.readFull(raw)
	if err != nil {
		return h, ffr.wrapHeaderTruncated(err, flvHeaderSize, n, "flv header")
	}

	if !bytes.Equal(raw[:4], flvMagic) {
		return h, base.NewErrFlvFormat(0, "Not a FLV stream.")
	}
	h.Version = raw[3]
	h.Flags = raw[4]
	h.DataOffset = bele.BeUint32(raw[5:])
	if h.DataOffset < flvHeaderSize {
		return h, base.NewErrFlvFormat(5, "Invalid data offset value. offset=%d", h.DataOffset)
	}

	if dummySize := int64(h.DataOffset) - flvHeaderSize; dummySize > 0 {
		m, err := io.CopyN(io.Discard, ffr.rs, dummySize)
		ffr.pos += m
		if err != nil {
			return h, ffr.wrapHeaderTruncated(err, int(dummySize), int(m), "flv body")
		}
	}

	return h, nil
}

// ReadTag
//
// 读到流结尾时返回 io.EOF。
// 在 prev tag size 或 tag header 处结束的流都属于正常结束。
//
func (ffr *FlvFileReader) ReadTag() (tag Tag, err error) {
	if ffr.rs == nil {
		return tag, nazaerrors.Wrap(base.ErrFileNotExist)
	}

	// prev tag size, 值不使用
	var prevTagSize [prevTagSizeFieldSize]byte
	n, err := ffr.readFull(prevTagSize[:])
	if err != nil {
		if isEof(err) {
			if n != 0 {
				base.Log.Warnf("stream ended inside prev tag size field. pos=%d, n=%d", ffr.pos, n)
			}
			return tag, io.EOF
		}
		return tag, nazaerrors.Wrap(err)
	}

	rawHeader := make([]byte, TagHeaderSize)
	n, err = ffr.readFull(rawHeader)
	if err != nil {
		if isEof(err) {
			if n != 0 {
				base.Log.Warnf("stream ended inside tag header. pos=%d, n=%d", ffr.pos, n)
			}
			return tag, io.EOF
		}
		return tag, nazaerrors.Wrap(err)
	}
	header := parseTagHeader(rawHeader)
	tag.Header = header
	tag.DataOffset = ffr.pos

	// tag过大，大概率是解析位置错了
	if header.DataSize > ffr.option.MaxTagDataSize {
		return Tag{}, base.NewErrFlvFormat(ffr.pos, "Tag data > %d, maybe an error. size=%d", ffr.option.MaxTagDataSize, header.DataSize)
	}

	tag.Raw = make([]byte, TagHeaderSize+int(header.DataSize))
	copy(tag.Raw, rawHeader)
	n, err = ffr.readFull(tag.Raw[TagHeaderSize:])
	if err != nil {
		if isEof(err) && ffr.option.TolerateTruncatedTail {
			base.Log.Warnf("stream ended inside tag data, treat as end. pos=%d, need=%d, actual=%d",
				ffr.pos, header.DataSize, n)
			return Tag{}, io.EOF
		}
		return Tag{}, ffr.wrapTruncated(err, int(header.DataSize), n, "tag data")
	}

	return tag, nil
}

// Pos 下一个将要读取的字节在流中的绝对位置
func (ffr *FlvFileReader) Pos() int64 {
	return ffr.pos
}

func (ffr *FlvFileReader) Dispose() error {
	if ffr.fp == nil {
		return nil
	}
	err := ffr.fp.Close()
	ffr.fp = nil
	return err
}

// ---------------------------------------------------------------------------------------------------------------------

func (ffr *FlvFileReader) readFull(b []byte) (int, error) {
	n, err := io.ReadFull(ffr.rs, b)
	ffr.pos += int64(n)
	return n, err
}

func (ffr *FlvFileReader) wrapTruncated(err error, need, actual int, what string) error {
	if isEof(err) {
		return base.NewErrFlvTruncated(ffr.pos, need, actual, what)
	}
	return nazaerrors.Wrap(err)
}

// wrapHeaderTruncated header不完整时，既是 base.ErrFlvTruncated 也是 base.ErrFlvFormat
func (ffr *FlvFileReader) wrapHeaderTruncated(err error, need, actual int, what string) error {
	if isEof(err) {
		return base.NewPosError(ffr.pos, base.ErrFlvHeaderTruncated, "stream ended before %s. need=%d, actual=%d", what, need, actual)
	}
	return nazaerrors.Wrap(err)
}

func isEof(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
