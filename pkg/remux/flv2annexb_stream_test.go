// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package remux_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	mp4ffavc "github.com/Eyevinn/mp4ff/avc"
	"github.com/lalkit/flvavc/pkg/avc"
	"github.com/lalkit/flvavc/pkg/base"
	"github.com/lalkit/flvavc/pkg/httpflv"
	"github.com/lalkit/flvavc/pkg/innertest"
	"github.com/lalkit/flvavc/pkg/remux"
	"github.com/q191201771/naza/pkg/assert"
)

// 一个seq header tag（n个sps，m个pps），以及k个nalu tag，每个包含j个nalu
func buildFlv(n, m, k, j int) []byte {
	var spss, ppss [][]byte
	for i := 0; i < n; i++ {
		spss = append(spss, append(append([]byte{}, innertest.Sps...), byte(i)+1))
	}
	for i := 0; i < m; i++ {
		ppss = append(ppss, append(append([]byte{}, innertest.Pps...), byte(i)+1))
	}
	tags := []httpflv.Tag{innertest.NewVideoTag(innertest.AvcSeqHeaderPayload(spss, ppss))}
	for i := 0; i < k; i++ {
		var nalus [][]byte
		for l := 0; l < j; l++ {
			nalus = append(nalus, append(append([]byte{}, innertest.Slice...), byte(i), byte(l)+1))
		}
		tags = append(tags, innertest.NewTag(httpflv.TagTypeAudio, uint32(i), []byte{0xAF, 0x01, 0x21}))
		tags = append(tags, innertest.NewVideoTag(innertest.AvcNaluPayload(i == 0, nalus...)))
	}
	return innertest.PackFlv(tags...)
}

func readAll(s *remux.NaluStream) ([]avc.Nalu, error) {
	var ret []avc.Nalu
	for {
		nalu, err := s.Next()
		if err != nil {
			if err == io.EOF {
				return ret, nil
			}
			return ret, err
		}
		ret = append(ret, nalu)
	}
}

func TestNaluStream(t *testing.T) {
	golden := []struct {
		n, m, k, j int
	}{
		{1, 1, 1, 1},
		{2, 1, 3, 2},
		{3, 2, 5, 4},
		{1, 1, 0, 0},
	}
	for _, item := range golden {
		s := remux.NewNaluStream(bytes.NewReader(buildFlv(item.n, item.m, item.k, item.j)))
		nalus, err := readAll(s)
		assert.Equal(t, nil, err)
		assert.Equal(t, item.n+item.m+item.k*item.j, len(nalus))

		prevOffset := int64(-1)
		for i, nalu := range nalus {
			assert.Equal(t, avc.NaluStartCode, nalu.Data[:4])
			assert.Equal(t, true, nalu.Offset > prevOffset)
			prevOffset = nalu.Offset

			switch {
			case i < item.n:
				assert.Equal(t, avc.NaluKindSps, nalu.Kind)
			case i < item.n+item.m:
				assert.Equal(t, avc.NaluKindPps, nalu.Kind)
			default:
				assert.Equal(t, avc.NaluKindOther, nalu.Kind)
				idx := i - item.n - item.m
				assert.Equal(t, byte(idx/item.j), nalu.Data[4+len(innertest.Slice)])
				assert.Equal(t, byte(idx%item.j)+1, nalu.Data[4+len(innertest.Slice)+1])
			}
		}

		_, err = s.Next()
		assert.Equal(t, io.EOF, err)
	}
}

func TestNaluStreamEndToEnd(t *testing.T) {
	b := []byte{
		0x46, 0x4C, 0x56, 0x01, 0x05, 0x00, 0x00, 0x00, 0x09,
		0x00, 0x00, 0x00, 0x00,
		0x09, 0x00, 0x00, 0x0B, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x27, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x65, 0x88,
	}
	var out bytes.Buffer
	n, err := remux.ExtractAnnexb(remux.NewNaluStream(bytes.NewReader(b)), &out)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x01, 0x65, 0x88}, out.Bytes())

	nalus, err := readAll(remux.NewNaluStream(bytes.NewReader(b)))
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(nalus))
	assert.Equal(t, int64(29), nalus[0].Offset)
	assert.Equal(t, uint32(2), nalus[0].Len)

	// 0xAF的低4位不是avc的codec id
	b[24] = 0xAF
	out.Reset()
	n, err = remux.ExtractAnnexb(remux.NewNaluStream(bytes.NewReader(b)), &out)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, out.Len())
}

func TestNaluStreamRewind(t *testing.T) {
	b := buildFlv(1, 1, 2, 2)
	r := bytes.NewReader(b)
	_, _ = r.Seek(int64(len(b)/2), io.SeekStart)

	nalus, err := readAll(remux.NewNaluStream(r))
	assert.Equal(t, nil, err)
	assert.Equal(t, 6, len(nalus))
}

func TestNaluStreamError(t *testing.T) {
	// header
	s := remux.NewNaluStream(bytes.NewReader([]byte("not a flv file")))
	_, err := s.Next()
	assert.Equal(t, true, errors.Is(err, base.ErrFlvFormat))
	_, err2 := s.Next()
	assert.Equal(t, err, err2)

	// seq header的lengthSizeMinusOne
	tag := innertest.NewVideoTag(innertest.AvcSeqHeaderPayloadWithLengthSize(0xFE, [][]byte{innertest.Sps}, [][]byte{innertest.Pps}))
	s = remux.NewNaluStream(bytes.NewReader(innertest.PackFlv(tag)))
	_, err = s.Next()
	assert.Equal(t, true, errors.Is(err, base.ErrFlvFormat))

	// 在第二个tag中出错，第一个tag中的nalu已经产出
	tag1 := innertest.NewVideoTag(innertest.AvcNaluPayload(true, innertest.Idr))
	tag2 := innertest.NewVideoTag(innertest.AvcNaluPayload(false, innertest.Slice)[:7])
	s = remux.NewNaluStream(bytes.NewReader(innertest.PackFlv(tag1, tag2)))
	nalus, err := readAll(s)
	assert.Equal(t, 1, len(nalus))
	assert.Equal(t, true, errors.Is(err, base.ErrFlvTruncated))

	// tag过大
	b := append([]byte{}, httpflv.FlvHeader...)
	b = append(b, 0x09, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00)
	_, err = remux.NewNaluStream(bytes.NewReader(b)).Next()
	assert.Equal(t, true, errors.Is(err, base.ErrFlvFormat))

	s = remux.NewNaluStream(bytes.NewReader(innertest.PackFlv(tag1)), func(option *remux.NaluStreamOption) {
		option.MaxTagDataSize = 4
	})
	_, err = s.Next()
	assert.Equal(t, true, errors.Is(err, base.ErrFlvFormat))
}

func TestNaluStreamTruncatedTail(t *testing.T) {
	tag1 := innertest.NewVideoTag(innertest.AvcNaluPayload(true, innertest.Idr))
	tag2 := innertest.NewVideoTag(innertest.AvcNaluPayload(false, innertest.Slice))
	b := innertest.PackFlv(tag1, tag2)
	b = b[:len(b)-4-2]

	nalus, err := readAll(remux.NewNaluStream(bytes.NewReader(b)))
	assert.Equal(t, 1, len(nalus))
	assert.Equal(t, true, errors.Is(err, base.ErrFlvTruncated))

	nalus, err = readAll(remux.NewNaluStream(bytes.NewReader(b), func(option *remux.NaluStreamOption) {
		option.TolerateTruncatedTail = true
	}))
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(nalus))
}

func TestNaluStreamAnnexbOracle(t *testing.T) {
	tags := []httpflv.Tag{
		innertest.NewVideoTag(innertest.AvcSeqHeaderPayload([][]byte{innertest.Sps}, [][]byte{innertest.Pps})),
		innertest.NewVideoTag(innertest.AvcNaluPayload(true, innertest.Sei, innertest.Idr)),
		innertest.NewVideoTag(innertest.AvcNaluPayload(false, innertest.Slice)),
	}
	var out bytes.Buffer
	n, err := remux.ExtractAnnexb(remux.NewNaluStream(bytes.NewReader(innertest.PackFlv(tags...))), &out)
	assert.Equal(t, nil, err)
	assert.Equal(t, 5, n)

	nalus := mp4ffavc.ExtractNalusFromByteStream(out.Bytes())
	assert.Equal(t, 5, len(nalus))
	expected := [][]byte{innertest.Sps, innertest.Pps, innertest.Sei, innertest.Idr, innertest.Slice}
	expectedTypes := []mp4ffavc.NaluType{mp4ffavc.NALU_SPS, mp4ffavc.NALU_PPS, mp4ffavc.NALU_SEI, mp4ffavc.NALU_IDR, mp4ffavc.NALU_NON_IDR}
	for i := range nalus {
		assert.Equal(t, expected[i], nalus[i])
		assert.Equal(t, expectedTypes[i], mp4ffavc.GetNaluType(nalus[i][0]))
	}
}
