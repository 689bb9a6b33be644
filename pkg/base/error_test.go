// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"errors"
	"testing"

	"github.com/q191201771/naza/pkg/assert"
)

func TestPosError(t *testing.T) {
	err := NewErrFlvFormat(5, "Invalid data offset value. offset=%d", 3)
	assert.Equal(t, "POS 5 Invalid data offset value. offset=3", err.Error())
	assert.Equal(t, true, errors.Is(err, ErrFlvFormat))
	assert.Equal(t, false, errors.Is(err, ErrFlvTruncated))

	var pe *PosError
	assert.Equal(t, true, errors.As(err, &pe))
	assert.Equal(t, int64(5), pe.Pos)

	err = NewErrFlvTruncated(100, 8, 3, "tag data")
	assert.Equal(t, "POS 100 stream ended before tag data. need=8, actual=3", err.Error())
	assert.Equal(t, true, errors.Is(err, ErrFlvTruncated))
	assert.Equal(t, false, errors.Is(err, ErrFlvFormat))
}

func TestErrAvcFormat(t *testing.T) {
	err := NewErrAvcFormat(33, "lengthSizeMinusOne != 3 in SPS, not supported. value=0x%02x", 0xfc)
	assert.Equal(t, "POS 33 lengthSizeMinusOne != 3 in SPS, not supported. value=0xfc", err.Error())
	assert.Equal(t, true, errors.Is(err, ErrAvcFormat))
	assert.Equal(t, true, errors.Is(err, ErrFlvFormat))
}

func TestErrFlvHeaderTruncated(t *testing.T) {
	assert.Equal(t, true, errors.Is(ErrFlvHeaderTruncated, ErrFlvTruncated))
	assert.Equal(t, true, errors.Is(ErrFlvHeaderTruncated, ErrFlvFormat))
	assert.Equal(t, false, errors.Is(ErrFlvTruncated, ErrFlvFormat))
}

func TestGenUk(t *testing.T) {
	a := GenUkNaluStream()
	b := GenUkNaluStream()
	assert.Equal(t, false, a == b)
	assert.Equal(t, UkPreNaluStream, a[:len(UkPreNaluStream)])
	assert.Equal(t, UkPreHashTable, GenUkHashTable()[:len(UkPreHashTable)])
}
