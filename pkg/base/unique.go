// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import "github.com/q191201771/naza/pkg/unique"

const (
	UkPreNaluStream = "NALUSTREAM"
	UkPreHashTable  = "HASHTABLE"
)

func GenUkNaluStream() string {
	return siUkNaluStream.GenUniqueKey()
}

func GenUkHashTable() string {
	return siUkHashTable.GenUniqueKey()
}

var (
	siUkNaluStream *unique.SingleGenerator
	siUkHashTable  *unique.SingleGenerator
)

func init() {
	siUkNaluStream = unique.NewSingleGenerator(UkPreNaluStream)
	siUkHashTable = unique.NewSingleGenerator(UkPreHashTable)
}
