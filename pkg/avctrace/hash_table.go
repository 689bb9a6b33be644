// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package avctrace

import (
	"github.com/lalkit/flvavc/pkg/base"
)

// HashTable hash到第一次出现的 NaluHash 的映射
//
// 在 Trace 之前构建完成，Trace 时只读。
//
type HashTable struct {
	uniqueKey string
	m         map[string]NaluHash
}

func NewHashTable() *HashTable {
	return &HashTable{
		uniqueKey: base.GenUkHashTable(),
		m:         make(map[string]NaluHash),
	}
}

// Aggregate 合并多个列表。hash已经存在时不覆盖，返回的 Duplicate 中记录了这种情况
func (t *HashTable) Aggregate(lists ...[]NaluHash) (dups []Duplicate) {
	for _, list := range lists {
		for _, item := range list {
			stored, ok := t.m[item.Hash]
			if !ok {
				t.m[item.Hash] = item
				continue
			}
			dups = append(dups, Duplicate{Entry: item, Stored: stored})
		}
	}
	base.Log.Debugf("[%s] aggregate. lists=%d, size=%d, dups=%d", t.uniqueKey, len(lists), len(t.m), len(dups))
	return
}

func (t *HashTable) Lookup(hash string) (NaluHash, bool) {
	item, ok := t.m[hash]
	return item, ok
}

func (t *HashTable) Len() int {
	return len(t.m)
}

func (t *HashTable) UniqueKey() string {
	return t.uniqueKey
}

// Trace 按顺序在table中查找target的每个nalu
func Trace(table *HashTable, target []NaluHash) []TraceResult {
	ret := make([]TraceResult, 0, len(target))
	var notFound int
	for _, item := range target {
		r := TraceResult{Target: item}
		r.Source, r.Found = table.Lookup(item.Hash)
		if !r.Found {
			notFound++
		}
		ret = append(ret, r)
	}
	base.Log.Debugf("[%s] trace. target=%d, not found=%d", table.UniqueKey(), len(target), notFound)
	return ret
}
