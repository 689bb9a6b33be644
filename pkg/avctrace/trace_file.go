// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package avctrace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lalkit/flvavc/pkg/base"
	"github.com/lalkit/flvavc/pkg/remux"
)

// SourceLabel 文件名去掉目录和扩展名，e.g. /tmp/src1.flv -> src1
func SourceLabel(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// LabelFile 计算flv文件中每个nalu的hash
func LabelFile(filename string, label string, modOptions ...remux.ModNaluStreamOption) ([]NaluHash, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	s := remux.NewNaluStream(fp, modOptions...)
	list, err := LabelNalus(s, label)
	base.Log.Debugf("[%s] label file. file=%s, label=%s, nalus=%d", s.UniqueKey(), filename, label, len(list))
	return list, err
}

// TraceFiles 用sourceFileNames构建 HashTable，再逐个查找targetFileName中的nalu，结果按行写入w
//
// 先输出构建过程中发现的重复（`{label} is the same as {label}`），空一行，
// 再对target中的每个nalu输出一行，找到时为 `from {start} to {end}  <--  {label} from {start} to {end}`，
// 没找到时为 `Not Found`。
//
func TraceFiles(targetFileName string, sourceFileNames []string, w io.Writer, modOptions ...remux.ModNaluStreamOption) error {
	table := NewHashTable()
	for _, filename := range sourceFileNames {
		list, err := LabelFile(filename, SourceLabel(filename), modOptions...)
		if err != nil {
			return err
		}
		for _, d := range table.Aggregate(list) {
			if _, err = fmt.Fprintln(w, d.String()); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	target, err := LabelFile(targetFileName, "", modOptions...)
	if err != nil {
		return err
	}
	for _, r := range Trace(table, target) {
		if _, err = fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}
