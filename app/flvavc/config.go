// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"encoding/json"
	"os"

	"github.com/lalkit/flvavc/pkg/base"
	"github.com/lalkit/flvavc/pkg/remux"
	"github.com/q191201771/naza/pkg/nazajson"
	"github.com/q191201771/naza/pkg/nazalog"
)

type Config struct {
	ConfVersion string         `json:"conf_version"`
	Log         nazalog.Option `json:"log"`

	MaxTagDataSize        uint32 `json:"max_tag_data_size"`
	TolerateTruncatedTail bool   `json:"tolerate_truncated_tail"`
	DumpNaluNum           int    `json:"dump_nalu_num"`
	SegmentSuffix         string `json:"segment_suffix"`
}

// LoadConf
//
// confFile为空时，所有配置项使用默认值
//
func LoadConf(confFile string) (*Config, error) {
	var config Config
	rawContent := []byte("{}")
	if confFile != "" {
		var err error
		if rawContent, err = os.ReadFile(confFile); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(rawContent, &config); err != nil {
		return nil, err
	}

	j, err := nazajson.New(rawContent)
	if err != nil {
		return nil, err
	}

	// 配置不存在时，设置默认值
	if !j.Exist("log.level") {
		config.Log.Level = nazalog.LevelWarn
	}
	if !j.Exist("log.filename") {
		config.Log.Filename = ""
	}
	if !j.Exist("log.is_to_stdout") {
		config.Log.IsToStdout = true
	}
	if !j.Exist("log.is_rotate_daily") {
		config.Log.IsRotateDaily = false
	}
	if !j.Exist("log.short_file_flag") {
		config.Log.ShortFileFlag = true
	}
	if !j.Exist("log.assert_behavior") {
		config.Log.AssertBehavior = nazalog.AssertError
	}
	if !j.Exist("max_tag_data_size") {
		config.MaxTagDataSize = base.MaxTagDataSize
	}
	if !j.Exist("dump_nalu_num") {
		config.DumpNaluNum = base.DumpNaluNum
	}
	if !j.Exist("segment_suffix") {
		config.SegmentSuffix = base.SegmentFileSuffix
	}

	if config.ConfVersion != "" && config.ConfVersion != base.ConfVersion {
		base.Log.Warnf("config version invalid. conf version of %s is %s while code version is %s",
			confFile, config.ConfVersion, base.ConfVersion)
	}

	return &config, nil
}

func (c *Config) NaluStreamOption() remux.ModNaluStreamOption {
	return func(option *remux.NaluStreamOption) {
		option.MaxTagDataSize = c.MaxTagDataSize
		option.TolerateTruncatedTail = c.TolerateTruncatedTail
		option.DumpNaluNum = c.DumpNaluNum
	}
}
