// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lalkit/flvavc/pkg/avctrace"
	"github.com/lalkit/flvavc/pkg/base"
	"github.com/lalkit/flvavc/pkg/remux"
	"github.com/q191201771/naza/pkg/bininfo"
	"github.com/q191201771/naza/pkg/nazalog"
)

// 从flv文件中提取H264裸流（AVCC转Annex-B），以及通过nalu的hash排查转发服务器的重复推流问题
//
// Usage:
//   ./bin/flvavc [-c conf.json] extract xxxx.flv xxxx.h264
//   ./bin/flvavc [-c conf.json] extractseg xxxx.flv xxxx
//   ./bin/flvavc [-c conf.json] trace joined.flv src1.flv src2.flv ...

func main() {
	base.OsExitAndWaitPressIfWindows(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("flvavc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	binInfoFlag := fs.Bool("v", false, "show bin info")
	cf := fs.String("c", "", "specify conf file")
	fs.Usage = func() { usage(fs, stderr) }
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *binInfoFlag {
		_, _ = fmt.Fprint(stderr, bininfo.StringifyMultiLine())
		_, _ = fmt.Fprintln(stderr, base.FlvavcFullInfo)
		return 0
	}

	rest := fs.Args()
	if !checkArgs(rest) {
		fs.Usage()
		return 1
	}

	config, err := LoadConf(*cf)
	if err != nil {
		_, _ = fmt.Fprintf(stdout, "Error: %s\n", err.Error())
		return 1
	}
	if err = nazalog.Init(func(option *nazalog.Option) {
		*option = config.Log
	}); err != nil {
		_, _ = fmt.Fprintf(stdout, "Error: %s\n", err.Error())
		return 1
	}
	base.SegmentFileSuffix = config.SegmentSuffix
	base.LogoutStartInfo()

	switch rest[0] {
	case "extract":
		err = remux.ExtractAnnexbFile(rest[1], rest[2], config.NaluStreamOption())
	case "extractseg":
		err = remux.ExtractAnnexbSegmentedFile(rest[1], rest[2], config.NaluStreamOption())
	case "trace":
		err = avctrace.TraceFiles(rest[1], rest[2:], stdout, config.NaluStreamOption())
	}
	if err != nil {
		_, _ = fmt.Fprintf(stdout, "Error: %s\n", err.Error())
		return 1
	}
	return 0
}

// checkArgs extract和extractseg需要输入输出两个参数，trace至少需要target，source可以为空
func checkArgs(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "extract", "extractseg":
		return len(args) == 3
	case "trace":
		return len(args) >= 2
	}
	return false
}

func usage(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintf(w, `args: extract xxxx.flv xxxx.h264
    for work around ffmpeg's extraction bug with multiple segments H.264 in different SPS

args: extractseg xxxx.flv xxxx
    save different segments in different files. will add _1%s _2%s suffix

args: trace joined.flv src1.flv src2.flv ...
    for debug RTMP server's stream repeating

flags:
`, base.SegmentFileSuffix, base.SegmentFileSuffix)
	fs.PrintDefaults()
}
