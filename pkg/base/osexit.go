// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

import (
	"bufio"
	"fmt"
	"os"
	"runtime"

	"github.com/q191201771/naza/pkg/nazalog"
)

// OsExitAndWaitPressIfWindows 刷新日志后退出。windows下双击运行时，出错退出前等待按键，避免窗口直接关闭
func OsExitAndWaitPressIfWindows(code int) {
	nazalog.Sync()
	if code != 0 && runtime.GOOS == "windows" {
		_, _ = fmt.Fprintf(os.Stderr, "Press Enter to exit...")
		r := bufio.NewReader(os.Stdin)
		_, _ = r.ReadByte()
	}
	os.Exit(code)
}
