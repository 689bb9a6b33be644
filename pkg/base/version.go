// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package base

// FlvavcVersion 整个工程的版本号。注意，该变量由外部脚本修改维护，不要手动在代码中修改
//
const FlvavcVersion = "v0.2.1"

// ConfVersion flvavc app的配置文件的版本号
//
const ConfVersion = "v0.1.0"

var (
	FlvavcLibraryName = "flvavc"
	FlvavcGithubRepo  = "github.com/lalkit/flvavc"
	FlvavcGithubSite  = "https://github.com/lalkit/flvavc"

	// FlvavcFullInfo e.g. flvavc v0.2.1 (github.com/lalkit/flvavc)
	FlvavcFullInfo = FlvavcLibraryName + " " + FlvavcVersion + " (" + FlvavcGithubRepo + ")"
)
