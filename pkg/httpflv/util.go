// Copyright 2022, Chef.  All rights reserved.
// https://github.com/lalkit/flvavc
//
// Use of this source code is governed by a MIT-style license
// that can be found in the License file.
//
// Author: Chef (191201771@qq.com)

package httpflv

import "io"

func ReadAllTagsFromFlvFile(filename string, modOptions ...ModFlvFileReaderOption) ([]Tag, error) {
	var tags []Tag

	var ffr FlvFileReader
	defer ffr.Dispose()
	err := ffr.Open(filename, modOptions...)
	if err != nil {
		return nil, err
	}
	if _, err = ffr.ReadFlvHeader(); err != nil {
		return nil, err
	}

	for {
		tag, err := ffr.ReadTag()
		if err != nil {
			if err == io.EOF {
				return tags, nil
			} else {
				return tags, err
			}
		}
		tags = append(tags, tag)
	}
	// never reach here
}
