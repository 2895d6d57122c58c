package global

import (
	"github.com/haierkeys/notes-web-client/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT string
)

func init() {

	filename := fileurl.GetExePath()
	ROOT = filename + "/"

}
