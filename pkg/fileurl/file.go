package fileurl

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// IsFile checks if the given path is a file
// IsFile 判断所给路径是否为文件
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir checks if the given path is a directory
// IsDir 判断所给路径是否为目录
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否不存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst) // os.Stat gets file info
	// os.Stat获取文件信息
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates path
// CreatePath 创建路径
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	err := os.MkdirAll(dir, perm)
	if err != nil {
		return err
	}
	return nil
}

// GetExePath gets path of current execution file
// GetExePath 获取当前执行文件的路径
func GetExePath() string {
	file, _ := exec.LookPath(os.Args[0])
	path, _ := filepath.Abs(file)
	index := strings.LastIndex(path, string(os.PathSeparator))
	return path[:index]
}

// PathSuffixCheckAdd checks path suffix, adds it if not exists
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// IsAbsPath determines if it is an absolute path
// IsAbsPath 判断是否为绝对路径
func IsAbsPath(path string) bool {
	if runtime.GOOS == "windows" {
		// Windows system
		// Windows系统
		if filepath.VolumeName(path) != "" {
			return true
		}
		return filepath.IsAbs(path)
	}
	// UNIX/Linux system
	// UNIX/Linux系统
	return filepath.IsAbs(path)
}

// GetAbsPath gets absolute path
// GetAbsPath 获取绝对路径
func GetAbsPath(path string, root string) (string, error) {
	if root != "" {
		root = PathSuffixCheckAdd(root, "/")
	}
	realPath := root + path
	// If it is already an absolute path, return directly
	// 如果本身就是绝对路径 就直接返回
	if !IsAbsPath(realPath) {
		pwdDir, _ := os.Getwd()
		realPath = PathSuffixCheckAdd(pwdDir, "/") + path
	}
	if IsExist(realPath) {
		return realPath, nil
	}
	return "", errors.New("file not exists")
}
