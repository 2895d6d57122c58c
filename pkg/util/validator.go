package util

import (
	"regexp"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// IsValidUsername verifies if the username format is correct
// IsValidUsername 验证用户名格式是否正确
// username: username to be verified
// username: 待验证的用户名
// return: true if username format is correct, false otherwise
// 返回值: 如果用户名格式正确返回true，否则返回false
func IsValidUsername(username string) bool {
	// Username format: letters, numbers, underscores, length 3-20
	// 用户名格式：字母、数字、下划线，长度3-20
	return usernamePattern.MatchString(username)
}
