// Package domain 定义领域模型和接口
package domain

// Identity 远端账号身份领域模型
// 由远端 API 签发后不再变化
type Identity struct {
	UID      int64
	Username string
	Email    string
}

// IsValid 判断身份是否有效
func (i *Identity) IsValid() bool {
	return i.UID > 0
}
