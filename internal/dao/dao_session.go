package dao

import (
	"github.com/haierkeys/notes-web-client/pkg/timex"

	"gorm.io/gorm"
)

// Session 会话数据库模型
type Session struct {
	ID         int64      `gorm:"column:id;primaryKey" json:"id"`
	Credential string     `gorm:"column:credential" json:"credential"`
	UID        int64      `gorm:"column:uid" json:"uid"`
	Username   string     `gorm:"column:username" json:"username"`
	Email      string     `gorm:"column:email" json:"email"`
	ExpiresAt  timex.Time `gorm:"column:expires_at;type:datetime;autoUpdateTime:false" json:"expiresAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}

func (Session) TableName() string {
	return "session"
}

// AutoMigrateSession 建表
func AutoMigrateSession(g *gorm.DB) error {
	return g.AutoMigrate(&Session{})
}
