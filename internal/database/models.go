// Package database 定义了数据库模型、连接初始化和迁移
// 模型按领域拆分：
// - profile_models.go: 用户资料、导师申请、关注关系
// - note_models.go: 笔记（课程）、章节、学习进度
// - sprint_models.go: 看板、列表、卡片
// - chat_models.go: 群组、成员、消息
// - asset_models.go: 上传文件
package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 所有领域模型共用的主键和时间戳
// 主键为UUID字符串，在插入前自动生成
type Base struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate GORM钩子，为未指定主键的记录生成UUID
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
