package database

import "time"

// 用户角色
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// 导师申请状态
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Profile 用户资料模型
// 每个身份提供商用户对应唯一一条资料，首次访问时创建
// XP 为排行榜积分
type Profile struct {
	Base
	UserID   string `gorm:"uniqueIndex;not null;size:64" json:"userId"`    // 身份提供商中的用户ID
	Name     string `gorm:"size:100" json:"name"`                          // 显示名称
	Email    string `gorm:"size:255" json:"email"`                         // 主邮箱
	ImageURL string `gorm:"size:1000" json:"imageUrl"`                     // 头像地址
	Bio      string `gorm:"type:text" json:"bio"`                          // 个人简介
	Role     string `gorm:"size:20;not null;default:student" json:"role"` // student、tutor、admin
	XP       int    `gorm:"not null;default:0" json:"xp"`                  // 积分
}

// TableName 指定Profile模型对应的数据库表名
func (Profile) TableName() string {
	return "profiles"
}

// IsTutor 导师和管理员均可创作内容
func (p *Profile) IsTutor() bool {
	return p.Role == RoleTutor || p.Role == RoleAdmin
}

// TutorApplication 导师入驻申请
type TutorApplication struct {
	Base
	UserID     string     `gorm:"not null;size:64;index" json:"userId"`
	Bio        string     `gorm:"type:text" json:"bio"`
	Subjects   string     `gorm:"size:500" json:"subjects"` // 逗号分隔的科目
	Experience string     `gorm:"type:text" json:"experience"`
	Status     string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	ReviewerID string     `gorm:"size:64" json:"reviewerId,omitempty"`
	ReviewNote string     `gorm:"type:text" json:"reviewNote,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

// TableName 指定TutorApplication模型对应的数据库表名
func (TutorApplication) TableName() string {
	return "tutor_applications"
}

// Follow 关注关系，(follower_id, following_id) 唯一
type Follow struct {
	Base
	FollowerID  string `gorm:"not null;size:64;uniqueIndex:idx_follow_pair" json:"followerId"`
	FollowingID string `gorm:"not null;size:64;uniqueIndex:idx_follow_pair;index" json:"followingId"`
}

// TableName 指定Follow模型对应的数据库表名
func (Follow) TableName() string {
	return "follows"
}
