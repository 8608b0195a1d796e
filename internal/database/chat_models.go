package database

// 群成员角色
const (
	MemberAdmin     = "admin"
	MemberModerator = "moderator"
	MemberGuest     = "guest"
)

// DeletedMessageContent 被删除消息的占位内容
const DeletedMessageContent = "This message has been deleted."

// Group 学习小组群聊
type Group struct {
	Base
	Name        string        `gorm:"not null;size:100" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	ImageURL    string        `gorm:"size:1000" json:"imageUrl"`
	OwnerID     string        `gorm:"not null;size:64;index" json:"ownerId"`
	InviteCode  string        `gorm:"not null;size:36;uniqueIndex" json:"inviteCode"`
	Members     []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// TableName 指定Group模型对应的数据库表名
func (Group) TableName() string {
	return "chat_groups"
}

// GroupMember 群成员，(group_id, user_id) 唯一
type GroupMember struct {
	Base
	GroupID string `gorm:"not null;size:36;uniqueIndex:idx_member_pair" json:"groupId"`
	UserID  string `gorm:"not null;size:64;uniqueIndex:idx_member_pair;index" json:"userId"`
	Role    string `gorm:"size:20;not null;default:guest" json:"role"`
}

// TableName 指定GroupMember模型对应的数据库表名
func (GroupMember) TableName() string {
	return "group_members"
}

// CanModerate 管理员和协管员可以删除他人消息
func (m *GroupMember) CanModerate() bool {
	return m.Role == MemberAdmin || m.Role == MemberModerator
}

// Message 群聊消息
type Message struct {
	Base
	GroupID  string `gorm:"not null;size:36;index" json:"groupId"`
	SenderID string `gorm:"not null;size:64;index" json:"senderId"`
	Content  string `gorm:"type:text" json:"content"`
	FileURL  string `gorm:"size:1000" json:"fileUrl,omitempty"`
	Edited   bool   `gorm:"not null;default:false" json:"edited"`
	Deleted  bool   `gorm:"not null;default:false" json:"deleted"`
}

// TableName 指定Message模型对应的数据库表名
func (Message) TableName() string {
	return "messages"
}
