package database

import "time"

// Note 笔记（课程）模型
// 由导师创建，包含按 Position 排序的章节，发布后出现在课程目录中
type Note struct {
	Base
	CreatorID   string        `gorm:"not null;size:64;index" json:"creatorId"`                      // 创建者用户ID
	Title       string        `gorm:"not null;size:200" json:"title"`                               // 标题
	Description string        `gorm:"type:text" json:"description"`                                 // 简介
	ImageURL    string        `gorm:"size:1000" json:"imageUrl"`                                    // 封面
	IsPublished bool          `gorm:"not null;default:false" json:"isPublished"`                    // 是否发布
	Chapters    []NoteChapter `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"` // 章节
}

// TableName 指定Note模型对应的数据库表名
func (Note) TableName() string {
	return "notes"
}

// NoteChapter 笔记章节
// 同一笔记内按 Position 升序展示
type NoteChapter struct {
	Base
	NoteID      string `gorm:"not null;size:36;index" json:"noteId"`
	Title       string `gorm:"not null;size:200" json:"title"`
	Content     string `gorm:"type:text" json:"content"`
	VideoURL    string `gorm:"size:1000" json:"videoUrl"`
	Position    int    `gorm:"not null;default:0" json:"position"`
	IsPublished bool   `gorm:"not null;default:false" json:"isPublished"`
	IsFree      bool   `gorm:"not null;default:false" json:"isFree"` // 免费试看
}

// TableName 指定NoteChapter模型对应的数据库表名
func (NoteChapter) TableName() string {
	return "note_chapters"
}

// ChapterProgress 用户章节学习进度，(user_id, chapter_id) 唯一
type ChapterProgress struct {
	Base
	UserID      string     `gorm:"not null;size:64;uniqueIndex:idx_progress_pair" json:"userId"`
	ChapterID   string     `gorm:"not null;size:36;uniqueIndex:idx_progress_pair" json:"chapterId"`
	IsCompleted bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	XPAwarded   bool       `gorm:"not null;default:false" json:"-"` // 每章只奖励一次积分
}

// TableName 指定ChapterProgress模型对应的数据库表名
func (ChapterProgress) TableName() string {
	return "chapter_progress"
}
