package database

import (
	"github.com/weiwangfds/studyhub/internal/logger"
	"gorm.io/gorm"
)

// Migrate 迁移所有表结构并创建复合索引
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Profile{},
		&TutorApplication{},
		&Follow{},
		&Note{},
		&NoteChapter{},
		&ChapterProgress{},
		&Sprint{},
		&List{},
		&Card{},
		&Group{},
		&GroupMember{},
		&Message{},
		&Asset{},
	)
	if err != nil {
		return err
	}

	return createIndexes(db)
}

// createIndexes 创建排序查询用的复合索引
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// 排行榜：积分降序，同分按注册时间
		"CREATE INDEX IF NOT EXISTS idx_profiles_xp_created ON profiles(xp DESC, created_at)",
		// 章节按位置排序
		"CREATE INDEX IF NOT EXISTS idx_note_chapters_note_position ON note_chapters(note_id, position)",
		// 已发布课程目录
		"CREATE INDEX IF NOT EXISTS idx_notes_published_created ON notes(is_published, created_at DESC)",
		// 看板列和卡片排序
		"CREATE INDEX IF NOT EXISTS idx_lists_sprint_order ON lists(sprint_id, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_cards_list_order ON cards(list_id, sort_order)",
		// 消息游标分页
		"CREATE INDEX IF NOT EXISTS idx_messages_group_created ON messages(group_id, created_at DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			logger.Errorf("Failed to create index: %s, error: %v", indexSQL, err)
			return err
		}
	}
	return nil
}

// SeedDemoData 写入开发环境示例数据
// 重复执行不会产生重复记录
func SeedDemoData(db *gorm.DB) error {
	logger.Info("Seeding demo data...")

	return db.Transaction(func(tx *gorm.DB) error {
		tutor := Profile{UserID: "demo-tutor", Name: "Demo Tutor", Email: "tutor@studyhub.local", Role: RoleTutor, XP: 120}
		if err := tx.Where(Profile{UserID: tutor.UserID}).FirstOrCreate(&tutor).Error; err != nil {
			return err
		}

		students := []Profile{
			{UserID: "demo-student-1", Name: "Alice", XP: 80},
			{UserID: "demo-student-2", Name: "Bob", XP: 40},
		}
		for i := range students {
			students[i].Role = RoleStudent
			if err := tx.Where(Profile{UserID: students[i].UserID}).FirstOrCreate(&students[i]).Error; err != nil {
				return err
			}
		}

		note := Note{CreatorID: tutor.UserID, Title: "Introduction to Go", Description: "A short course on Go basics", IsPublished: true}
		if err := tx.Where(Note{CreatorID: note.CreatorID, Title: note.Title}).FirstOrCreate(&note).Error; err != nil {
			return err
		}

		chapters := []NoteChapter{
			{Title: "Getting started", Content: "Install the toolchain and write hello world.", IsFree: true},
			{Title: "Types and functions", Content: "Structs, methods and interfaces."},
		}
		for i := range chapters {
			chapters[i].NoteID = note.ID
			chapters[i].Position = i + 1
			chapters[i].IsPublished = true
			if err := tx.Where(NoteChapter{NoteID: note.ID, Position: i + 1}).FirstOrCreate(&chapters[i]).Error; err != nil {
				return err
			}
		}

		sprint := Sprint{OrgID: "demo-org", Title: "Semester plan"}
		if err := tx.Where(Sprint{OrgID: sprint.OrgID, Title: sprint.Title}).FirstOrCreate(&sprint).Error; err != nil {
			return err
		}
		for i, title := range []string{"Todo", "Doing", "Done"} {
			list := List{SprintID: sprint.ID, Title: title, Order: i + 1}
			if err := tx.Where(List{SprintID: sprint.ID, Title: title}).FirstOrCreate(&list).Error; err != nil {
				return err
			}
		}

		logger.Info("Demo data seeded")
		return nil
	})
}
