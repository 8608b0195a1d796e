package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/service/mail"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// TutorService 导师入驻服务接口
type TutorService interface {
	// Apply 提交导师申请，已有待审核申请或已是导师时返回 ErrApplicationExists
	Apply(ctx context.Context, userID string, req *validation.TutorApplication) (*database.TutorApplication, error)

	// MyApplication 获取用户最近一次申请
	MyApplication(ctx context.Context, userID string) (*database.TutorApplication, error)

	// ListApplications 管理员按状态列出申请，status 为空时返回全部
	ListApplications(ctx context.Context, reviewerID, status string) ([]database.TutorApplication, error)

	// Review 管理员审核申请，通过后用户角色变为导师
	Review(ctx context.Context, reviewerID, applicationID string, req *validation.ReviewApplication) (*database.TutorApplication, error)
}

type tutorService struct {
	db          *gorm.DB
	profiles    ProfileService
	mailer      mail.Mailer
	adminEmails []string
}

// NewTutorService 创建导师入驻服务实例
func NewTutorService(db *gorm.DB, profiles ProfileService, mailer mail.Mailer, adminEmails []string) TutorService {
	return &tutorService{
		db:          db,
		profiles:    profiles,
		mailer:      mailer,
		adminEmails: adminEmails,
	}
}

func (s *tutorService) Apply(ctx context.Context, userID string, req *validation.TutorApplication) (*database.TutorApplication, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.IsTutor() {
		return nil, apperrors.ErrApplicationExistsError.WithDetails("user is already a tutor")
	}

	db := s.db.WithContext(ctx)
	var pending int64
	if err := db.Model(&database.TutorApplication{}).
		Where("user_id = ? AND status = ?", userID, database.ApplicationPending).
		Count(&pending).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	if pending > 0 {
		return nil, apperrors.ErrApplicationExistsError
	}

	subjects := make([]string, 0, len(req.Subjects))
	for _, subj := range req.Subjects {
		if subj = strings.TrimSpace(subj); subj != "" {
			subjects = append(subjects, subj)
		}
	}

	app := &database.TutorApplication{
		UserID:     userID,
		Bio:        req.Bio,
		Subjects:   strings.Join(subjects, ","),
		Experience: req.Experience,
		Status:     database.ApplicationPending,
	}
	if err := db.Create(app).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"user_id":        userID,
		"application_id": app.ID,
	}).Info("Tutor application submitted")

	s.notify(ctx, &mail.Message{
		To:      mail.Addresses(s.adminEmails...),
		Subject: "New tutor application",
		Text:    fmt.Sprintf("%s applied to become a tutor (subjects: %s).", profile.Name, app.Subjects),
	})
	return app, nil
}

func (s *tutorService) MyApplication(ctx context.Context, userID string) (*database.TutorApplication, error) {
	var app database.TutorApplication
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &app, nil
}

func (s *tutorService) ListApplications(ctx context.Context, reviewerID, status string) ([]database.TutorApplication, error) {
	if !s.profiles.IsAdmin(ctx, reviewerID) {
		return nil, apperrors.ErrAdminRequiredError
	}

	query := s.db.WithContext(ctx).Model(&database.TutorApplication{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var apps []database.TutorApplication
	if err := query.Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return apps, nil
}

func (s *tutorService) Review(ctx context.Context, reviewerID, applicationID string, req *validation.ReviewApplication) (*database.TutorApplication, error) {
	if !s.profiles.IsAdmin(ctx, reviewerID) {
		return nil, apperrors.ErrAdminRequiredError
	}

	var app database.TutorApplication
	if err := s.db.WithContext(ctx).Where("id = ?", applicationID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	if app.Status != database.ApplicationPending {
		return nil, apperrors.ErrApplicationReviewedError
	}

	applicant, err := s.profiles.GetOrCreate(ctx, app.UserID)
	if err != nil {
		return nil, err
	}

	status := database.ApplicationRejected
	if req.Approve {
		status = database.ApplicationApproved
	}
	now := time.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&database.TutorApplication{}).
			Where("id = ? AND status = ?", app.ID, database.ApplicationPending).
			Updates(map[string]interface{}{
				"status":      status,
				"reviewer_id": reviewerID,
				"review_note": req.Note,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return apperrors.WrapCode(apperrors.ErrDatabaseUpdate, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrApplicationReviewedError
		}

		// 管理员保持原角色
		if req.Approve && applicant.Role == database.RoleStudent {
			if err := tx.Model(&database.Profile{}).
				Where("user_id = ?", app.UserID).
				Update("role", database.RoleTutor).Error; err != nil {
				return apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	app.Status = status
	app.ReviewerID = reviewerID
	app.ReviewNote = req.Note
	app.ReviewedAt = &now

	logger.WithFields(map[string]interface{}{
		"application_id": app.ID,
		"reviewer_id":    reviewerID,
		"status":         status,
	}).Info("Tutor application reviewed")

	text := "Your tutor application has been rejected."
	if req.Approve {
		text = "Your tutor application has been approved. You can now create courses."
	}
	if req.Note != "" {
		text += "\n\n" + req.Note
	}
	s.notify(ctx, &mail.Message{
		To:      mail.Addresses(applicant.Email),
		Subject: "Tutor application " + status,
		Text:    text,
	})
	return &app, nil
}

// notify 邮件发送失败只记录日志，不影响业务结果
func (s *tutorService) notify(ctx context.Context, msg *mail.Message) {
	if s.mailer == nil || !msg.HasRecipients() {
		return
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.WithError(err).WithField("subject", msg.Subject).Error("Failed to send notification")
	}
}
