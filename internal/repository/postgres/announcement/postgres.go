package announcement

import (
	"context"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/announcement"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, churchID string) ([]domain.Listed, error) {
	type row struct {
		domain.Announcement
		AuthorName   *string `gorm:"column:author_name"`
		CommentCount int64   `gorm:"column:comment_count"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("announcements").
		Select("announcements.*, profiles.name AS author_name, (SELECT count(*) FROM announcement_comments c WHERE c.announcement_id = announcements.id) AS comment_count").
		Joins("left join profiles on profiles.user_id = announcements.author_id").
		Where("announcements.church_id = ?", churchID).
		Order("announcements.is_pinned desc, announcements.is_important desc, announcements.created_at desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]domain.Listed, 0, len(rows))
	for _, row := range rows {
		item := domain.Listed{Announcement: row.Announcement, CommentCount: row.CommentCount}
		if row.AuthorName != nil {
			item.AuthorName = *row.AuthorName
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) Get(ctx context.Context, churchID, id string) (*domain.Announcement, error) {
	var announcement domain.Announcement
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&announcement).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

func (r *PostgresRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *PostgresRepository) Update(ctx context.Context, announcement *domain.Announcement) error {
	return r.db.WithContext(ctx).Model(&domain.Announcement{}).
		Where("id = ? AND church_id = ?", announcement.ID, announcement.ChurchID).
		Updates(map[string]interface{}{
			"title":        announcement.Title,
			"content":      announcement.Content,
			"is_pinned":    announcement.IsPinned,
			"is_important": announcement.IsImportant,
			"image_url":    announcement.ImageURL,
			"updated_at":   announcement.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, churchID, id string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("announcement_id = ? AND church_id = ?", id, churchID).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Announcement{}, "id = ? AND church_id = ?", id, churchID)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if db.IsInvalidID(err) {
		return false, nil
	}
	return deleted, err
}

func (r *PostgresRepository) ListComments(ctx context.Context, announcementID string) ([]domain.CommentView, error) {
	type row struct {
		domain.Comment
		AuthorName *string `gorm:"column:author_name"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("announcement_comments").
		Select("announcement_comments.*, profiles.name AS author_name").
		Joins("left join profiles on profiles.user_id = announcement_comments.author_id").
		Where("announcement_comments.announcement_id = ?", announcementID).
		Order("announcement_comments.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	comments := make([]domain.CommentView, 0, len(rows))
	for _, row := range rows {
		view := domain.CommentView{Comment: row.Comment}
		if row.AuthorName != nil {
			view.AuthorName = *row.AuthorName
		}
		comments = append(comments, view)
	}
	return comments, nil
}

func (r *PostgresRepository) GetComment(ctx context.Context, churchID, id string) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&comment).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *PostgresRepository) CreateComment(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresRepository) DeleteComment(ctx context.Context, churchID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ? AND church_id = ?", id, churchID)
	return db.Affected(result)
}
