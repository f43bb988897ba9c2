package prayer

import (
	"context"

	"church-app-go/internal/db"
	domain "church-app-go/internal/domain/prayer"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type listedRow struct {
	domain.Request
	AuthorName   *string `gorm:"column:author_name"`
	CommentCount int64   `gorm:"column:comment_count"`
}

func (row listedRow) toListed() domain.Listed {
	item := domain.Listed{Request: row.Request, CommentCount: row.CommentCount}
	if row.AuthorName != nil {
		item.AuthorName = *row.AuthorName
	}
	return item
}

func (r *PostgresRepository) listed(ctx context.Context, churchID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("prayer_requests").
		Select("prayer_requests.*, profiles.name AS author_name, (SELECT count(*) FROM prayer_comments c WHERE c.prayer_id = prayer_requests.id) AS comment_count").
		Joins("left join profiles on profiles.user_id = prayer_requests.author_id").
		Where("prayer_requests.church_id = ?", churchID)
}

func (r *PostgresRepository) List(ctx context.Context, churchID string, filter domain.Filter) ([]domain.Listed, error) {
	query := r.listed(ctx, churchID)
	if filter.Status != "" {
		query = query.Where("prayer_requests.status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("prayer_requests.category = ?", filter.Category)
	}

	var rows []listedRow
	if err := query.Order("prayer_requests.created_at desc").Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]domain.Listed, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toListed())
	}
	return items, nil
}

func (r *PostgresRepository) Find(ctx context.Context, churchID, id string) (*domain.Listed, error) {
	var rows []listedRow
	err := r.listed(ctx, churchID).
		Where("prayer_requests.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrPrayerNotFound
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrPrayerNotFound
	}
	item := rows[0].toListed()
	return &item, nil
}

func (r *PostgresRepository) Get(ctx context.Context, churchID, id string) (*domain.Request, error) {
	var request domain.Request
	if err := r.db.WithContext(ctx).Where("id = ? AND church_id = ?", id, churchID).First(&request).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, domain.ErrPrayerNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *PostgresRepository) Create(ctx context.Context, request *domain.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *PostgresRepository) Update(ctx context.Context, request *domain.Request) error {
	return r.db.WithContext(ctx).Model(&domain.Request{}).
		Where("id = ? AND church_id = ?", request.ID, request.ChurchID).
		Updates(map[string]interface{}{
			"title":        request.Title,
			"content":      request.Content,
			"is_anonymous": request.IsAnonymous,
			"is_answered":  request.IsAnswered,
			"testimony":    request.Testimony,
			"answered_at":  request.AnsweredAt,
			"person_id":    request.PersonID,
			"category":     request.Category,
			"status":       request.Status,
			"updated_at":   request.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, churchID, id string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prayer_id = ? AND church_id = ?", id, churchID).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Request{}, "id = ? AND church_id = ?", id, churchID)
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

func (r *PostgresRepository) ListComments(ctx context.Context, prayerID string) ([]domain.CommentView, error) {
	type row struct {
		domain.Comment
		AuthorName *string `gorm:"column:author_name"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("prayer_comments").
		Select("prayer_comments.*, profiles.name AS author_name").
		Joins("left join profiles on profiles.user_id = prayer_comments.author_id").
		Where("prayer_comments.prayer_id = ?", prayerID).
		Order("prayer_comments.created_at asc").
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
