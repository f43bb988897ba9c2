package church

import (
	"context"
	"time"

	"church-app-go/internal/db"
	churchdomain "church-app-go/internal/domain/church"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(churchdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateChurch(ctx context.Context, church *churchdomain.Church) error {
	err := r.db.WithContext(ctx).Create(church).Error
	if db.IsUniqueViolation(err) {
		return churchdomain.ErrSlugGenerationFailed
	}
	return err
}

func (r *PostgresRepository) GetChurch(ctx context.Context, churchID string) (*churchdomain.Church, error) {
	var church churchdomain.Church
	if err := r.db.WithContext(ctx).Where("id = ?", churchID).First(&church).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, churchdomain.ErrChurchNotFound
		}
		return nil, err
	}
	return &church, nil
}

// ListChurchesByUser covers churches the user belongs to and churches they
// own without a membership row. Owners always see the admin role.
func (r *PostgresRepository) ListChurchesByUser(ctx context.Context, userID string) ([]churchdomain.ChurchWithRole, error) {
	type churchRow struct {
		churchdomain.Church
		Role        *string `gorm:"column:role"`
		MemberCount int64   `gorm:"column:member_count"`
	}

	var rows []churchRow
	if err := r.db.WithContext(ctx).
		Table("churches").
		Select("churches.*, memberships.role AS role, (SELECT count(*) FROM memberships m WHERE m.church_id = churches.id) AS member_count").
		Joins("left join memberships on memberships.church_id = churches.id and memberships.user_id = ?", userID).
		Where("churches.owner_id = ? OR memberships.user_id = ?", userID, userID).
		Order("churches.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]churchdomain.ChurchWithRole, 0, len(rows))
	for _, row := range rows {
		role := churchdomain.RoleMember
		if row.Role != nil {
			role = *row.Role
		}
		if row.OwnerID == userID {
			role = churchdomain.RoleAdmin
		}
		result = append(result, churchdomain.ChurchWithRole{
			Church:      row.Church,
			Role:        role,
			MemberCount: row.MemberCount,
		})
	}
	return result, nil
}

func (r *PostgresRepository) UpdateChurch(ctx context.Context, church *churchdomain.Church) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Church{}).
		Where("id = ?", church.ID).
		Updates(map[string]interface{}{
			"name":        church.Name,
			"description": church.Description,
			"updated_at":  church.UpdatedAt,
		}).Error
}

// DeleteChurch relies on ON DELETE CASCADE for everything scoped to the
// church.
func (r *PostgresRepository) DeleteChurch(ctx context.Context, churchID string) error {
	result := r.db.WithContext(ctx).Delete(&churchdomain.Church{}, "id = ?", churchID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return churchdomain.ErrChurchNotFound
	}
	return nil
}

func (r *PostgresRepository) IsSlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&churchdomain.Church{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *churchdomain.Membership) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if db.IsUniqueViolation(err) {
		return churchdomain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) GetMember(ctx context.Context, churchID, userID string) (*churchdomain.Membership, error) {
	var member churchdomain.Membership
	if err := r.db.WithContext(ctx).Where("church_id = ? AND user_id = ?", churchID, userID).First(&member).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, churchdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, churchID string) ([]churchdomain.MemberProfile, error) {
	type memberRow struct {
		UserID    string    `gorm:"column:user_id"`
		Role      string    `gorm:"column:role"`
		JoinedAt  time.Time `gorm:"column:joined_at"`
		Name      *string   `gorm:"column:name"`
		Email     *string   `gorm:"column:email"`
		Phone     *string   `gorm:"column:phone"`
		AvatarURL *string   `gorm:"column:avatar_url"`
	}

	var rows []memberRow
	if err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.user_id, memberships.role, memberships.joined_at, profiles.name, profiles.email, profiles.phone, profiles.avatar_url").
		Joins("left join profiles on profiles.user_id = memberships.user_id").
		Where("memberships.church_id = ?", churchID).
		Order("memberships.joined_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]churchdomain.MemberProfile, 0, len(rows))
	for _, row := range rows {
		member := churchdomain.MemberProfile{
			UserID:    row.UserID,
			Role:      row.Role,
			JoinedAt:  row.JoinedAt,
			Email:     row.Email,
			Phone:     row.Phone,
			AvatarURL: row.AvatarURL,
		}
		if row.Name != nil {
			member.Name = *row.Name
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, churchID, userID, role string) error {
	return r.db.WithContext(ctx).Model(&churchdomain.Membership{}).
		Where("church_id = ? AND user_id = ?", churchID, userID).
		Update("role", role).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, churchID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&churchdomain.Membership{}, "church_id = ? AND user_id = ?", churchID, userID)
	return db.Affected(result)
}

func (r *PostgresRepository) CreateInvite(ctx context.Context, invite *churchdomain.InviteToken) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *PostgresRepository) GetInviteByToken(ctx context.Context, token string) (*churchdomain.InviteToken, error) {
	var invite churchdomain.InviteToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, churchdomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &invite, nil
}

func (r *PostgresRepository) ListInvites(ctx context.Context, churchID string) ([]churchdomain.InviteToken, error) {
	var invites []churchdomain.InviteToken
	if err := r.db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("created_at desc").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// IncrementInviteUse bumps used_count only while it is below max_uses. It
// reports false when the invite was already exhausted.
func (r *PostgresRepository) IncrementInviteUse(ctx context.Context, inviteID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&churchdomain.InviteToken{}).
		Where("id = ? AND used_count < max_uses", inviteID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresRepository) DeleteInvite(ctx context.Context, churchID, inviteID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&churchdomain.InviteToken{}, "church_id = ? AND id = ?", churchID, inviteID)
	return db.Affected(result)
}

func (r *PostgresRepository) DeleteStaleInvites(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR used_count >= max_uses", now).
		Delete(&churchdomain.InviteToken{})
	return result.RowsAffected, result.Error
}
