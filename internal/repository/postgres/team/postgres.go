package team

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "team-tracker-go/internal/domain/team"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := r.db.WithContext(ctx).Order("lower(name) asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *PostgresRepository) GetTeam(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *PostgresRepository) CreateTeam(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, membership *domain.Membership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyMember
	}
	return err
}

func (r *PostgresRepository) GetMembership(ctx context.Context, id string) (*domain.Membership, error) {
	var membership domain.Membership
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *PostgresRepository) FindMembership(ctx context.Context, teamID, userID string) (*domain.Membership, error) {
	var membership domain.Membership
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *PostgresRepository) ListMemberships(ctx context.Context, filter domain.MembershipFilter) ([]domain.Membership, error) {
	query := r.db.WithContext(ctx).Model(&domain.Membership{})
	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var memberships []domain.Membership
	if err := query.Order("created_at asc").Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *PostgresRepository) UpdateMembership(ctx context.Context, id string, status domain.MemberStatus, role *domain.MemberRole) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if role != nil {
		updates["role"] = *role
	}

	result := r.db.WithContext(ctx).Model(&domain.Membership{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}
