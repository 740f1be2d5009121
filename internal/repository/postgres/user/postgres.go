package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "team-tracker-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

// UpsertFederated refreshes the profile columns of an existing row. role and status keep their stored values.
func (r *PostgresRepository) UpsertFederated(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"email":             user.Email,
				"first_name":        user.FirstName,
				"last_name":         user.LastName,
				"profile_image_url": user.ProfileImageURL,
				"updated_at":        time.Now().UTC(),
			}),
		}).
		Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, user.ID)
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, input domain.ProfileInput) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if input.FirstName != nil {
		updates["first_name"] = nilIfEmpty(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = nilIfEmpty(*input.LastName)
	}
	if input.ProfileImageURL != nil {
		updates["profile_image_url"] = nilIfEmpty(*input.ProfileImageURL)
	}
	return r.update(ctx, id, updates)
}

func (r *PostgresRepository) UpdateAccess(ctx context.Context, id string, role *domain.Role, status *domain.Status) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if role != nil {
		updates["role"] = *role
	}
	if status != nil {
		updates["status"] = *status
	}
	return r.update(ctx, id, updates)
}

func (r *PostgresRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.User, error) {
	query := r.db.WithContext(ctx).Model(&domain.User{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var users []domain.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
