package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"gorm.io/gorm"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository: пользователи на gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

// Create: вставка; занятый email даёт Conflict.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	record := toUserRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict(domain.EmailTakenMessage(user.Email))
		}
		return fmt.Errorf("create user: %w", err)
	}
	*user = record.toDomain()
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	record := toUserRecord(user)
	record.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&userRecord{ID: user.ID}).
		Select("name", "email", "password", "updated_at").
		Updates(&record)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict(domain.EmailTakenMessage(user.Email))
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(domain.MsgUserNotFound)
	}
	user.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&userRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(domain.MsgUserNotFound)
	}
	return nil
}

// first: (nil, nil), если записи нет.
func (r *UserRepository) first(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var record userRecord
	err := r.db.WithContext(ctx).Where(cond, arg).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u := record.toDomain()
	return &u, nil
}
