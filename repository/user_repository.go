package repository

import (
	"context"

	"melodex/model"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	AddFavorite(ctx context.Context, userID, trackID int64) error
	RemoveFavorite(ctx context.Context, userID, trackID int64) error
	FavoriteTrackIDs(ctx context.Context, userID int64) ([]int64, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by the given database.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return wrapStorage("create user", gorm.ErrDuplicatedKey)
		}
		return wrapStorage("create user", err)
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get user", err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get user by username", err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get user by email", err)
	}
	return &user, nil
}

func (r *gormUserRepository) AddFavorite(ctx context.Context, userID, trackID int64) error {
	fav := model.Favorite{UserID: userID, TrackID: trackID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if isDuplicate(err) {
			return nil // already liked
		}
		return wrapStorage("add favorite", err)
	}
	return nil
}

func (r *gormUserRepository) RemoveFavorite(ctx context.Context, userID, trackID int64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID, trackID).
		Delete(&model.Favorite{}).Error
	if err != nil {
		return wrapStorage("remove favorite", err)
	}
	return nil
}

func (r *gormUserRepository) FavoriteTrackIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("track_id", &ids).Error
	if err != nil {
		return nil, wrapStorage("list favorites", err)
	}
	return ids, nil
}
