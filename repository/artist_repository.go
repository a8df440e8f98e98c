package repository

import (
	"context"

	"melodex/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArtistQuery describes a filtered, ordered, paginated read of the artist
// collection.
type ArtistQuery struct {
	NameLike string
	OrderBy  string // defaults to popularity DESC
	Limit    int
	Skip     int
}

// ArtistRepository defines the interface for artist data operations.
type ArtistRepository interface {
	Search(ctx context.Context, q ArtistQuery) ([]model.Artist, error)
	FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Artist, error)
	InsertBatch(ctx context.Context, artists []model.Artist) error
	Create(ctx context.Context, artist *model.Artist) error
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
	Update(ctx context.Context, artist *model.Artist) error
	Delete(ctx context.Context, id int64) error
}

type gormArtistRepository struct {
	db *gorm.DB
}

// NewArtistRepository creates an artist repository backed by the given database.
func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &gormArtistRepository{db: db}
}

func (r *gormArtistRepository) Search(ctx context.Context, q ArtistQuery) ([]model.Artist, error) {
	order := q.OrderBy
	if order == "" {
		order = "popularity DESC"
	}

	tx := r.db.WithContext(ctx).Model(&model.Artist{})
	if q.NameLike != "" {
		tx = tx.Where("name LIKE ?", "%"+q.NameLike+"%")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}

	artists := make([]model.Artist, 0)
	if err := tx.Order(order).Find(&artists).Error; err != nil {
		return nil, wrapStorage("search artists", err)
	}
	return artists, nil
}

func (r *gormArtistRepository) FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Artist, error) {
	artists := make([]model.Artist, 0)
	if len(refIDs) == 0 {
		return artists, nil
	}
	if err := r.db.WithContext(ctx).Where("ref_id IN ?", refIDs).Find(&artists).Error; err != nil {
		return nil, wrapStorage("find artists by refId", err)
	}
	return artists, nil
}

// InsertBatch persists artists discovered during backfill, insert-if-absent
// keyed by ref_id.
func (r *gormArtistRepository) InsertBatch(ctx context.Context, artists []model.Artist) error {
	if len(artists) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ref_id"}},
			DoNothing: true,
		}).
		Create(&artists).Error
	if err != nil {
		return wrapStorage("insert artists", err)
	}
	return nil
}

func (r *gormArtistRepository) Create(ctx context.Context, artist *model.Artist) error {
	if err := r.db.WithContext(ctx).Create(artist).Error; err != nil {
		return wrapStorage("create artist", err)
	}
	return nil
}

func (r *gormArtistRepository) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	var artist model.Artist
	err := r.db.WithContext(ctx).First(&artist, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get artist", err)
	}
	return &artist, nil
}

func (r *gormArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	if err := r.db.WithContext(ctx).Save(artist).Error; err != nil {
		return wrapStorage("update artist", err)
	}
	return nil
}

func (r *gormArtistRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Artist{}, id).Error; err != nil {
		return wrapStorage("delete artist", err)
	}
	return nil
}
