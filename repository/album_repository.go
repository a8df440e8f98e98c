package repository

import (
	"context"

	"melodex/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlbumQuery describes a filtered, ordered, paginated read of the album
// collection.
type AlbumQuery struct {
	NameLike    string // case-insensitive substring match on name
	ArtistRefID string // matches albums whose artist list contains this refId
	OrderBy     string // defaults to popularity DESC
	Limit       int
	Skip        int
}

// AlbumRepository defines the interface for album data operations.
type AlbumRepository interface {
	Search(ctx context.Context, q AlbumQuery) ([]model.Album, error)
	FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Album, error)
	FindByRefID(ctx context.Context, refID string) (*model.Album, error)
	InsertBatch(ctx context.Context, albums []model.Album) error
	Create(ctx context.Context, album *model.Album) error
	GetByID(ctx context.Context, id int64) (*model.Album, error)
	Update(ctx context.Context, album *model.Album) error
	Delete(ctx context.Context, id int64) error
}

type gormAlbumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository creates an album repository backed by the given database.
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &gormAlbumRepository{db: db}
}

func (r *gormAlbumRepository) Search(ctx context.Context, q AlbumQuery) ([]model.Album, error) {
	order := q.OrderBy
	if order == "" {
		order = "popularity DESC"
	}

	tx := r.db.WithContext(ctx).Model(&model.Album{})
	if q.NameLike != "" {
		tx = tx.Where("name LIKE ?", "%"+q.NameLike+"%")
	}
	if q.ArtistRefID != "" {
		// artists is a JSON array of {name, refId} objects.
		tx = tx.Where("JSON_CONTAINS(artists, JSON_OBJECT('refId', ?))", q.ArtistRefID)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}

	albums := make([]model.Album, 0)
	if err := tx.Order(order).Find(&albums).Error; err != nil {
		return nil, wrapStorage("search albums", err)
	}
	return albums, nil
}

func (r *gormAlbumRepository) FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Album, error) {
	albums := make([]model.Album, 0)
	if len(refIDs) == 0 {
		return albums, nil
	}
	if err := r.db.WithContext(ctx).Where("ref_id IN ?", refIDs).Find(&albums).Error; err != nil {
		return nil, wrapStorage("find albums by refId", err)
	}
	return albums, nil
}

func (r *gormAlbumRepository) FindByRefID(ctx context.Context, refID string) (*model.Album, error) {
	var album model.Album
	err := r.db.WithContext(ctx).Where("ref_id = ?", refID).First(&album).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("find album by refId", err)
	}
	return &album, nil
}

// InsertBatch persists albums discovered during backfill, insert-if-absent
// keyed by ref_id.
func (r *gormAlbumRepository) InsertBatch(ctx context.Context, albums []model.Album) error {
	if len(albums) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ref_id"}},
			DoNothing: true,
		}).
		Create(&albums).Error
	if err != nil {
		return wrapStorage("insert albums", err)
	}
	return nil
}

func (r *gormAlbumRepository) Create(ctx context.Context, album *model.Album) error {
	if err := r.db.WithContext(ctx).Create(album).Error; err != nil {
		return wrapStorage("create album", err)
	}
	return nil
}

func (r *gormAlbumRepository) GetByID(ctx context.Context, id int64) (*model.Album, error) {
	var album model.Album
	err := r.db.WithContext(ctx).First(&album, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get album", err)
	}
	return &album, nil
}

func (r *gormAlbumRepository) Update(ctx context.Context, album *model.Album) error {
	if err := r.db.WithContext(ctx).Save(album).Error; err != nil {
		return wrapStorage("update album", err)
	}
	return nil
}

func (r *gormAlbumRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Album{}, id).Error; err != nil {
		return wrapStorage("delete album", err)
	}
	return nil
}
