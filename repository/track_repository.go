package repository

import (
	"context"

	"melodex/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrackQuery describes a filtered, ordered, paginated read of the track
// collection. Zero-valued filter fields are not applied; an empty NameLike
// matches every row.
type TrackQuery struct {
	NameLike   string // case-insensitive substring match on name
	AlbumRefID string // exact match on the owning album's provider id
	OrderBy    string // defaults to popularity DESC
	Limit      int
	Skip       int
}

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	Search(ctx context.Context, q TrackQuery) ([]model.Track, error)
	FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Track, error)
	InsertBatch(ctx context.Context, tracks []model.Track) error
	Create(ctx context.Context, track *model.Track) error
	GetByID(ctx context.Context, id int64) (*model.Track, error)
	Update(ctx context.Context, track *model.Track) error
	Delete(ctx context.Context, id int64) error
}

type gormTrackRepository struct {
	db *gorm.DB
}

// NewTrackRepository creates a track repository backed by the given database.
func NewTrackRepository(db *gorm.DB) TrackRepository {
	return &gormTrackRepository{db: db}
}

func (r *gormTrackRepository) Search(ctx context.Context, q TrackQuery) ([]model.Track, error) {
	order := q.OrderBy
	if order == "" {
		order = "popularity DESC"
	}

	tx := r.db.WithContext(ctx).Model(&model.Track{})
	if q.NameLike != "" {
		tx = tx.Where("name LIKE ?", "%"+q.NameLike+"%")
	}
	if q.AlbumRefID != "" {
		tx = tx.Where("album_ref_id = ?", q.AlbumRefID)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}

	tracks := make([]model.Track, 0)
	if err := tx.Order(order).Find(&tracks).Error; err != nil {
		return nil, wrapStorage("search tracks", err)
	}
	return tracks, nil
}

func (r *gormTrackRepository) FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Track, error) {
	tracks := make([]model.Track, 0)
	if len(refIDs) == 0 {
		return tracks, nil
	}
	if err := r.db.WithContext(ctx).Where("ref_id IN ?", refIDs).Find(&tracks).Error; err != nil {
		return nil, wrapStorage("find tracks by refId", err)
	}
	return tracks, nil
}

// InsertBatch persists tracks discovered during backfill. The insert is an
// insert-if-absent keyed by ref_id, so two concurrent backfills of the same
// entity cannot produce duplicate rows.
func (r *gormTrackRepository) InsertBatch(ctx context.Context, tracks []model.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ref_id"}},
			DoNothing: true,
		}).
		Create(&tracks).Error
	if err != nil {
		return wrapStorage("insert tracks", err)
	}
	return nil
}

func (r *gormTrackRepository) Create(ctx context.Context, track *model.Track) error {
	if err := r.db.WithContext(ctx).Create(track).Error; err != nil {
		if isDuplicate(err) {
			return wrapStorage("create track", gorm.ErrDuplicatedKey)
		}
		return wrapStorage("create track", err)
	}
	return nil
}

func (r *gormTrackRepository) GetByID(ctx context.Context, id int64) (*model.Track, error) {
	var track model.Track
	err := r.db.WithContext(ctx).First(&track, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStorage("get track", err)
	}
	return &track, nil
}

func (r *gormTrackRepository) Update(ctx context.Context, track *model.Track) error {
	if err := r.db.WithContext(ctx).Save(track).Error; err != nil {
		return wrapStorage("update track", err)
	}
	return nil
}

func (r *gormTrackRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Track{}, id).Error; err != nil {
		return wrapStorage("delete track", err)
	}
	return nil
}
