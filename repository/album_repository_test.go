package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func albumRows(refIDs ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "ref_id", "name", "popularity"})
	for i, refID := range refIDs {
		rows.AddRow(int64(i+1), refID, "album "+refID, 40-i)
	}
	return rows
}

func TestAlbumSearchByArtistUsesJSONContains(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlbumRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `albums` WHERE JSON_CONTAINS\\(artists, JSON_OBJECT\\('refId', \\?\\)\\) ORDER BY popularity DESC LIMIT").
		WithArgs("art-1", 10).
		WillReturnRows(albumRows("alb-1", "alb-2"))

	got, err := repo.Search(context.Background(), AlbumQuery{ArtistRefID: "art-1", Limit: 10})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search() returned %d rows, want 2", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAlbumFindByRefIDFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlbumRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `albums` WHERE ref_id =").
		WithArgs("alb-1", 1).
		WillReturnRows(albumRows("alb-1"))

	got, err := repo.FindByRefID(context.Background(), "alb-1")
	if err != nil {
		t.Fatalf("FindByRefID() error = %v", err)
	}
	if got == nil || got.Ref() != "alb-1" {
		t.Errorf("FindByRefID() = %v, want the stored album", got)
	}
}

func TestAlbumFindByRefIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlbumRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `albums` WHERE ref_id =").
		WithArgs("alb-x", 1).
		WillReturnRows(albumRows())

	got, err := repo.FindByRefID(context.Background(), "alb-x")
	if err != nil {
		t.Fatalf("FindByRefID() error = %v, want nil for a missing row", err)
	}
	if got != nil {
		t.Errorf("FindByRefID() = %v, want nil", got)
	}
}

func TestAlbumSearchFailureIsTagged(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAlbumRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `albums`").
		WillReturnError(errors.New("table gone"))

	_, err := repo.Search(context.Background(), AlbumQuery{NameLike: "x"})
	if !errors.Is(err, ErrStorageFailed) {
		t.Errorf("Search() error = %v, want ErrStorageFailed", err)
	}
}
