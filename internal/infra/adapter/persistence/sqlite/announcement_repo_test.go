package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"govnews/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateAndFindByKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer func() { _ = db.Close() }()

	published := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	retrieved := time.Date(2026, 1, 15, 5, 30, 0, 0, time.UTC)
	key := "https://example.jp/news/1.html"

	a := &entity.Announcement{
		Key:         key,
		Title:       "防災訓練のお知らせ",
		URL:         key,
		Agency:      "北区",
		PublishedAt: published,
		RetrievedAt: retrieved,
	}

	mock.ExpectExec(regexp.QuoteMeta(`
INSERT INTO announcements (key, title, url, agency, published_at, retrieved_at)
VALUES (?, ?, ?, ?, ?, ?)`)).
		WithArgs(a.Key, a.Title, a.URL, a.Agency, a.PublishedAt, a.RetrievedAt).
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := NewAnnouncementRepo(db)
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if a.ID != 5 {
		t.Errorf("Create() ID = %d, want 5", a.ID)
	}

	rows := sqlmock.NewRows([]string{"id", "key", "title", "url", "agency", "published_at", "retrieved_at"}).
		AddRow(int64(5), key, a.Title, a.URL, a.Agency, published, retrieved)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE key = ?`)).
		WithArgs(key).
		WillReturnRows(rows)

	got, err := repo.FindByKey(context.Background(), key)
	if err != nil {
		t.Fatalf("FindByKey() unexpected error: %v", err)
	}
	if got == nil || got.ID != 5 {
		t.Errorf("FindByKey() = %+v, want ID 5", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE announcements`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewAnnouncementRepo(db)
	err = repo.Update(context.Background(), &entity.Announcement{ID: 999})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}
