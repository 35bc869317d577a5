package services

import (
	"errors"
	"testing"

	"fanclub-backend/internal/models"
)

func TestNoticeBoard(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestMember(t, db, "operator", 0)
	service := NewNoticeService(db)

	first, err := service.CreateNotice(admin.ID, &models.NoticeRequest{
		Title:   "7월 이벤트 안내",
		Content: "출석 체크 포인트가 두 배!",
	})
	if err != nil {
		t.Fatalf("CreateNotice failed: %v", err)
	}

	pinned, err := service.CreateNotice(admin.ID, &models.NoticeRequest{
		Title:   "공지",
		Content: "베팅 규칙 변경 안내",
		Pinned:  true,
	})
	if err != nil {
		t.Fatalf("CreateNotice failed: %v", err)
	}

	notices, total, err := service.ListNotices(10, 0)
	if err != nil {
		t.Fatalf("ListNotices failed: %v", err)
	}
	if total != 2 || len(notices) != 2 {
		t.Fatalf("expected two notices, got total %d len %d", total, len(notices))
	}
	if notices[0].ID != pinned.ID {
		t.Errorf("expected the pinned notice first, got %d", notices[0].ID)
	}

	// Reads bump the view count.
	got, err := service.GetNotice(first.ID)
	if err != nil {
		t.Fatalf("GetNotice failed: %v", err)
	}
	if got.ViewCount != 1 {
		t.Errorf("expected view count 1, got %d", got.ViewCount)
	}

	updated, err := service.UpdateNotice(first.ID, &models.NoticeRequest{
		Title:   "7월 이벤트 종료",
		Content: "이벤트가 종료되었습니다",
	})
	if err != nil {
		t.Fatalf("UpdateNotice failed: %v", err)
	}
	if updated.Title != "7월 이벤트 종료" {
		t.Errorf("unexpected title after update: %s", updated.Title)
	}

	if err := service.DeleteNotice(first.ID); err != nil {
		t.Fatalf("DeleteNotice failed: %v", err)
	}
	if _, err := service.GetNotice(first.ID); !errors.Is(err, ErrNoticeNotFound) {
		t.Fatalf("expected ErrNoticeNotFound after delete, got %v", err)
	}
	if _, err := service.UpdateNotice(first.ID, &models.NoticeRequest{Title: "x", Content: "y"}); !errors.Is(err, ErrNoticeNotFound) {
		t.Fatalf("expected ErrNoticeNotFound on update of deleted notice, got %v", err)
	}
}
