// Package note はメモ管理のドメインロジックを提供する。
package note

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/memopad/internal/model"
	"github.com/hitoshi/memopad/internal/repository"
	"github.com/hitoshi/memopad/internal/security"
)

// MetricsCollector はメモ操作のメトリクス記録インターフェース。
// nilの場合は記録をスキップする。
type MetricsCollector interface {
	RecordNoteCreated()
	RecordNoteUpdated()
	RecordNoteDeleted()
}

// Service はメモ管理のサービス層。
// すべての操作は認証済みユーザーのIDでスコープされる。
type Service struct {
	noteRepo  repository.NoteRepository
	sanitizer security.ContentSanitizerService
	metrics   MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。metricsはnilを許容する。
func NewService(
	noteRepo repository.NoteRepository,
	sanitizer security.ContentSanitizerService,
	metrics MetricsCollector,
) *Service {
	return &Service{
		noteRepo:  noteRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Create はメモを作成し、採番されたIDを返す。
// タイトルと本文は保存前にサニタイズする。両タイムスタンプは作成時刻に揃える。
func (s *Service) Create(ctx context.Context, userID int64, title, content string) (int64, error) {
	now := time.Now()
	n := &model.Note{
		UserID:    userID,
		Title:     s.sanitizer.Sanitize(title),
		Content:   s.sanitizer.Sanitize(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.noteRepo.Create(ctx, n)
	if err != nil {
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordNoteCreated()
	}

	slog.Info("note created",
		slog.Int64("note_id", id),
		slog.Int64("user_id", userID),
	)

	return id, nil
}

// List はユーザーのメモ一覧を最終更新の新しい順で返す。
func (s *Service) List(ctx context.Context, userID int64) ([]*model.Note, error) {
	notes, err := s.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Get は(id, user_id)でメモを取得する。
// 存在しない場合も他ユーザー所有の場合も同一のAppError（note）を返す。
func (s *Service) Get(ctx context.Context, id, userID int64) (*model.Note, error) {
	n, err := s.noteRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	if n == nil {
		return nil, model.NewNoteNotFoundError()
	}
	return n, nil
}

// Update は所有メモのタイトルと本文を置き換え、updated_atを更新する。
// 事前に(id, user_id)で存在を確認し、見つからない場合はAppError（note）を返す。
func (s *Service) Update(ctx context.Context, id, userID int64, title, content string) error {
	existing, err := s.noteRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to find note: %w", err)
	}
	if existing == nil {
		return model.NewNoteNotFoundError()
	}

	title = s.sanitizer.Sanitize(title)
	content = s.sanitizer.Sanitize(content)

	if err := s.noteRepo.Update(ctx, id, userID, title, content); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordNoteUpdated()
	}

	slog.Info("note updated",
		slog.Int64("note_id", id),
		slog.Int64("user_id", userID),
	)

	return nil
}

// Delete は所有メモを削除する。
// 対象が存在しない場合（削除済み・他ユーザー所有）も正常終了する。
// 所有権違反を呼び出し側に伝えることはない。
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.noteRepo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordNoteDeleted()
	}

	slog.Info("note deleted",
		slog.Int64("note_id", id),
		slog.Int64("user_id", userID),
	)

	return nil
}
