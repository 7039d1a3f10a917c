package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/memopad/internal/model"
)

// PostgresNoteRepo はPostgreSQLを使用したメモリポジトリ。
// すべての参照・更新・削除を(id, user_id)でスコープし、
// 他ユーザーのメモを存在しないメモと同一に扱う。
type PostgresNoteRepo struct {
	db *sql.DB
}

// NewPostgresNoteRepo はPostgresNoteRepoを生成する。
func NewPostgresNoteRepo(db *sql.DB) *PostgresNoteRepo {
	return &PostgresNoteRepo{db: db}
}

// Create はメモを作成し、採番されたIDを返す。
// created_atとupdated_atには呼び出し側が設定した同一時刻を書き込む。
func (r *PostgresNoteRepo) Create(ctx context.Context, note *model.Note) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO notes (user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create note: %w", err)
	}

	return id, nil
}

// ListByUserID はユーザーのメモ一覧をupdated_at降順で返す。
func (r *PostgresNoteRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		note := &model.Note{}
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// FindByIDAndUserID は(id, user_id)でメモを取得する。
// 行が存在しない場合も所有者が異なる場合もnilを返す。
func (r *PostgresNoteRepo) FindByIDAndUserID(ctx context.Context, id, userID int64) (*model.Note, error) {
	note := &model.Note{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, created_at, updated_at
		 FROM notes
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return note, nil
}

// Update は(id, user_id)でスコープしてタイトルと本文を置き換え、updated_atを更新する。
// 所有者が一致しない場合は0行更新のまま正常終了する。
func (r *PostgresNoteRepo) Update(ctx context.Context, id, userID int64, title, content string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes
		 SET title = $3, content = $4, updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		id, userID, title, content,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

// Delete は(id, user_id)でスコープしてメモを削除する。
// 削除対象がなくても（既に削除済み・他ユーザー所有でも）正常終了する。
func (r *PostgresNoteRepo) Delete(ctx context.Context, id, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// compile-time interface check
var _ NoteRepository = (*PostgresNoteRepo)(nil)
