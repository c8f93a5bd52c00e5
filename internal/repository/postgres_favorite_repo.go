package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/surplusapp/surplus-server/internal/model"
)

// PostgresFavoriteRepo はPostgreSQLを使用したお気に入りリポジトリ。
// (username, item_id)の一意性はテーブルの一意制約で担保する。
type PostgresFavoriteRepo struct {
	db *sql.DB
}

// NewPostgresFavoriteRepo はPostgresFavoriteRepoを生成する。
func NewPostgresFavoriteRepo(db *sql.DB) *PostgresFavoriteRepo {
	return &PostgresFavoriteRepo{db: db}
}

// Create はお気に入りを作成する。
// (username, item_id)が既に存在する場合は一意制約違反エラーを返す。
func (r *PostgresFavoriteRepo) Create(ctx context.Context, favorite *model.Favorite) error {
	itemData, err := json.Marshal(favorite.ItemData)
	if err != nil {
		return fmt.Errorf("スナップショットのシリアライズに失敗しました: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO favorites (id, username, item_id, item_data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		favorite.ID, favorite.Username, favorite.ItemID, itemData,
		favorite.CreatedAt, favorite.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("お気に入りの作成に失敗しました: %w", err)
	}
	return nil
}

// FindByUserAndItem はusernameとitemIdでお気に入りを検索する。見つからない場合はnilを返す。
func (r *PostgresFavoriteRepo) FindByUserAndItem(ctx context.Context, username, itemID string) (*model.Favorite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, item_id, item_data, created_at, updated_at
		 FROM favorites WHERE username = $1 AND item_id = $2`,
		username, itemID,
	)

	favorite, err := scanFavorite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("お気に入りの検索に失敗しました: %w", err)
	}
	return favorite, nil
}

// DeleteByUserAndItem は該当するお気に入りを削除する。削除対象が存在した場合はtrueを返す。
func (r *PostgresFavoriteRepo) DeleteByUserAndItem(ctx context.Context, username, itemID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE username = $1 AND item_id = $2`,
		username, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("お気に入りの削除に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("削除件数の取得に失敗しました: %w", err)
	}
	return affected > 0, nil
}

// ListByUsername はユーザーのお気に入り一覧を作成日時の降順で返す。
func (r *PostgresFavoriteRepo) ListByUsername(ctx context.Context, username string) ([]*model.Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, item_id, item_data, created_at, updated_at
		 FROM favorites WHERE username = $1
		 ORDER BY created_at DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("お気に入り一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var favorites []*model.Favorite
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("お気に入り行の読み取りに失敗しました: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("お気に入り一覧の走査に失敗しました: %w", err)
	}

	return favorites, nil
}

// Exists は(username, itemId)の組が存在するかを返す。
func (r *PostgresFavoriteRepo) Exists(ctx context.Context, username, itemID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE username = $1 AND item_id = $2)`,
		username, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("お気に入りの存在確認に失敗しました: %w", err)
	}
	return exists, nil
}

// scanFavorite は1行分のお気に入りカラムをFavoriteに読み取る。
func scanFavorite(row rowScanner) (*model.Favorite, error) {
	favorite := &model.Favorite{}
	var itemData []byte

	err := row.Scan(
		&favorite.ID, &favorite.Username, &favorite.ItemID, &itemData,
		&favorite.CreatedAt, &favorite.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(itemData) > 0 {
		if err := json.Unmarshal(itemData, &favorite.ItemData); err != nil {
			return nil, fmt.Errorf("スナップショットの復元に失敗しました: %w", err)
		}
	}

	return favorite, nil
}

// compile-time interface check
var _ FavoriteRepository = (*PostgresFavoriteRepo)(nil)
