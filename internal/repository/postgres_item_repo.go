package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/surplusapp/surplus-server/internal/model"
)

// PostgresItemRepo はPostgreSQLを使用した出品リポジトリ。
type PostgresItemRepo struct {
	db *sql.DB
}

// NewPostgresItemRepo はPostgresItemRepoを生成する。
func NewPostgresItemRepo(db *sql.DB) *PostgresItemRepo {
	return &PostgresItemRepo{db: db}
}

// itemColumns はitemsテーブルのSELECT対象カラム。
const itemColumns = `id, title, subtitle, collect_window, distance, current_price,
       original_price, image_uri, rating, review_count, badge, availability_label,
       description, category, address,
       collection_experience, food_quality, variety, quantity,
       is_selling_fast, collection_day, created_at, updated_at`

// Create は出品を作成する。
func (r *PostgresItemRepo) Create(ctx context.Context, item *model.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (id, title, subtitle, collect_window, distance, current_price,
		                    original_price, image_uri, rating, review_count, badge,
		                    availability_label, description, category, address,
		                    collection_experience, food_quality, variety, quantity,
		                    is_selling_fast, collection_day, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		         $16, $17, $18, $19, $20, $21, $22, $23)`,
		item.ID, item.Title, item.Subtitle, item.CollectWindow, item.Distance,
		item.CurrentPrice, nullString(item.OriginalPrice), item.ImageURI,
		nullString(item.Rating), item.ReviewCount, nullString(item.Badge),
		nullString(item.AvailabilityLabel), nullString(item.Description),
		nullString(item.Category), nullString(item.Address),
		item.CollectionExperience, item.FoodQuality, item.Variety, item.Quantity,
		item.IsSellingFast, nullString(item.CollectionDay),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("出品の作成に失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDの出品を取得する。
// 見つからない場合およびIDがUUIDとして不正な場合はnilを返す。
func (r *PostgresItemRepo) FindByID(ctx context.Context, id string) (*model.Item, error) {
	// UUIDカラムへの不正な値はクエリエラーになるため事前に弾く
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("出品の取得に失敗しました: %w", err)
	}
	return item, nil
}

// List は出品一覧を作成日時の降順で返す。
// categoryが空文字列の場合はフィルタなし、それ以外は完全一致でフィルタする。
func (r *PostgresItemRepo) List(ctx context.Context, category string) ([]*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("出品一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("出品行の読み取りに失敗しました: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("出品一覧の走査に失敗しました: %w", err)
	}

	return items, nil
}

// FindByTitleAndSubtitle はタイトルとサブタイトルで出品を検索する。見つからない場合はnilを返す。
func (r *PostgresItemRepo) FindByTitleAndSubtitle(ctx context.Context, title, subtitle string) (*model.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE title = $1 AND subtitle = $2 LIMIT 1`,
		title, subtitle)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("出品の検索に失敗しました: %w", err)
	}
	return item, nil
}

// rowScanner はsql.Rowとsql.Rowsの共通スキャンインターフェース。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanItem は1行分の出品カラムをItemに読み取る。
func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var originalPrice, rating, badge, availabilityLabel sql.NullString
	var description, category, address, collectionDay sql.NullString
	var collectionExperience, foodQuality, variety, quantity sql.NullFloat64

	err := row.Scan(
		&item.ID, &item.Title, &item.Subtitle, &item.CollectWindow, &item.Distance,
		&item.CurrentPrice, &originalPrice, &item.ImageURI, &rating,
		&item.ReviewCount, &badge, &availabilityLabel, &description,
		&category, &address,
		&collectionExperience, &foodQuality, &variety, &quantity,
		&item.IsSellingFast, &collectionDay, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.OriginalPrice = nullStringValue(originalPrice)
	item.Rating = nullStringValue(rating)
	item.Badge = nullStringValue(badge)
	item.AvailabilityLabel = nullStringValue(availabilityLabel)
	item.Description = nullStringValue(description)
	item.Category = nullStringValue(category)
	item.Address = nullStringValue(address)
	item.CollectionDay = nullStringValue(collectionDay)
	item.CollectionExperience = nullFloatValue(collectionExperience)
	item.FoodQuality = nullFloatValue(foodQuality)
	item.Variety = nullFloatValue(variety)
	item.Quantity = nullFloatValue(quantity)

	return item, nil
}

// nullString は空文字列をNULLに変換する。
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullStringValue はNullStringから値を取り出す。NULLの場合は空文字列を返す。
func nullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullFloatValue はNullFloat64からポインタ値を取り出す。NULLの場合はnilを返す。
func nullFloatValue(nf sql.NullFloat64) *float64 {
	if nf.Valid {
		v := nf.Float64
		return &v
	}
	return nil
}

// IsUniqueViolation はPostgreSQLの一意制約違反エラーかどうかを判定する。
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// compile-time interface check
var _ ItemRepository = (*PostgresItemRepo)(nil)
