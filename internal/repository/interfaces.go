// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/surplusapp/surplus-server/internal/model"
)

// ItemRepository は出品データの永続化インターフェース。
type ItemRepository interface {
	// Create は出品を作成する。
	Create(ctx context.Context, item *model.Item) error

	// FindByID は指定IDの出品を取得する。
	// 見つからない場合およびIDがUUIDとして不正な場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Item, error)

	// List は出品一覧を作成日時の降順で返す。
	// categoryが空文字列の場合はフィルタなし、それ以外は完全一致でフィルタする。
	List(ctx context.Context, category string) ([]*model.Item, error)

	// FindByTitleAndSubtitle はタイトルとサブタイトルで出品を検索する。
	// シードの冪等化に使用する。見つからない場合はnilを返す。
	FindByTitleAndSubtitle(ctx context.Context, title, subtitle string) (*model.Item, error)
}

// FavoriteRepository はお気に入りデータの永続化インターフェース。
type FavoriteRepository interface {
	// Create はお気に入りを作成する。
	// (username, item_id)が既に存在する場合は一意制約違反エラーを返す。
	// 呼び出し元はIsUniqueViolationで判定できる。
	Create(ctx context.Context, favorite *model.Favorite) error

	// FindByUserAndItem はusernameとitemIdでお気に入りを検索する。見つからない場合はnilを返す。
	FindByUserAndItem(ctx context.Context, username, itemID string) (*model.Favorite, error)

	// DeleteByUserAndItem は該当するお気に入りを削除する。
	// 削除対象が存在した場合はtrueを返す。
	DeleteByUserAndItem(ctx context.Context, username, itemID string) (bool, error)

	// ListByUsername はユーザーのお気に入り一覧を作成日時の降順で返す。
	ListByUsername(ctx context.Context, username string) ([]*model.Favorite, error)

	// Exists は(username, itemId)の組が存在するかを返す。
	Exists(ctx context.Context, username, itemID string) (bool, error)
}

// OnboardingRepository はオンボーディング設定の永続化インターフェース。
type OnboardingRepository interface {
	// Upsert は設定を原子的にUPSERTする。
	// 存在確認と書き込みのレースを避けるため、単一のINSERT ... ON CONFLICT文で行う。
	// 新規作成された場合はtrueを返す。
	Upsert(ctx context.Context, onboarding *model.Onboarding) (created bool, err error)

	// FindByUsername は指定ユーザーの設定を取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.Onboarding, error)
}
