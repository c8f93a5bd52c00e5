// Package favorite はお気に入りの管理機能を提供する。
package favorite

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/surplusapp/surplus-server/internal/model"
	"github.com/surplusapp/surplus-server/internal/repository"
)

// Service はお気に入りの登録・解除・一覧・存在確認のサービス。
type Service struct {
	favoriteRepo repository.FavoriteRepository
	itemRepo     repository.ItemRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	favoriteRepo repository.FavoriteRepository,
	itemRepo repository.ItemRepository,
) *Service {
	return &Service{
		favoriteRepo: favoriteRepo,
		itemRepo:     itemRepo,
	}
}

// AddResult はAddの結果。
// AlreadyExistedは(username, itemId)の組が既に登録済みで、
// 新しいレコードが作成されなかったことを示す。
type AddResult struct {
	Favorite       *model.Favorite
	AlreadyExisted bool
}

// Add はお気に入りを冪等に登録する。
//
// 既に同じ組が存在する場合は既存レコードを返し、データは変更しない。
// スナップショットが渡されなかった場合はitemIdで出品を検索して補完する
// （出品が見つからない場合は空のスナップショットのまま登録する）。
// 存在確認とINSERTの間で別リクエストと競合した場合、INSERTの一意制約違反を
// 登録済み成功として扱い、エラーにはしない。
func (s *Service) Add(ctx context.Context, username, itemID string, snapshot model.ItemSnapshot) (*AddResult, error) {
	if username == "" || itemID == "" {
		return nil, requiredPairError()
	}

	existing, err := s.favoriteRepo.FindByUserAndItem(ctx, username, itemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &AddResult{Favorite: existing, AlreadyExisted: true}, nil
	}

	if snapshot.IsEmpty() {
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			snapshot = model.SnapshotFromItem(item)
		}
	}

	now := time.Now().UTC()
	favorite := &model.Favorite{
		ID:        uuid.NewString(),
		Username:  username,
		ItemID:    itemID,
		ItemData:  snapshot,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		if repository.IsUniqueViolation(err) {
			// 存在確認後に別リクエストが先に登録した。冪等成功として扱う。
			slog.Info("duplicate favorite insert resolved as success",
				slog.String("username", username),
				slog.String("item_id", itemID),
			)
			existing, findErr := s.favoriteRepo.FindByUserAndItem(ctx, username, itemID)
			if findErr != nil {
				return nil, findErr
			}
			return &AddResult{Favorite: existing, AlreadyExisted: true}, nil
		}
		return nil, err
	}

	return &AddResult{Favorite: favorite, AlreadyExisted: false}, nil
}

// Remove はお気に入りを解除する。該当レコードがない場合はnot foundエラー。
func (s *Service) Remove(ctx context.Context, username, itemID string) error {
	if username == "" || itemID == "" {
		return requiredPairError()
	}

	deleted, err := s.favoriteRepo.DeleteByUserAndItem(ctx, username, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.NewFavoriteNotFoundError()
	}
	return nil
}

// List はユーザーのお気に入り一覧を新着順で返す。結果0件はエラーではない。
func (s *Service) List(ctx context.Context, username string) ([]*model.Favorite, error) {
	if username == "" {
		return nil, model.NewMissingFieldError("username")
	}
	return s.favoriteRepo.ListByUsername(ctx, username)
}

// Check は(username, itemId)の組が登録済みかを返す。
// 未登録はfalseであってエラーではない。
func (s *Service) Check(ctx context.Context, username, itemID string) (bool, error) {
	if username == "" || itemID == "" {
		return false, requiredPairError()
	}
	return s.favoriteRepo.Exists(ctx, username, itemID)
}

// requiredPairError はusernameとitemIdの欠落エラーを生成する。
// ワイヤメッセージは既存クライアントとの互換のため両名を併記する。
func requiredPairError() *model.APIError {
	return &model.APIError{
		Code:     model.ErrCodeMissingField,
		Message:  "Username and itemId are required",
		Category: model.CategoryValidation,
	}
}
