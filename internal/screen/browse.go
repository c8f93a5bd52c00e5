// Package screen は各画面のビューモデルを提供する。
// ビューモデルは画面ローカルの一時状態を保持し、appclient経由でAPIと同期する。
// 画面が閉じられた後に完了した非同期呼び出しの結果は破棄される（disposedガード）。
package screen

import (
	"context"
	"strings"
	"sync"

	"github.com/surplusapp/surplus-server/internal/appclient"
	"github.com/surplusapp/surplus-server/internal/model"
)

// BrowseClient はブラウズ画面が必要とするデータアクセスインターフェース。
// *appclient.Clientが満たす。
type BrowseClient interface {
	GetItems(ctx context.Context, category string) appclient.ItemsResult
	AddFavorite(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult
	RemoveFavorite(ctx context.Context, username, itemID string) appclient.FavoriteResult
	CheckFavorite(ctx context.Context, username, itemID string) bool
}

// BrowseViewModel はブラウズ画面の状態を保持する。
// 一覧は再取得のたびに丸ごと置き換える（増分マージはしない）。
// お気に入り状態は一覧全件の事前取得はせず、ハートのタップ時に遅延確認する。
type BrowseViewModel struct {
	client   BrowseClient
	username string

	mu           sync.Mutex
	items        []model.ItemSnapshot
	searchQuery  string
	favoritedIDs map[string]struct{}
	loading      bool
	disposed     bool
}

// NewBrowseViewModel はBrowseViewModelの新しいインスタンスを生成する。
// usernameが空の場合、お気に入り操作はすべてno-opになる。
func NewBrowseViewModel(client BrowseClient, username string) *BrowseViewModel {
	return &BrowseViewModel{
		client:       client,
		username:     username,
		items:        []model.ItemSnapshot{},
		favoritedIDs: make(map[string]struct{}),
	}
}

// Refresh は一覧を再取得してローカル状態を丸ごと置き換える。
// マウント時とフォーカス復帰時のたびに呼ばれる。
// 取得失敗時は現在の一覧を保持する。
func (vm *BrowseViewModel) Refresh(ctx context.Context, category string) {
	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return
	}
	vm.loading = true
	vm.mu.Unlock()

	result := vm.client.GetItems(ctx, category)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return
	}
	vm.loading = false
	if result.Success {
		vm.items = result.Items
	}
}

// SetSearchQuery は検索文字列を更新する。
func (vm *BrowseViewModel) SetSearchQuery(query string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.searchQuery = query
}

// VisibleItems は検索文字列でフィルタされた一覧を返す。
// タイトル・サブタイトル・説明・カテゴリ・住所を大文字小文字を無視して部分一致。
func (vm *BrowseViewModel) VisibleItems() []model.ItemSnapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(vm.searchQuery))
	if query == "" {
		return append([]model.ItemSnapshot{}, vm.items...)
	}

	filtered := []model.ItemSnapshot{}
	for _, item := range vm.items {
		if matchesQuery(item, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// matchesQuery は出品が検索文字列に一致するかを返す。
func matchesQuery(item model.ItemSnapshot, query string) bool {
	for _, field := range []string{
		item.Title, item.Subtitle, item.Description, item.Category, item.Address,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// ToggleFavorite はお気に入り状態を切り替える。
// ローカルに登録済みの記録がない場合はまずサーバーに遅延確認する
// （一覧全件の事前チェックを避けてリクエスト量を抑えるため）。
// ローカルのお気に入りIDセットはサーバー呼び出しの成功後にのみ更新する。
// usernameが空の場合はno-op。
func (vm *BrowseViewModel) ToggleFavorite(ctx context.Context, item model.ItemSnapshot) {
	if vm.username == "" {
		return
	}

	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return
	}
	_, isFavorite := vm.favoritedIDs[item.ID]
	vm.mu.Unlock()

	// ローカルに記録がない場合のみサーバーに確認する
	if !isFavorite {
		isFavorite = vm.client.CheckFavorite(ctx, vm.username, item.ID)
		if isFavorite {
			vm.mu.Lock()
			if vm.disposed {
				vm.mu.Unlock()
				return
			}
			vm.favoritedIDs[item.ID] = struct{}{}
			vm.mu.Unlock()
		}
	}

	if isFavorite {
		result := vm.client.RemoveFavorite(ctx, vm.username, item.ID)
		vm.mu.Lock()
		defer vm.mu.Unlock()
		if vm.disposed || !result.Success {
			return
		}
		delete(vm.favoritedIDs, item.ID)
		return
	}

	result := vm.client.AddFavorite(ctx, vm.username, item.ID, item)
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed || !result.Success {
		return
	}
	vm.favoritedIDs[item.ID] = struct{}{}
}

// IsFavorited はローカル状態でお気に入り済みと記録されているかを返す。
func (vm *BrowseViewModel) IsFavorited(itemID string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.favoritedIDs[itemID]
	return ok
}

// Loading は一覧取得中かどうかを返す。
func (vm *BrowseViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Close は画面の破棄を記録する。以降に完了した非同期更新は破棄される。
func (vm *BrowseViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.disposed = true
}
