package screen

import (
	"context"
	"sync"

	"github.com/surplusapp/surplus-server/internal/appclient"
)

// FavoritesClient はお気に入り画面が必要とするデータアクセスインターフェース。
// *appclient.Clientが満たす。
type FavoritesClient interface {
	GetFavorites(ctx context.Context, username string) appclient.FavoritesResult
	RemoveFavorite(ctx context.Context, username, itemID string) appclient.FavoriteResult
}

// FavouritesViewModel はお気に入り画面の状態を保持する。
// 一覧の各行はお気に入り登録時点のスナップショットから描画する。
type FavouritesViewModel struct {
	client   FavoritesClient
	username string

	mu        sync.Mutex
	favorites []appclient.FavoriteRecord
	loading   bool
	disposed  bool
}

// NewFavouritesViewModel はFavouritesViewModelの新しいインスタンスを生成する。
func NewFavouritesViewModel(client FavoritesClient, username string) *FavouritesViewModel {
	return &FavouritesViewModel{
		client:    client,
		username:  username,
		favorites: []appclient.FavoriteRecord{},
	}
}

// Refresh はお気に入り一覧を再取得してローカル状態を丸ごと置き換える。
// usernameが空の場合は空の一覧のままno-op。
func (vm *FavouritesViewModel) Refresh(ctx context.Context) {
	if vm.username == "" {
		return
	}

	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return
	}
	vm.loading = true
	vm.mu.Unlock()

	result := vm.client.GetFavorites(ctx, vm.username)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed {
		return
	}
	vm.loading = false
	if result.Success {
		vm.favorites = result.Favorites
	}
}

// Remove は指定出品のお気に入りを解除し、成功時にローカル一覧から取り除く。
func (vm *FavouritesViewModel) Remove(ctx context.Context, itemID string) {
	if vm.username == "" {
		return
	}

	result := vm.client.RemoveFavorite(ctx, vm.username, itemID)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.disposed || !result.Success {
		return
	}

	kept := vm.favorites[:0]
	for _, f := range vm.favorites {
		if f.ItemID != itemID {
			kept = append(kept, f)
		}
	}
	vm.favorites = kept
}

// Favorites は現在の一覧を返す。
func (vm *FavouritesViewModel) Favorites() []appclient.FavoriteRecord {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]appclient.FavoriteRecord{}, vm.favorites...)
}

// Loading は一覧取得中かどうかを返す。
func (vm *FavouritesViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Close は画面の破棄を記録する。以降に完了した非同期更新は破棄される。
func (vm *FavouritesViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.disposed = true
}
