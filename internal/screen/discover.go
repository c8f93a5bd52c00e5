package screen

import (
	"context"
	"sync"

	"github.com/surplusapp/surplus-server/internal/appclient"
	"github.com/surplusapp/surplus-server/internal/model"
)

// ItemLister は出品一覧取得のインターフェース。*appclient.Clientが満たす。
type ItemLister interface {
	GetItems(ctx context.Context, category string) appclient.ItemsResult
}

// DiscoverViewModel はディスカバー画面の状態を保持する。
// カテゴリ選択とフォーカス復帰のたびに選択中カテゴリで一覧を再取得する。
type DiscoverViewModel struct {
	client ItemLister

	mu       sync.Mutex
	category string
	items    []model.ItemSnapshot
	loading  bool
	disposed bool
}

// NewDiscoverViewModel はDiscoverViewModelの新しいインスタンスを生成する。
// 初期カテゴリは"All"（フィルタなし）。
func NewDiscoverViewModel(client ItemLister) *DiscoverViewModel {
	return &DiscoverViewModel{
		client:   client,
		category: model.CategoryAll,
		items:    []model.ItemSnapshot{},
	}
}

// SelectCategory はカテゴリを切り替えて一覧を再取得する。
func (vm *DiscoverViewModel) SelectCategory(ctx context.Context, category string) {
	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return
	}
	vm.category = category
	vm.mu.Unlock()

	vm.refresh(ctx)
}

// RefreshOnFocus はフォーカス復帰時に選択中カテゴリで一覧を再取得する。
func (vm *DiscoverViewModel) RefreshOnFocus(ctx context.Context) {
	vm.refresh(ctx)
}

func (vm *DiscoverViewModel) refresh(ctx context.Context) {
	vm.mu.Lock()
	if vm.disposed {
		vm.mu.Unlock()
		return
	}
	vm.loading = true
	category := vm.category
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

// Category は選択中カテゴリを返す。
func (vm *DiscoverViewModel) Category() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.category
}

// Items は現在の一覧を返す。
func (vm *DiscoverViewModel) Items() []model.ItemSnapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]model.ItemSnapshot{}, vm.items...)
}

// Loading は一覧取得中かどうかを返す。
func (vm *DiscoverViewModel) Loading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Close は画面の破棄を記録する。以降に完了した非同期更新は破棄される。
func (vm *DiscoverViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.disposed = true
}
