package screen

import (
	"context"
	"testing"

	"github.com/surplusapp/surplus-server/internal/appclient"
	"github.com/surplusapp/surplus-server/internal/model"
)

// mockDataClient はappclient.Clientのモック実装。
// 画面ビューモデルが使う全インターフェースを満たす。
type mockDataClient struct {
	getItemsFn       func(ctx context.Context, category string) appclient.ItemsResult
	addFavoriteFn    func(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult
	removeFavoriteFn func(ctx context.Context, username, itemID string) appclient.FavoriteResult
	checkFavoriteFn  func(ctx context.Context, username, itemID string) bool
	getFavoritesFn   func(ctx context.Context, username string) appclient.FavoritesResult
	createItemFn     func(ctx context.Context, payload map[string]interface{}) appclient.ItemResult
	saveOnboardingFn func(ctx context.Context, input appclient.SaveOnboardingInput) appclient.OnboardingResult
}

func (m *mockDataClient) GetItems(ctx context.Context, category string) appclient.ItemsResult {
	if m.getItemsFn != nil {
		return m.getItemsFn(ctx, category)
	}
	return appclient.ItemsResult{Success: true, Items: []model.ItemSnapshot{}}
}

func (m *mockDataClient) AddFavorite(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult {
	if m.addFavoriteFn != nil {
		return m.addFavoriteFn(ctx, username, itemID, itemData)
	}
	return appclient.FavoriteResult{Success: true}
}

func (m *mockDataClient) RemoveFavorite(ctx context.Context, username, itemID string) appclient.FavoriteResult {
	if m.removeFavoriteFn != nil {
		return m.removeFavoriteFn(ctx, username, itemID)
	}
	return appclient.FavoriteResult{Success: true}
}

func (m *mockDataClient) CheckFavorite(ctx context.Context, username, itemID string) bool {
	if m.checkFavoriteFn != nil {
		return m.checkFavoriteFn(ctx, username, itemID)
	}
	return false
}

func (m *mockDataClient) GetFavorites(ctx context.Context, username string) appclient.FavoritesResult {
	if m.getFavoritesFn != nil {
		return m.getFavoritesFn(ctx, username)
	}
	return appclient.FavoritesResult{Success: true, Favorites: []appclient.FavoriteRecord{}}
}

func (m *mockDataClient) CreateItem(ctx context.Context, payload map[string]interface{}) appclient.ItemResult {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, payload)
	}
	return appclient.ItemResult{Success: true, Item: &model.ItemSnapshot{}}
}

func (m *mockDataClient) SaveOnboarding(ctx context.Context, input appclient.SaveOnboardingInput) appclient.OnboardingResult {
	if m.saveOnboardingFn != nil {
		return m.saveOnboardingFn(ctx, input)
	}
	return appclient.OnboardingResult{Success: true}
}

func testItems() []model.ItemSnapshot {
	return []model.ItemSnapshot{
		{ID: "item-1", Title: "Pret - Trafalgar Square South", Subtitle: "Breakfast Bag", Category: "Meals", Address: "1 Trafalgar Square, London"},
		{ID: "item-2", Title: "Sidequest - Covent Garden", Subtitle: "Bubble Tea", Category: "Drinks", Address: "3 Henrietta St, London"},
	}
}

func TestBrowseViewModel_RefreshReplacesList(t *testing.T) {
	client := &mockDataClient{
		getItemsFn: func(ctx context.Context, category string) appclient.ItemsResult {
			return appclient.ItemsResult{Success: true, Items: testItems()}
		},
	}
	vm := NewBrowseViewModel(client, "alice")

	vm.Refresh(context.Background(), "")

	if got := len(vm.VisibleItems()); got != 2 {
		t.Errorf("len(VisibleItems()) = %d, want 2", got)
	}
	if vm.Loading() {
		t.Error("expected loading to be false after refresh")
	}
}

func TestBrowseViewModel_RefreshFailureKeepsCurrentList(t *testing.T) {
	succeed := true
	client := &mockDataClient{
		getItemsFn: func(ctx context.Context, category string) appclient.ItemsResult {
			if succeed {
				return appclient.ItemsResult{Success: true, Items: testItems()}
			}
			return appclient.ItemsResult{Items: []model.ItemSnapshot{}}
		},
	}
	vm := NewBrowseViewModel(client, "alice")

	vm.Refresh(context.Background(), "")
	succeed = false
	vm.Refresh(context.Background(), "")

	if got := len(vm.VisibleItems()); got != 2 {
		t.Errorf("len(VisibleItems()) = %d after failed refresh, want 2", got)
	}
}

func TestBrowseViewModel_SearchFiltersAcrossFields(t *testing.T) {
	client := &mockDataClient{
		getItemsFn: func(ctx context.Context, category string) appclient.ItemsResult {
			return appclient.ItemsResult{Success: true, Items: testItems()}
		},
	}
	vm := NewBrowseViewModel(client, "alice")
	vm.Refresh(context.Background(), "")

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"pret", 1},          // タイトル、大文字小文字を無視
		{"bubble", 1},        // サブタイトル
		{"Drinks", 1},        // カテゴリ
		{"henrietta", 1},     // 住所
		{"london", 2},        // 両方の住所に一致
		{"  pret  ", 1},      // 前後の空白は無視
		{"no-such-query", 0}, // 不一致
	}
	for _, tt := range tests {
		vm.SetSearchQuery(tt.query)
		if got := len(vm.VisibleItems()); got != tt.want {
			t.Errorf("query %q: len(VisibleItems()) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestBrowseViewModel_ToggleFavorite_AddsAfterServerSuccess(t *testing.T) {
	var addCalls int
	client := &mockDataClient{
		addFavoriteFn: func(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult {
			addCalls++
			if username != "alice" || itemID != "item-1" {
				t.Errorf("AddFavorite(%q, %q), want alice/item-1", username, itemID)
			}
			if itemData.Title == "" {
				t.Error("expected item snapshot to be sent")
			}
			return appclient.FavoriteResult{Success: true}
		},
	}
	vm := NewBrowseViewModel(client, "alice")

	vm.ToggleFavorite(context.Background(), testItems()[0])

	if addCalls != 1 {
		t.Errorf("AddFavorite called %d times, want 1", addCalls)
	}
	if !vm.IsFavorited("item-1") {
		t.Error("expected item-1 to be marked favorited")
	}
}

func TestBrowseViewModel_ToggleFavorite_ServerFailureLeavesLocalStateUnchanged(t *testing.T) {
	client := &mockDataClient{
		addFavoriteFn: func(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult {
			return appclient.FavoriteResult{Message: "store unavailable"}
		},
	}
	vm := NewBrowseViewModel(client, "alice")

	vm.ToggleFavorite(context.Background(), testItems()[0])

	if vm.IsFavorited("item-1") {
		t.Error("expected local state unchanged after server failure")
	}
}

func TestBrowseViewModel_ToggleFavorite_LazyCheckFindsServerSideFavorite(t *testing.T) {
	var removeCalls int
	client := &mockDataClient{
		checkFavoriteFn: func(ctx context.Context, username, itemID string) bool {
			return true // 別画面で登録済み
		},
		removeFavoriteFn: func(ctx context.Context, username, itemID string) appclient.FavoriteResult {
			removeCalls++
			return appclient.FavoriteResult{Success: true}
		},
		addFavoriteFn: func(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult {
			t.Error("AddFavorite should not be called when server reports favorited")
			return appclient.FavoriteResult{}
		},
	}
	vm := NewBrowseViewModel(client, "alice")

	vm.ToggleFavorite(context.Background(), testItems()[0])

	if removeCalls != 1 {
		t.Errorf("RemoveFavorite called %d times, want 1", removeCalls)
	}
	if vm.IsFavorited("item-1") {
		t.Error("expected item-1 unmarked after removal")
	}
}

func TestBrowseViewModel_ToggleFavorite_SecondToggleSkipsCheck(t *testing.T) {
	var checkCalls int
	client := &mockDataClient{
		checkFavoriteFn: func(ctx context.Context, username, itemID string) bool {
			checkCalls++
			return false
		},
	}
	vm := NewBrowseViewModel(client, "alice")

	vm.ToggleFavorite(context.Background(), testItems()[0]) // 登録（checkあり）
	vm.ToggleFavorite(context.Background(), testItems()[0]) // 解除（ローカル記録があるのでcheckなし）

	if checkCalls != 1 {
		t.Errorf("CheckFavorite called %d times, want 1", checkCalls)
	}
	if vm.IsFavorited("item-1") {
		t.Error("expected item-1 unmarked after second toggle")
	}
}

func TestBrowseViewModel_ToggleFavorite_NoOpWithoutUsername(t *testing.T) {
	client := &mockDataClient{
		addFavoriteFn: func(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) appclient.FavoriteResult {
			t.Error("AddFavorite should not be called without username")
			return appclient.FavoriteResult{}
		},
		checkFavoriteFn: func(ctx context.Context, username, itemID string) bool {
			t.Error("CheckFavorite should not be called without username")
			return false
		},
	}
	vm := NewBrowseViewModel(client, "")

	vm.ToggleFavorite(context.Background(), testItems()[0])
}

func TestBrowseViewModel_CloseDiscardsInFlightRefresh(t *testing.T) {
	var vm *BrowseViewModel
	client := &mockDataClient{
		getItemsFn: func(ctx context.Context, category string) appclient.ItemsResult {
			// 取得中に画面が閉じられた状況を再現する
			vm.Close()
			return appclient.ItemsResult{Success: true, Items: testItems()}
		},
	}
	vm = NewBrowseViewModel(client, "alice")

	vm.Refresh(context.Background(), "")

	if got := len(vm.VisibleItems()); got != 0 {
		t.Errorf("len(VisibleItems()) = %d after close, want 0", got)
	}
}

func TestBrowseViewModel_RefreshAfterCloseIsNoOp(t *testing.T) {
	client := &mockDataClient{
		getItemsFn: func(ctx context.Context, category string) appclient.ItemsResult {
			t.Error("GetItems should not be called after Close")
			return appclient.ItemsResult{}
		},
	}
	vm := NewBrowseViewModel(client, "alice")
	vm.Close()

	vm.Refresh(context.Background(), "")
}
