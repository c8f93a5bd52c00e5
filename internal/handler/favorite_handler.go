package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/surplusapp/surplus-server/internal/favorite"
	"github.com/surplusapp/surplus-server/internal/model"
)

// FavoriteServiceInterface はお気に入りハンドラーが必要とするサービスインターフェース。
type FavoriteServiceInterface interface {
	// Add はお気に入りを冪等に登録する。
	Add(ctx context.Context, username, itemID string, snapshot model.ItemSnapshot) (*favorite.AddResult, error)
	// Remove はお気に入りを解除する。
	Remove(ctx context.Context, username, itemID string) error
	// List はユーザーのお気に入り一覧を新着順で返す。
	List(ctx context.Context, username string) ([]*model.Favorite, error)
	// Check は(username, itemId)の組が登録済みかを返す。
	Check(ctx context.Context, username, itemID string) (bool, error)
}

// FavoriteHandler はお気に入り管理のHTTPハンドラー。
type FavoriteHandler struct {
	service FavoriteServiceInterface
}

// NewFavoriteHandler はFavoriteHandlerを生成する。
func NewFavoriteHandler(service FavoriteServiceInterface) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// favoritePairRequest は登録・解除リクエストのボディ。
type favoritePairRequest struct {
	Username string             `json:"username"`
	ItemID   string             `json:"itemId"`
	ItemData model.ItemSnapshot `json:"itemData"`
}

// favoriteResponse はお気に入りのワイヤ形式。
type favoriteResponse struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	ItemID    string             `json:"itemId"`
	ItemData  model.ItemSnapshot `json:"itemData"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// toFavoriteResponse はFavoriteをワイヤ形式に変換する。
func toFavoriteResponse(f *model.Favorite) favoriteResponse {
	return favoriteResponse{
		ID:        f.ID,
		Username:  f.Username,
		ItemID:    f.ItemID,
		ItemData:  f.ItemData,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// AddFavorite はお気に入りを登録する。
// POST /api/favorites
// 既に登録済みの場合は200でデータを変更せずに成功を返す（冪等）。
// 新規登録は201。ステータスとメッセージで区別できる。
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoritePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	result, err := h.service.Add(r.Context(), req.Username, req.ItemID, req.ItemData)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if result.AlreadyExisted {
		writeSuccess(w, http.StatusOK, toFavoriteResponse(result.Favorite), "Item already in favorites")
		return
	}

	writeSuccess(w, http.StatusCreated, toFavoriteResponse(result.Favorite), "Item added to favorites")
}

// RemoveFavorite はお気に入りを解除する。
// DELETE /api/favorites（対象の組はボディで指定）
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoritePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.service.Remove(r.Context(), req.Username, req.ItemID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Item removed from favorites")
}

// ListFavorites はユーザーのお気に入り一覧を取得する。
// GET /api/favorites/:username
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	favorites, err := h.service.List(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]favoriteResponse, len(favorites))
	for i, f := range favorites {
		responses[i] = toFavoriteResponse(f)
	}

	writeSuccessWithCount(w, http.StatusOK, responses, len(responses))
}

// CheckFavorite は(username, itemId)の組が登録済みかを返す。
// GET /api/favorites/check?username=&itemId=
// 未登録はisFavorite=falseであってエラーではない。
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	itemID := r.URL.Query().Get("itemId")

	isFavorite, err := h.service.Check(r.Context(), username, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success:    true,
		IsFavorite: &isFavorite,
	})
}
