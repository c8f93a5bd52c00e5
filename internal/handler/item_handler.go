package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/surplusapp/surplus-server/internal/item"
	"github.com/surplusapp/surplus-server/internal/model"
)

// ItemServiceInterface は出品ハンドラーが必要とするサービスインターフェース。
type ItemServiceInterface interface {
	// Create は出品を検証して永続化し、生成されたIDつきで返す。
	Create(ctx context.Context, input *item.CreateInput) (*model.Item, error)
	// List は出品一覧を新着順で返す。categoryが空または"All"の場合はフィルタしない。
	List(ctx context.Context, category string) ([]*model.Item, error)
	// Get は指定IDの出品を返す。
	Get(ctx context.Context, id string) (*model.Item, error)
}

// ItemHandler は出品管理のHTTPハンドラー。
type ItemHandler struct {
	service ItemServiceInterface
}

// NewItemHandler はItemHandlerを生成する。
func NewItemHandler(service ItemServiceInterface) *ItemHandler {
	return &ItemHandler{service: service}
}

// createItemRequest は出品作成リクエストのボディ。
// フィールド名はモバイルクライアントの送信形式に一致させる。
type createItemRequest struct {
	Title                string   `json:"title"`
	Subtitle             string   `json:"subtitle"`
	CollectWindow        string   `json:"collectWindow"`
	Distance             string   `json:"distance"`
	CurrentPrice         string   `json:"currentPrice"`
	OriginalPrice        string   `json:"originalPrice"`
	ImageURI             string   `json:"imageUri"`
	Rating               string   `json:"rating"`
	ReviewCount          int      `json:"reviewCount"`
	Badge                string   `json:"badge"`
	AvailabilityLabel    string   `json:"availabilityLabel"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	Address              string   `json:"address"`
	CollectionExperience *float64 `json:"collectionExperience"`
	FoodQuality          *float64 `json:"foodQuality"`
	Variety              *float64 `json:"variety"`
	Quantity             *float64 `json:"quantity"`
	IsSellingFast        bool     `json:"isSellingFast"`
	CollectionDay        string   `json:"collectionDay"`
}

// toItemResponse はItemをワイヤ形式（BagData互換のスナップショット形式）に変換する。
func toItemResponse(i *model.Item) model.ItemSnapshot {
	return model.SnapshotFromItem(i)
}

// CreateItem は出品を作成する。
// POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), &item.CreateInput{
		Title:                req.Title,
		Subtitle:             req.Subtitle,
		CollectWindow:        req.CollectWindow,
		Distance:             req.Distance,
		CurrentPrice:         req.CurrentPrice,
		OriginalPrice:        req.OriginalPrice,
		ImageURI:             req.ImageURI,
		Rating:               req.Rating,
		ReviewCount:          req.ReviewCount,
		Badge:                req.Badge,
		AvailabilityLabel:    req.AvailabilityLabel,
		Description:          req.Description,
		Category:             req.Category,
		Address:              req.Address,
		CollectionExperience: req.CollectionExperience,
		FoodQuality:          req.FoodQuality,
		Variety:              req.Variety,
		Quantity:             req.Quantity,
		IsSellingFast:        req.IsSellingFast,
		CollectionDay:        req.CollectionDay,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, toItemResponse(created), "Item created successfully")
}

// ListItems は出品一覧を取得する。
// GET /api/items?category=<c>（"All"または未指定はフィルタなし）
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	items, err := h.service.List(r.Context(), category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]model.ItemSnapshot, len(items))
	for i, it := range items {
		responses[i] = toItemResponse(it)
	}

	writeSuccessWithCount(w, http.StatusOK, responses, len(responses))
}

// GetItem は出品詳細を取得する。
// GET /api/items/:id
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, toItemResponse(found), "")
}
