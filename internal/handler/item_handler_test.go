package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/surplusapp/surplus-server/internal/item"
	"github.com/surplusapp/surplus-server/internal/model"
)

// --- モック定義 ---

// mockItemService はItemServiceInterfaceのモック実装。
type mockItemService struct {
	createFn func(ctx context.Context, input *item.CreateInput) (*model.Item, error)
	listFn   func(ctx context.Context, category string) ([]*model.Item, error)
	getFn    func(ctx context.Context, id string) (*model.Item, error)
}

func (m *mockItemService) Create(ctx context.Context, input *item.CreateInput) (*model.Item, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.Item{}, nil
}

func (m *mockItemService) List(ctx context.Context, category string) ([]*model.Item, error) {
	if m.listFn != nil {
		return m.listFn(ctx, category)
	}
	return []*model.Item{}, nil
}

func (m *mockItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &model.Item{}, nil
}

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// decodeEnvelope はレスポンスボディをエンベロープにパースするヘルパー。
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return result
}

// --- POST /api/items テスト ---

func TestItemHandler_CreateItem_Success(t *testing.T) {
	now := time.Now().UTC()
	svc := &mockItemService{
		createFn: func(ctx context.Context, input *item.CreateInput) (*model.Item, error) {
			if input.Title != "Pret" {
				t.Errorf("title = %q, want %q", input.Title, "Pret")
			}
			if input.ImageURI != "https://x/y.jpg" {
				t.Errorf("imageUri = %q, want %q", input.ImageURI, "https://x/y.jpg")
			}
			return &model.Item{
				ID:            "item-1",
				Title:         input.Title,
				Subtitle:      input.Subtitle,
				CollectWindow: input.CollectWindow,
				Distance:      input.Distance,
				CurrentPrice:  input.CurrentPrice,
				ImageURI:      input.ImageURI,
				CreatedAt:     now,
				UpdatedAt:     now,
			}, nil
		},
	}

	h := NewItemHandler(svc)

	body := `{"title":"Pret","subtitle":"Lunch Bag","collectWindow":"today 20:00-20:30","distance":"58 m","currentPrice":"£4.00","imageUri":"https://x/y.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateItem(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}

	result := decodeEnvelope(t, w)
	if result["success"] != true {
		t.Error("expected success to be true")
	}
	if result["message"] != "Item created successfully" {
		t.Errorf("message = %v, want %q", result["message"], "Item created successfully")
	}

	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected data object in response")
	}
	if data["id"] != "item-1" {
		t.Errorf("data.id = %v, want %q", data["id"], "item-1")
	}
	if data["title"] != "Pret" {
		t.Errorf("data.title = %v, want %q", data["title"], "Pret")
	}
}

func TestItemHandler_CreateItem_MissingMandatoryField(t *testing.T) {
	svc := &mockItemService{
		createFn: func(ctx context.Context, input *item.CreateInput) (*model.Item, error) {
			return nil, model.NewMissingFieldError("imageUri")
		},
	}

	h := NewItemHandler(svc)

	body := `{"title":"Pret","subtitle":"Lunch Bag","collectWindow":"today","distance":"58 m","currentPrice":"£4.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateItem(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}

	result := decodeEnvelope(t, w)
	if result["success"] != false {
		t.Error("expected success to be false")
	}
	if result["error"] != model.ErrCodeMissingField {
		t.Errorf("error = %v, want %q", result["error"], model.ErrCodeMissingField)
	}
}

func TestItemHandler_CreateItem_InvalidBody(t *testing.T) {
	called := false
	svc := &mockItemService{
		createFn: func(ctx context.Context, input *item.CreateInput) (*model.Item, error) {
			called = true
			return nil, nil
		},
	}

	h := NewItemHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/items", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	h.CreateItem(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
	if called {
		t.Error("service should not be called for invalid body")
	}
}

func TestItemHandler_CreateItem_RatingOutOfRange(t *testing.T) {
	svc := &mockItemService{
		createFn: func(ctx context.Context, input *item.CreateInput) (*model.Item, error) {
			return nil, model.NewRatingOutOfRangeError("foodQuality")
		},
	}

	h := NewItemHandler(svc)

	body := `{"title":"Pret","subtitle":"Lunch Bag","collectWindow":"today","distance":"58 m","currentPrice":"£4.00","imageUri":"https://x/y.jpg","foodQuality":7.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateItem(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

// --- GET /api/items テスト ---

func TestItemHandler_ListItems_Success(t *testing.T) {
	svc := &mockItemService{
		listFn: func(ctx context.Context, category string) ([]*model.Item, error) {
			if category != "Meals" {
				t.Errorf("category = %q, want %q", category, "Meals")
			}
			return []*model.Item{
				{ID: "item-1", Title: "Pret"},
				{ID: "item-2", Title: "Caffè Nero"},
			}, nil
		},
	}

	h := NewItemHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items?category=Meals", nil)
	w := httptest.NewRecorder()

	h.ListItems(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	result := decodeEnvelope(t, w)
	if result["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := result["data"].([]interface{})
	if !ok {
		t.Fatal("expected data array in response")
	}
	if len(data) != 2 {
		t.Errorf("data length = %d, want 2", len(data))
	}

	count, ok := result["count"].(float64)
	if !ok || count != 2 {
		t.Errorf("count = %v, want 2", result["count"])
	}
}

func TestItemHandler_ListItems_EmptyIsNotAnError(t *testing.T) {
	svc := &mockItemService{
		listFn: func(ctx context.Context, category string) ([]*model.Item, error) {
			return []*model.Item{}, nil
		},
	}

	h := NewItemHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	w := httptest.NewRecorder()

	h.ListItems(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	result := decodeEnvelope(t, w)
	count, ok := result["count"].(float64)
	if !ok || count != 0 {
		t.Errorf("count = %v, want 0", result["count"])
	}
}

// --- GET /api/items/:id テスト ---

func TestItemHandler_GetItem_Success(t *testing.T) {
	svc := &mockItemService{
		getFn: func(ctx context.Context, id string) (*model.Item, error) {
			if id != "item-1" {
				t.Errorf("id = %q, want %q", id, "item-1")
			}
			return &model.Item{ID: "item-1", Title: "Pret", Subtitle: "Lunch Bag"}, nil
		},
	}

	h := NewItemHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items/item-1", nil)
	req = withChiURLParam(req, "id", "item-1")
	w := httptest.NewRecorder()

	h.GetItem(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	result := decodeEnvelope(t, w)
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatal("expected data object in response")
	}
	if data["subtitle"] != "Lunch Bag" {
		t.Errorf("data.subtitle = %v, want %q", data["subtitle"], "Lunch Bag")
	}
}

func TestItemHandler_GetItem_NotFound(t *testing.T) {
	svc := &mockItemService{
		getFn: func(ctx context.Context, id string) (*model.Item, error) {
			return nil, model.NewItemNotFoundError()
		},
	}

	h := NewItemHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/items/nonexistent", nil)
	req = withChiURLParam(req, "id", "nonexistent")
	w := httptest.NewRecorder()

	h.GetItem(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}

	result := decodeEnvelope(t, w)
	if result["error"] != model.ErrCodeItemNotFound {
		t.Errorf("error = %v, want %q", result["error"], model.ErrCodeItemNotFound)
	}
}
