package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/surplusapp/surplus-server/internal/model"
	"github.com/surplusapp/surplus-server/internal/onboarding"
)

// OnboardingServiceInterface はオンボーディングハンドラーが必要とするサービスインターフェース。
type OnboardingServiceInterface interface {
	// Save は設定をUPSERTする。再送信は上書きになる。
	Save(ctx context.Context, input *onboarding.SaveInput) (*onboarding.SaveResult, error)
	// Get は指定ユーザーの設定を返す。
	Get(ctx context.Context, username string) (*model.Onboarding, error)
}

// OnboardingHandler はオンボーディング設定のHTTPハンドラー。
type OnboardingHandler struct {
	service OnboardingServiceInterface
}

// NewOnboardingHandler はOnboardingHandlerを生成する。
func NewOnboardingHandler(service OnboardingServiceInterface) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// saveOnboardingRequest は設定保存リクエストのボディ。
type saveOnboardingRequest struct {
	Username                 string   `json:"username"`
	Motivations              []string `json:"motivations"`
	CollectionTimes          []string `json:"collectionTimes"`
	PushNotificationsEnabled bool     `json:"pushNotificationsEnabled"`
}

// onboardingResponse はオンボーディング設定のワイヤ形式。
type onboardingResponse struct {
	ID                       string    `json:"id"`
	Username                 string    `json:"username"`
	Motivations              []string  `json:"motivations"`
	CollectionTimes          []string  `json:"collectionTimes"`
	PushNotificationsEnabled bool      `json:"pushNotificationsEnabled"`
	CompletedAt              time.Time `json:"completedAt"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// toOnboardingResponse はOnboardingをワイヤ形式に変換する。
func toOnboardingResponse(o *model.Onboarding) onboardingResponse {
	return onboardingResponse{
		ID:                       o.ID,
		Username:                 o.Username,
		Motivations:              o.Motivations,
		CollectionTimes:          o.CollectionTimes,
		PushNotificationsEnabled: o.PushNotificationsEnabled,
		CompletedAt:              o.CompletedAt,
		CreatedAt:                o.CreatedAt,
		UpdatedAt:                o.UpdatedAt,
	}
}

// SaveOnboarding は設定を保存する。
// POST /api/onboarding
// 既存レコードがあれば上書きで200、新規作成は201。
func (h *OnboardingHandler) SaveOnboarding(w http.ResponseWriter, r *http.Request) {
	var req saveOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	result, err := h.service.Save(r.Context(), &onboarding.SaveInput{
		Username:                 req.Username,
		Motivations:              req.Motivations,
		CollectionTimes:          req.CollectionTimes,
		PushNotificationsEnabled: req.PushNotificationsEnabled,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if result.Created {
		writeSuccess(w, http.StatusCreated, toOnboardingResponse(result.Onboarding), "Onboarding created successfully")
		return
	}

	writeSuccess(w, http.StatusOK, toOnboardingResponse(result.Onboarding), "Onboarding updated successfully")
}

// GetOnboarding は指定ユーザーの設定を取得する。
// GET /api/onboarding/:username
func (h *OnboardingHandler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	found, err := h.service.Get(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, toOnboardingResponse(found), "")
}
