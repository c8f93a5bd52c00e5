// Package appclient はモバイルアプリ向けのデータアクセス層を提供する。
// 各メソッドはAPI呼び出し1回を結果値にマップする。ネットワーク障害や
// 非2xxレスポンスは例外として伝播させず、Success=falseの結果値に畳み込む。
// 呼び出し側は結果の形で分岐すればよく、エラーハンドリングを書く必要がない。
package appclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/surplusapp/surplus-server/internal/model"
)

// Client はSurplus APIのクライアント。
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient はClientの新しいインスタンスを生成する。
// httpClientがnilの場合はデフォルトタイムアウトつきのクライアントを使用する。
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FavoriteRecord はお気に入りレコードのワイヤ形式。
type FavoriteRecord struct {
	ID        string             `json:"id"`
	Username  string             `json:"username"`
	ItemID    string             `json:"itemId"`
	ItemData  model.ItemSnapshot `json:"itemData"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// OnboardingRecord はオンボーディング設定のワイヤ形式。
type OnboardingRecord struct {
	ID                       string    `json:"id"`
	Username                 string    `json:"username"`
	Motivations              []string  `json:"motivations"`
	CollectionTimes          []string  `json:"collectionTimes"`
	PushNotificationsEnabled bool      `json:"pushNotificationsEnabled"`
	CompletedAt              time.Time `json:"completedAt"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// ItemsResult は出品一覧取得の結果。
type ItemsResult struct {
	Success bool
	Items   []model.ItemSnapshot
	Message string
}

// ItemResult は出品1件取得の結果。
type ItemResult struct {
	Success bool
	Item    *model.ItemSnapshot
	Message string
}

// FavoriteResult はお気に入り登録・解除の結果。
type FavoriteResult struct {
	Success bool
	Message string
}

// FavoritesResult はお気に入り一覧取得の結果。
type FavoritesResult struct {
	Success   bool
	Favorites []FavoriteRecord
	Message   string
}

// OnboardingResult はオンボーディング設定の保存・取得の結果。
type OnboardingResult struct {
	Success    bool
	Onboarding *OnboardingRecord
	Message    string
}

// apiEnvelope は全エンドポイント共通のレスポンス形式。
type apiEnvelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Count      *int            `json:"count"`
	IsFavorite *bool           `json:"isFavorite"`
}

// GetItems は出品一覧を取得する。categoryが空または"All"の場合はフィルタしない。
// 失敗時はSuccess=falseと空の一覧を返す。
func (c *Client) GetItems(ctx context.Context, category string) ItemsResult {
	endpoint := c.baseURL + "/api/items"
	if category != "" && category != model.CategoryAll {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	env, ok := c.do(ctx, http.MethodGet, endpoint, nil, false)
	if !ok {
		return ItemsResult{Items: []model.ItemSnapshot{}, Message: env.Message}
	}

	var items []model.ItemSnapshot
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			c.logger.Error("failed to parse items response", slog.String("error", err.Error()))
			return ItemsResult{Items: []model.ItemSnapshot{}}
		}
	}
	if items == nil {
		items = []model.ItemSnapshot{}
	}
	return ItemsResult{Success: true, Items: items}
}

// GetItemByID は指定IDの出品を取得する。
// 存在しない場合や失敗時はSuccess=falseを返す。
func (c *Client) GetItemByID(ctx context.Context, id string) ItemResult {
	env, ok := c.do(ctx, http.MethodGet, c.baseURL+"/api/items/"+url.PathEscape(id), nil, false)
	if !ok {
		return ItemResult{Message: env.Message}
	}

	var item model.ItemSnapshot
	if err := json.Unmarshal(env.Data, &item); err != nil {
		c.logger.Error("failed to parse item response", slog.String("error", err.Error()))
		return ItemResult{}
	}
	return ItemResult{Success: true, Item: &item}
}

// CreateItem は出品を作成する。
// 失敗時はSuccess=falseとサーバーのエラーメッセージ（あれば）を返す。
func (c *Client) CreateItem(ctx context.Context, payload map[string]interface{}) ItemResult {
	env, ok := c.do(ctx, http.MethodPost, c.baseURL+"/api/items", payload, false)
	if !ok {
		return ItemResult{Message: env.Message}
	}

	var item model.ItemSnapshot
	if err := json.Unmarshal(env.Data, &item); err != nil {
		c.logger.Error("failed to parse item response", slog.String("error", err.Error()))
		return ItemResult{}
	}
	return ItemResult{Success: true, Item: &item, Message: env.Message}
}

// AddFavorite はお気に入りを登録する。既に登録済みの場合も成功として返る。
func (c *Client) AddFavorite(ctx context.Context, username, itemID string, itemData model.ItemSnapshot) FavoriteResult {
	body := map[string]interface{}{
		"username": username,
		"itemId":   itemID,
		"itemData": itemData,
	}

	env, ok := c.do(ctx, http.MethodPost, c.baseURL+"/api/favorites", body, false)
	if !ok {
		return FavoriteResult{Message: env.Message}
	}
	return FavoriteResult{Success: true, Message: env.Message}
}

// RemoveFavorite はお気に入りを解除する。
func (c *Client) RemoveFavorite(ctx context.Context, username, itemID string) FavoriteResult {
	body := map[string]interface{}{
		"username": username,
		"itemId":   itemID,
	}

	env, ok := c.do(ctx, http.MethodDelete, c.baseURL+"/api/favorites", body, false)
	if !ok {
		return FavoriteResult{Message: env.Message}
	}
	return FavoriteResult{Success: true, Message: env.Message}
}

// GetFavorites は指定ユーザーのお気に入り一覧を取得する。
// 失敗時はSuccess=falseと空の一覧を返す。
func (c *Client) GetFavorites(ctx context.Context, username string) FavoritesResult {
	env, ok := c.do(ctx, http.MethodGet, c.baseURL+"/api/favorites/"+url.PathEscape(username), nil, false)
	if !ok {
		return FavoritesResult{Favorites: []FavoriteRecord{}, Message: env.Message}
	}

	var favorites []FavoriteRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &favorites); err != nil {
			c.logger.Error("failed to parse favorites response", slog.String("error", err.Error()))
			return FavoritesResult{Favorites: []FavoriteRecord{}}
		}
	}
	if favorites == nil {
		favorites = []FavoriteRecord{}
	}
	return FavoritesResult{Success: true, Favorites: favorites}
}

// CheckFavorite は(username, itemId)の組が登録済みかを返す。
// あらゆる失敗はfalseに畳み込む。ハートのタップ前ポーリングで呼ばれるため、
// 429（レート制限）のログは抑制してノイズを減らす。
func (c *Client) CheckFavorite(ctx context.Context, username, itemID string) bool {
	endpoint := fmt.Sprintf("%s/api/favorites/check?username=%s&itemId=%s",
		c.baseURL, url.QueryEscape(username), url.QueryEscape(itemID))

	env, ok := c.do(ctx, http.MethodGet, endpoint, nil, true)
	if !ok {
		return false
	}
	return env.IsFavorite != nil && *env.IsFavorite
}

// SaveOnboardingInput はオンボーディング設定保存の入力。
type SaveOnboardingInput struct {
	Username                 string   `json:"username"`
	Motivations              []string `json:"motivations"`
	CollectionTimes          []string `json:"collectionTimes"`
	PushNotificationsEnabled bool     `json:"pushNotificationsEnabled"`
}

// SaveOnboarding はオンボーディング設定を保存する。再送信は上書きになる。
func (c *Client) SaveOnboarding(ctx context.Context, input SaveOnboardingInput) OnboardingResult {
	env, ok := c.do(ctx, http.MethodPost, c.baseURL+"/api/onboarding", input, false)
	if !ok {
		return OnboardingResult{Message: env.Message}
	}

	var record OnboardingRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		c.logger.Error("failed to parse onboarding response", slog.String("error", err.Error()))
		return OnboardingResult{}
	}
	return OnboardingResult{Success: true, Onboarding: &record, Message: env.Message}
}

// GetOnboarding は指定ユーザーのオンボーディング設定を取得する。
// 未登録の場合や失敗時はSuccess=falseを返す。
func (c *Client) GetOnboarding(ctx context.Context, username string) OnboardingResult {
	env, ok := c.do(ctx, http.MethodGet, c.baseURL+"/api/onboarding/"+url.PathEscape(username), nil, false)
	if !ok {
		return OnboardingResult{Message: env.Message}
	}

	var record OnboardingRecord
	if err := json.Unmarshal(env.Data, &record); err != nil {
		c.logger.Error("failed to parse onboarding response", slog.String("error", err.Error()))
		return OnboardingResult{}
	}
	return OnboardingResult{Success: true, Onboarding: &record}
}

// do はHTTPリクエストを実行し、レスポンスのエンベロープを返す。
// 成否は第2戻り値で返す。失敗時もサーバーが返したmessageがあれば
// エンベロープに保持する。quiet429がtrueの場合、429レスポンスは
// ログに記録しない。
func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, quiet429 bool) (apiEnvelope, bool) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("failed to encode request body", slog.String("error", err.Error()))
			return apiEnvelope{}, false
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		c.logger.Error("failed to create request",
			slog.String("method", method),
			slog.String("url", endpoint),
			slog.String("error", err.Error()),
		)
		return apiEnvelope{}, false
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			slog.String("method", method),
			slog.String("url", endpoint),
			slog.String("error", err.Error()),
		)
		return apiEnvelope{}, false
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read response body", slog.String("error", err.Error()))
		return apiEnvelope{}, false
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("failed to parse response envelope",
			slog.Int("http_status", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return apiEnvelope{}, false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		if !quiet429 || resp.StatusCode != http.StatusTooManyRequests {
			c.logger.Warn("request returned failure",
				slog.String("method", method),
				slog.String("url", endpoint),
				slog.Int("http_status", resp.StatusCode),
				slog.String("message", env.Message),
			)
		}
		return env, false
	}

	return env, true
}
