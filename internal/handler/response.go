// Package handler はHTTP APIのリクエストハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/surplusapp/surplus-server/internal/model"
)

// envelope は全エンドポイント共通のレスポンス形式。
// 既存モバイルクライアントとのワイヤ互換を維持する。
type envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Count      *int        `json:"count,omitempty"`
	IsFavorite *bool       `json:"isFavorite,omitempty"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeSuccess は成功エンベロープを書き込む。
func writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	writeJSON(w, statusCode, envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeSuccessWithCount は件数つきの成功エンベロープを書き込む。
// 一覧系エンドポイントで使用する。空の一覧はエラーではない。
func writeSuccessWithCount(w http.ResponseWriter, statusCode int, data interface{}, count int) {
	writeJSON(w, statusCode, envelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// writeAPIError はAPIErrorをエラーカテゴリに応じたステータスコードで書き込む。
func writeAPIError(w http.ResponseWriter, apiErr *model.APIError) {
	writeJSON(w, statusForCategory(apiErr.Category), envelope{
		Success: false,
		Message: apiErr.Message,
		Error:   apiErr.Code,
	})
}

// statusForCategory はエラーカテゴリをHTTPステータスコードに対応付ける。
func statusForCategory(category string) int {
	switch category {
	case model.CategoryValidation:
		return http.StatusBadRequest
	case model.CategoryNotFound:
		return http.StatusNotFound
	case model.CategoryConflict:
		return http.StatusConflict
	case model.CategoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError はサービス層から返されたエラーをレスポンスに変換する。
// ストアへの接続断は503として返す（DB未接続でも稼働を続ける構成のため）。
// それ以外の想定外エラーは詳細をログのみに記録し、一般的な500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIError(w, apiErr)
		return
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		slog.Warn("storage unreachable", slog.String("error", err.Error()))
		writeAPIError(w, model.NewStoreUnavailableError())
		return
	}

	slog.Error("unexpected service error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: "Internal server error",
		Error:   model.ErrCodeInternal,
	})
}

// writeInvalidBody はリクエストボディ解析失敗の400レスポンスを書き込む。
func writeInvalidBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "Invalid request body",
		Error:   model.ErrCodeInvalidRequest,
	})
}
