// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Messageはそのままレスポンスのmessageフィールドとして返される。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ（クライアント向け）
	Category string // カテゴリ: validation, not_found, conflict, system, unavailable
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// エラーカテゴリ。
const (
	CategoryValidation  = "validation"
	CategoryNotFound    = "not_found"
	CategoryConflict    = "conflict"
	CategorySystem      = "system"
	CategoryUnavailable = "unavailable"
)

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeRatingOutOfRange   = "RATING_OUT_OF_RANGE"
	ErrCodeInvalidCollection  = "INVALID_COLLECTION_DAY"
	ErrCodeItemNotFound       = "ITEM_NOT_FOUND"
	ErrCodeFavoriteNotFound   = "FAVORITE_NOT_FOUND"
	ErrCodeOnboardingNotFound = "ONBOARDING_NOT_FOUND"
	ErrCodeStoreUnavailable   = "STORE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewMissingFieldError は必須フィールド欠落エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("%s is required", field),
		Category: CategoryValidation,
	}
}

// NewRatingOutOfRangeError はサブ評価が0〜5の範囲外の場合のエラーを生成する。
func NewRatingOutOfRangeError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeRatingOutOfRange,
		Message:  fmt.Sprintf("%s must be between 0 and 5", field),
		Category: CategoryValidation,
	}
}

// NewInvalidCollectionDayError はcollectionDayが有効値でない場合のエラーを生成する。
func NewInvalidCollectionDayError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCollection,
		Message:  fmt.Sprintf("collectionDay must be Today or Tomorrow, got %q", value),
		Category: CategoryValidation,
	}
}

// NewItemNotFoundError は商品未検出エラーを生成する。
func NewItemNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeItemNotFound,
		Message:  "Item not found",
		Category: CategoryNotFound,
	}
}

// NewFavoriteNotFoundError はお気に入り未検出エラーを生成する。
func NewFavoriteNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeFavoriteNotFound,
		Message:  "Favorite not found",
		Category: CategoryNotFound,
	}
}

// NewOnboardingNotFoundError はオンボーディング記録未検出エラーを生成する。
func NewOnboardingNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeOnboardingNotFound,
		Message:  "Onboarding data not found",
		Category: CategoryNotFound,
	}
}

// NewStoreUnavailableError はデータストア接続不能時のエラーを生成する。
// DB未接続のまま稼働を続ける構成（degrade-gracefully）で使用する。
func NewStoreUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeStoreUnavailable,
		Message:  "Storage is temporarily unavailable",
		Category: CategoryUnavailable,
	}
}
