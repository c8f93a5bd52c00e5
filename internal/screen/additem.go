package screen

import (
	"context"
	"fmt"
	"strconv"

	"github.com/surplusapp/surplus-server/internal/appclient"
	"github.com/surplusapp/surplus-server/internal/model"
)

// ItemCreator は出品作成のインターフェース。*appclient.Clientが満たす。
type ItemCreator interface {
	CreateItem(ctx context.Context, payload map[string]interface{}) appclient.ItemResult
}

// AddItemForm は出品作成フォームの入力状態を保持する。
// ビューモデルと違い非同期状態を持たないため、単純な値の入れ物とする。
type AddItemForm struct {
	Title             string
	Subtitle          string
	CollectWindow     string
	Distance          string
	CurrentPrice      string
	OriginalPrice     string
	ImageURI          string
	Rating            string
	Description       string
	Category          string
	Address           string
	AvailabilityLabel string
	CollectionDay     string
	IsSellingFast     bool
}

// Validate はフォーム入力を検証する。
// 必須フィールドの欠落、数値として解釈できないか0〜5を外れるrating、
// 不正なcollectionDayをエラーとして返す。
func (f *AddItemForm) Validate() error {
	mandatory := []struct {
		name  string
		value string
	}{
		{"title", f.Title},
		{"subtitle", f.Subtitle},
		{"collectWindow", f.CollectWindow},
		{"distance", f.Distance},
		{"currentPrice", f.CurrentPrice},
		{"imageUri", f.ImageURI},
	}
	for _, field := range mandatory {
		if field.value == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	if f.Rating != "" {
		rating, err := strconv.ParseFloat(f.Rating, 64)
		if err != nil {
			return fmt.Errorf("rating must be a number: %q", f.Rating)
		}
		if rating < 0 || rating > 5 {
			return fmt.Errorf("rating must be between 0 and 5: %v", rating)
		}
	}

	if d := f.CollectionDay; d != "" &&
		d != model.CollectionDayToday && d != model.CollectionDayTomorrow {
		return fmt.Errorf("collectionDay must be Today or Tomorrow: %q", d)
	}

	return nil
}

// Payload は出品作成リクエストのボディを組み立てる。
// 空の任意フィールドは省略する。reviewCountは新規出品のため常に0。
func (f *AddItemForm) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"title":         f.Title,
		"subtitle":      f.Subtitle,
		"collectWindow": f.CollectWindow,
		"distance":      f.Distance,
		"currentPrice":  f.CurrentPrice,
		"imageUri":      f.ImageURI,
		"isSellingFast": f.IsSellingFast,
		"reviewCount":   0,
	}

	optional := map[string]string{
		"originalPrice":     f.OriginalPrice,
		"rating":            f.Rating,
		"description":       f.Description,
		"category":          f.Category,
		"address":           f.Address,
		"availabilityLabel": f.AvailabilityLabel,
		"collectionDay":     f.CollectionDay,
	}
	for key, value := range optional {
		if value != "" {
			payload[key] = value
		}
	}

	return payload
}

// Submit は入力を検証し、出品作成リクエストを送信する。
// 検証エラーはサーバーに送らずローカルで返す。
func (f *AddItemForm) Submit(ctx context.Context, client ItemCreator) (appclient.ItemResult, error) {
	if err := f.Validate(); err != nil {
		return appclient.ItemResult{}, err
	}
	return client.CreateItem(ctx, f.Payload()), nil
}
