// Package model はドメインモデルを定義する。
package model

import "time"

// Item は店舗が出品するサプライズバッグ（余剰食品の詰め合わせ）を表す。
// 価格や距離は表示用にフォーマット済みの文字列をそのまま保持する。
type Item struct {
	ID                string
	Title             string // 店舗名
	Subtitle          string // バッグ名
	CollectWindow     string // 受け取り時間帯（例: "today 16:00 - 16:30"）
	Distance          string // 例: "58 m"
	CurrentPrice      string // 例: "£4.00"
	OriginalPrice     string // 例: "£12.00"
	ImageURI          string
	Rating            string // 例: "4.2"
	ReviewCount       int
	Badge             string
	AvailabilityLabel string // 例: "1 left", "Selling fast", "New"
	Description       string
	Category          string // 例: "Meals", "Drinks", "Bread & pastries"
	Address           string

	// サブ評価（0〜5）。未設定の場合はnil。
	CollectionExperience *float64
	FoodQuality          *float64
	Variety              *float64
	Quantity             *float64

	IsSellingFast bool
	CollectionDay string // CollectionDayToday または CollectionDayTomorrow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectionDay の有効値。
const (
	// CollectionDayToday は当日受け取りを表す。
	CollectionDayToday = "Today"
	// CollectionDayTomorrow は翌日受け取りを表す。
	CollectionDayTomorrow = "Tomorrow"
)

// CategoryAll はカテゴリフィルタなしを表す特別値。
const CategoryAll = "All"

// ItemSnapshot はお気に入り登録時点のItemの非正規化スナップショット。
// お気に入り一覧をItemとのJOINなしで描画するための読み取り最適化であり、
// 登録後に元のItemが変化しても追従しない（意図的にstale）。
// JSONタグはモバイルクライアントのBagData形式に一致させる。
type ItemSnapshot struct {
	ID                   string   `json:"id,omitempty"`
	Title                string   `json:"title,omitempty"`
	Subtitle             string   `json:"subtitle,omitempty"`
	CollectWindow        string   `json:"collectWindow,omitempty"`
	Distance             string   `json:"distance,omitempty"`
	CurrentPrice         string   `json:"currentPrice,omitempty"`
	OriginalPrice        string   `json:"originalPrice,omitempty"`
	ImageURI             string   `json:"imageUri,omitempty"`
	Rating               string   `json:"rating,omitempty"`
	ReviewCount          int      `json:"reviewCount,omitempty"`
	Badge                string   `json:"badge,omitempty"`
	AvailabilityLabel    string   `json:"availabilityLabel,omitempty"`
	Description          string   `json:"description,omitempty"`
	Category             string   `json:"category,omitempty"`
	Address              string   `json:"address,omitempty"`
	CollectionExperience *float64 `json:"collectionExperience,omitempty"`
	FoodQuality          *float64 `json:"foodQuality,omitempty"`
	Variety              *float64 `json:"variety,omitempty"`
	Quantity             *float64 `json:"quantity,omitempty"`
	IsSellingFast        bool     `json:"isSellingFast,omitempty"`
	CollectionDay        string   `json:"collectionDay,omitempty"`
}

// SnapshotFromItem はItemからスナップショットを作成する。
func SnapshotFromItem(item *Item) ItemSnapshot {
	return ItemSnapshot{
		ID:                   item.ID,
		Title:                item.Title,
		Subtitle:             item.Subtitle,
		CollectWindow:        item.CollectWindow,
		Distance:             item.Distance,
		CurrentPrice:         item.CurrentPrice,
		OriginalPrice:        item.OriginalPrice,
		ImageURI:             item.ImageURI,
		Rating:               item.Rating,
		ReviewCount:          item.ReviewCount,
		Badge:                item.Badge,
		AvailabilityLabel:    item.AvailabilityLabel,
		Description:          item.Description,
		Category:             item.Category,
		Address:              item.Address,
		CollectionExperience: item.CollectionExperience,
		FoodQuality:          item.FoodQuality,
		Variety:              item.Variety,
		Quantity:             item.Quantity,
		IsSellingFast:        item.IsSellingFast,
		CollectionDay:        item.CollectionDay,
	}
}

// IsEmpty はスナップショットが空かどうかを返す。
func (s ItemSnapshot) IsEmpty() bool {
	return s == ItemSnapshot{}
}
