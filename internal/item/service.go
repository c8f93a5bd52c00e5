// Package item はサプライズバッグ出品の管理機能を提供する。
package item

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/surplusapp/surplus-server/internal/model"
	"github.com/surplusapp/surplus-server/internal/repository"
	"github.com/surplusapp/surplus-server/internal/security"
)

// Service は出品の作成・一覧・取得のサービス。
type Service struct {
	itemRepo  repository.ItemRepository
	sanitizer security.TextSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	itemRepo repository.ItemRepository,
	sanitizer security.TextSanitizerService,
) *Service {
	return &Service{
		itemRepo:  itemRepo,
		sanitizer: sanitizer,
	}
}

// CreateInput は出品作成の入力。
// サブ評価はnilの場合「未設定」を表す。
type CreateInput struct {
	Title             string
	Subtitle          string
	CollectWindow     string
	Distance          string
	CurrentPrice      string
	OriginalPrice     string
	ImageURI          string
	Rating            string
	ReviewCount       int
	Badge             string
	AvailabilityLabel string
	Description       string
	Category          string
	Address           string

	CollectionExperience *float64
	FoodQuality          *float64
	Variety              *float64
	Quantity             *float64

	IsSellingFast bool
	CollectionDay string
}

// mandatoryFields はCreateInputの必須フィールドとワイヤ名の対応。
var mandatoryFields = []struct {
	name  string
	value func(*CreateInput) string
}{
	{"title", func(in *CreateInput) string { return in.Title }},
	{"subtitle", func(in *CreateInput) string { return in.Subtitle }},
	{"collectWindow", func(in *CreateInput) string { return in.CollectWindow }},
	{"distance", func(in *CreateInput) string { return in.Distance }},
	{"currentPrice", func(in *CreateInput) string { return in.CurrentPrice }},
	{"imageUri", func(in *CreateInput) string { return in.ImageURI }},
}

// boundedRatings はCreateInputの0〜5に制限されるサブ評価フィールド。
var boundedRatings = []struct {
	name  string
	value func(*CreateInput) *float64
}{
	{"collectionExperience", func(in *CreateInput) *float64 { return in.CollectionExperience }},
	{"foodQuality", func(in *CreateInput) *float64 { return in.FoodQuality }},
	{"variety", func(in *CreateInput) *float64 { return in.Variety }},
	{"quantity", func(in *CreateInput) *float64 { return in.Quantity }},
}

// Create は出品を検証して永続化し、生成されたIDつきで返す。
// 自由記述フィールドは保存前にサニタイズされる。
// 必須フィールドの欠落、範囲外のサブ評価、不正なcollectionDayはバリデーションエラー。
func (s *Service) Create(ctx context.Context, input *CreateInput) (*model.Item, error) {
	sanitized := s.sanitizeInput(input)

	if err := validateInput(sanitized); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &model.Item{
		ID:                   uuid.NewString(),
		Title:                sanitized.Title,
		Subtitle:             sanitized.Subtitle,
		CollectWindow:        sanitized.CollectWindow,
		Distance:             sanitized.Distance,
		CurrentPrice:         sanitized.CurrentPrice,
		OriginalPrice:        sanitized.OriginalPrice,
		ImageURI:             sanitized.ImageURI,
		Rating:               sanitized.Rating,
		ReviewCount:          sanitized.ReviewCount,
		Badge:                sanitized.Badge,
		AvailabilityLabel:    sanitized.AvailabilityLabel,
		Description:          sanitized.Description,
		Category:             sanitized.Category,
		Address:              sanitized.Address,
		CollectionExperience: sanitized.CollectionExperience,
		FoodQuality:          sanitized.FoodQuality,
		Variety:              sanitized.Variety,
		Quantity:             sanitized.Quantity,
		IsSellingFast:        sanitized.IsSellingFast,
		CollectionDay:        sanitized.CollectionDay,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// List は出品一覧を新着順で返す。
// categoryが空または"All"の場合はフィルタしない。結果0件はエラーではない。
func (s *Service) List(ctx context.Context, category string) ([]*model.Item, error) {
	if category == model.CategoryAll {
		category = ""
	}
	return s.itemRepo.List(ctx, category)
}

// Get は指定IDの出品を返す。見つからない場合はnot foundエラー。
func (s *Service) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.NewItemNotFoundError()
	}
	return item, nil
}

// sanitizeInput は自由記述フィールドをサニタイズしたコピーを返す。
func (s *Service) sanitizeInput(input *CreateInput) *CreateInput {
	out := *input
	out.Title = s.sanitizer.Sanitize(input.Title)
	out.Subtitle = s.sanitizer.Sanitize(input.Subtitle)
	out.CollectWindow = s.sanitizer.Sanitize(input.CollectWindow)
	out.Distance = s.sanitizer.Sanitize(input.Distance)
	out.CurrentPrice = s.sanitizer.Sanitize(input.CurrentPrice)
	out.OriginalPrice = s.sanitizer.Sanitize(input.OriginalPrice)
	out.ImageURI = s.sanitizer.Sanitize(input.ImageURI)
	out.Rating = s.sanitizer.Sanitize(input.Rating)
	out.Badge = s.sanitizer.Sanitize(input.Badge)
	out.AvailabilityLabel = s.sanitizer.Sanitize(input.AvailabilityLabel)
	out.Description = s.sanitizer.Sanitize(input.Description)
	out.Category = s.sanitizer.Sanitize(input.Category)
	out.Address = s.sanitizer.Sanitize(input.Address)
	out.CollectionDay = s.sanitizer.Sanitize(input.CollectionDay)
	return &out
}

// validateInput は出品作成入力のバリデーションを行う。
func validateInput(input *CreateInput) error {
	for _, f := range mandatoryFields {
		if f.value(input) == "" {
			return model.NewMissingFieldError(f.name)
		}
	}

	for _, f := range boundedRatings {
		if v := f.value(input); v != nil && (*v < 0 || *v > 5) {
			return model.NewRatingOutOfRangeError(f.name)
		}
	}

	if d := input.CollectionDay; d != "" &&
		d != model.CollectionDayToday && d != model.CollectionDayTomorrow {
		return model.NewInvalidCollectionDayError(d)
	}

	if input.ReviewCount < 0 {
		return &model.APIError{
			Code:     model.ErrCodeInvalidRequest,
			Message:  "reviewCount must not be negative",
			Category: model.CategoryValidation,
		}
	}

	return nil
}
