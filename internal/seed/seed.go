// Package seed はデモ用出品データの投入機能を提供する。
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/surplusapp/surplus-server/internal/item"
	"github.com/surplusapp/surplus-server/internal/repository"
)

// Seeder はデモ出品をストアへ冪等に投入する。
// 既に同じタイトル・サブタイトルの出品が存在する場合はスキップするため、
// 何度実行しても重複は発生しない。
type Seeder struct {
	itemRepo    repository.ItemRepository
	itemService *item.Service
	logger      *slog.Logger
}

// NewSeeder はSeederの新しいインスタンスを生成する。
func NewSeeder(
	itemRepo repository.ItemRepository,
	itemService *item.Service,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		itemRepo:    itemRepo,
		itemService: itemService,
		logger:      logger,
	}
}

// Run はデモ出品を投入する。投入・スキップ件数を返す。
func (s *Seeder) Run(ctx context.Context) (created, skipped int, err error) {
	for _, input := range demoItems() {
		existing, err := s.itemRepo.FindByTitleAndSubtitle(ctx, input.Title, input.Subtitle)
		if err != nil {
			return created, skipped, fmt.Errorf("既存出品の確認に失敗しました: %w", err)
		}
		if existing != nil {
			s.logger.Info("seed item skipped",
				slog.String("title", input.Title),
				slog.String("subtitle", input.Subtitle))
			skipped++
			continue
		}

		if _, err := s.itemService.Create(ctx, input); err != nil {
			return created, skipped, fmt.Errorf("出品の投入に失敗しました: %w", err)
		}
		s.logger.Info("seed item created",
			slog.String("title", input.Title),
			slog.String("subtitle", input.Subtitle))
		created++
	}
	return created, skipped, nil
}

// demoItems は投入するデモ出品の一覧を返す。
func demoItems() []*item.CreateInput {
	return []*item.CreateInput{
		{
			Title:                "Pret - Trafalgar Square South",
			Subtitle:             "Breakfast Bag",
			CollectWindow:        "today 16:00 - 16:30",
			Distance:             "58 m",
			CurrentPrice:         "£3.00",
			OriginalPrice:        "£9.00",
			ImageURI:             "https://images.unsplash.com/photo-1504753793650-d4a2b783c15e?auto=format&fit=crop&w=800&q=80",
			Rating:               "4.9",
			AvailabilityLabel:    "Sold out",
			ReviewCount:          45,
			Description:          "A selection of delicious freshly made flatbreads, paninis, salad boxes, cakes, pastries and much more.",
			Category:             "Meals",
			Address:              "Trafalgar Square South, London",
			CollectionExperience: floatPtr(4.8),
			FoodQuality:          floatPtr(4.9),
			CollectionDay:        "Today",
		},
		{
			Title:                "Sidequest Gamers Hub - Charing Cross",
			Subtitle:             "Bubble Tea Surprise Bag",
			CollectWindow:        "tomorrow 10:30 - 11:00",
			Distance:             "561 m",
			CurrentPrice:         "£4.00",
			OriginalPrice:        "£12.00",
			ImageURI:             "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=800&q=80",
			Rating:               "4.7",
			AvailabilityLabel:    "New",
			ReviewCount:          32,
			Description:          "A selection of bubble teas and snacks from our gaming hub.",
			Category:             "Drinks",
			Address:              "Charing Cross, London",
			CollectionExperience: floatPtr(4.6),
			FoodQuality:          floatPtr(4.7),
			CollectionDay:        "Tomorrow",
		},
		{
			Title:                "Caffè Nero - Trafalgar Sq",
			Subtitle:             "Standard Bag",
			CollectWindow:        "tomorrow 01:30 - 02:30",
			Distance:             "55 m",
			CurrentPrice:         "£4.49",
			OriginalPrice:        "£10.00",
			ImageURI:             "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=400",
			Rating:               "4.2",
			AvailabilityLabel:    "1 left",
			ReviewCount:          20,
			Description:          "A selection of delicious freshly made flatbreads, paninis, salad boxes, cakes, pastries and much more.",
			Category:             "Meals",
			Address:              "60-61 Trafalgar Square, St. James's, London WC2N 5DS, UK",
			CollectionExperience: floatPtr(4.5),
			FoodQuality:          floatPtr(4.2),
			CollectionDay:        "Tomorrow",
		},
		{
			Title:                "Pret - Trafalgar Square South",
			Subtitle:             "Lunch Bag",
			CollectWindow:        "today 20:00 - 20:30",
			Distance:             "58 m",
			CurrentPrice:         "£4.00",
			OriginalPrice:        "£12.00",
			ImageURI:             "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=400",
			Rating:               "4.3",
			AvailabilityLabel:    "Selling fast",
			ReviewCount:          35,
			Description:          "A selection of lunch items including soups, sandwiches, and salads.",
			Category:             "Meals",
			Address:              "Trafalgar Square South, London",
			CollectionExperience: floatPtr(4.4),
			FoodQuality:          floatPtr(4.3),
			IsSellingFast:        true,
			CollectionDay:        "Today",
		},
		{
			Title:                "The Trafalgar St. James London, Curio Collection by Hilton - Victoria",
			Subtitle:             "Small Baked goods",
			CollectWindow:        "today 16:00 - 16:30",
			Distance:             "99 m",
			CurrentPrice:         "£3.00",
			OriginalPrice:        "£9.00",
			ImageURI:             "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400",
			Rating:               "4.2",
			AvailabilityLabel:    "2 left",
			ReviewCount:          28,
			Description:          "A selection of freshly baked pastries, croissants, and cakes.",
			Category:             "Bread & pastries",
			Address:              "Victoria, London",
			CollectionExperience: floatPtr(4.3),
			FoodQuality:          floatPtr(4.2),
			CollectionDay:        "Today",
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
