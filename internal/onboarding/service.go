// Package onboarding はオンボーディング設定の管理機能を提供する。
package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/surplusapp/surplus-server/internal/model"
	"github.com/surplusapp/surplus-server/internal/repository"
)

// Service はオンボーディング設定の保存・取得のサービス。
type Service struct {
	onboardingRepo repository.OnboardingRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(onboardingRepo repository.OnboardingRepository) *Service {
	return &Service{onboardingRepo: onboardingRepo}
}

// SaveInput はオンボーディング設定保存の入力。
type SaveInput struct {
	Username                 string
	Motivations              []string
	CollectionTimes          []string
	PushNotificationsEnabled bool
}

// SaveResult はSaveの結果。Createdは新規作成されたことを示す。
type SaveResult struct {
	Onboarding *model.Onboarding
	Created    bool
}

// Save は設定をUPSERTする。usernameごとに最大1件で、再送信は上書きになる。
// completedAtは保存のたびに現在時刻へリセットされる。
func (s *Service) Save(ctx context.Context, input *SaveInput) (*SaveResult, error) {
	if input.Username == "" {
		return nil, model.NewMissingFieldError("Username")
	}

	now := time.Now().UTC()
	onboarding := &model.Onboarding{
		ID:                       uuid.NewString(),
		Username:                 input.Username,
		Motivations:              emptyIfNil(input.Motivations),
		CollectionTimes:          emptyIfNil(input.CollectionTimes),
		PushNotificationsEnabled: input.PushNotificationsEnabled,
		CompletedAt:              now,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	created, err := s.onboardingRepo.Upsert(ctx, onboarding)
	if err != nil {
		return nil, err
	}

	return &SaveResult{Onboarding: onboarding, Created: created}, nil
}

// Get は指定ユーザーの設定を返す。未記録の場合はnot foundエラー。
func (s *Service) Get(ctx context.Context, username string) (*model.Onboarding, error) {
	onboarding, err := s.onboardingRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if onboarding == nil {
		return nil, model.NewOnboardingNotFoundError()
	}
	return onboarding, nil
}

// emptyIfNil はnilスライスを空スライスに正規化する。
// JSONBカラムへnullではなく[]を保存するため。
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
