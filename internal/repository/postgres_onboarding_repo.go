package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/surplusapp/surplus-server/internal/model"
)

// PostgresOnboardingRepo はPostgreSQLを使用したオンボーディング設定リポジトリ。
type PostgresOnboardingRepo struct {
	db *sql.DB
}

// NewPostgresOnboardingRepo はPostgresOnboardingRepoを生成する。
func NewPostgresOnboardingRepo(db *sql.DB) *PostgresOnboardingRepo {
	return &PostgresOnboardingRepo{db: db}
}

// Upsert は設定を原子的にUPSERTする。
// 存在確認と書き込みの2段階では確認と書き込みの間にレースがあるため、
// 単一のINSERT ... ON CONFLICT文で行う。新規作成された場合はtrueを返す。
func (r *PostgresOnboardingRepo) Upsert(ctx context.Context, onboarding *model.Onboarding) (bool, error) {
	motivations, err := json.Marshal(onboarding.Motivations)
	if err != nil {
		return false, fmt.Errorf("動機リストのシリアライズに失敗しました: %w", err)
	}
	collectionTimes, err := json.Marshal(onboarding.CollectionTimes)
	if err != nil {
		return false, fmt.Errorf("受け取り時間リストのシリアライズに失敗しました: %w", err)
	}

	// xmax = 0 は更新されていない（＝今INSERTされた）行の判定
	var created bool
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO onboarding (id, username, motivations, collection_times,
		                         push_notifications_enabled, completed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (username) DO UPDATE SET
		     motivations = EXCLUDED.motivations,
		     collection_times = EXCLUDED.collection_times,
		     push_notifications_enabled = EXCLUDED.push_notifications_enabled,
		     completed_at = EXCLUDED.completed_at,
		     updated_at = EXCLUDED.updated_at
		 RETURNING id, created_at, (xmax = 0)`,
		onboarding.ID, onboarding.Username, motivations, collectionTimes,
		onboarding.PushNotificationsEnabled, onboarding.CompletedAt,
		onboarding.CreatedAt, onboarding.UpdatedAt,
	).Scan(&onboarding.ID, &onboarding.CreatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("オンボーディング設定のUPSERTに失敗しました: %w", err)
	}

	return created, nil
}

// FindByUsername は指定ユーザーの設定を取得する。見つからない場合はnilを返す。
func (r *PostgresOnboardingRepo) FindByUsername(ctx context.Context, username string) (*model.Onboarding, error) {
	onboarding := &model.Onboarding{}
	var motivations, collectionTimes []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, motivations, collection_times,
		        push_notifications_enabled, completed_at, created_at, updated_at
		 FROM onboarding WHERE username = $1`,
		username,
	).Scan(
		&onboarding.ID, &onboarding.Username, &motivations, &collectionTimes,
		&onboarding.PushNotificationsEnabled, &onboarding.CompletedAt,
		&onboarding.CreatedAt, &onboarding.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("オンボーディング設定の取得に失敗しました: %w", err)
	}

	if err := json.Unmarshal(motivations, &onboarding.Motivations); err != nil {
		return nil, fmt.Errorf("動機リストの復元に失敗しました: %w", err)
	}
	if err := json.Unmarshal(collectionTimes, &onboarding.CollectionTimes); err != nil {
		return nil, fmt.Errorf("受け取り時間リストの復元に失敗しました: %w", err)
	}

	return onboarding, nil
}

// compile-time interface check
var _ OnboardingRepository = (*PostgresOnboardingRepo)(nil)
