// Package model はドメインモデルを定義する。
package model

import "time"

// Onboarding はオンボーディングで選択された設定を表す。
// usernameごとに最大1件で、再送信時は上書き（UPSERT）される。
type Onboarding struct {
	ID                       string
	Username                 string
	Motivations              []string // ステップ1で選択された動機
	CollectionTimes          []string // ステップ2で選択された受け取り時間帯
	PushNotificationsEnabled bool     // ステップ3のプッシュ通知設定
	CompletedAt              time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
