// Package model はドメインモデルを定義する。
package model

import "time"

// Favorite はユーザーのお気に入り登録を表す。
// usernameはクライアントが自己申告する識別子であり、ユーザーテーブルへの
// 外部キーではない。(username, item_id)の組は一意。
type Favorite struct {
	ID        string
	Username  string
	ItemID    string
	ItemData  ItemSnapshot // 登録時点のItemのスナップショット
	CreatedAt time.Time
	UpdatedAt time.Time
}
