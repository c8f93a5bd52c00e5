// Package appstate はアプリケーション全体の共有状態を提供する。
// 状態はイミュータブルな値として扱い、更新は元の状態を変更せず
// 新しい状態を返す純粋関数（reducer）で行う。
package appstate

import "strings"

// State はアプリケーション全体の共有状態。
// 画面ローカルの一時状態はここに置かず、各画面のビューモデルが持つ。
type State struct {
	// Initialized は起動時の初期化（設定読み込み等）が完了したかを示す。
	Initialized bool
	// BuildVersion はアプリのビルドバージョン文字列。
	BuildVersion string

	// 認証まわり。識別子はクライアント側の自己申告であり、
	// サーバー側の認証には裏付けられていない。
	Email           string
	Username        string
	IsAuthenticated bool

	// SelectedLocation はロケーションピッカーで選択された表示用の地名。
	SelectedLocation string
}

// SetInitialized は初期化完了を記録した新しい状態を返す。
func SetInitialized(s State, buildVersion string) State {
	s.Initialized = true
	s.BuildVersion = buildVersion
	return s
}

// CompleteAuth はサインイン完了を記録した新しい状態を返す。
// ユーザー名はメールアドレスの@より前の部分から導出する。
func CompleteAuth(s State, email string) State {
	s.Email = email
	s.Username = usernameFromEmail(email)
	s.IsAuthenticated = true
	return s
}

// SetSelectedLocation は選択中ロケーションを更新した新しい状態を返す。
func SetSelectedLocation(s State, location string) State {
	s.SelectedLocation = location
	return s
}

// Reset はサインアウト時に認証情報と選択状態をクリアした新しい状態を返す。
// InitializedとBuildVersionは起動時の事実のため保持する。
func Reset(s State) State {
	s.Email = ""
	s.Username = ""
	s.IsAuthenticated = false
	s.SelectedLocation = ""
	return s
}

// usernameFromEmail はメールアドレスからユーザー名を導出する。
func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
