package screen

import (
	"context"
	"sync"

	"github.com/surplusapp/surplus-server/internal/appclient"
)

// Motivations はオンボーディングで選択できる利用動機の一覧。
var Motivations = []string{
	"Supplementing my grocery shopping",
	"Saving money on groceries",
	"Getting a fun treat for myself or others",
	"Finding easy options to complement my meals",
	"Finding an immediate meal option",
	"Exploring new stores and cuisines",
}

// CollectionTimes はオンボーディングで選択できる受け取り時間帯の一覧。
var CollectionTimes = []string{
	"Early morning (06:00 - 09:00)",
	"Late morning (09:00 - 12:00)",
	"Midday (12:00 - 15:00)",
	"Afternoon (15:00 - 18:00)",
	"Evening (18:00 - 21:00)",
	"Late night (21:00 - 00:00)",
}

// onboardingLastStep はオンボーディングの最終ステップ番号（0始まりの4ステップ）。
const onboardingLastStep = 3

// OnboardingSaver はオンボーディング設定保存のインターフェース。
// *appclient.Clientが満たす。
type OnboardingSaver interface {
	SaveOnboarding(ctx context.Context, input appclient.SaveOnboardingInput) appclient.OnboardingResult
}

// OnboardingViewModel はオンボーディング画面の状態を保持する。
// ステップ0〜3を順に進み、動機と受け取り時間帯の複数選択を記録する。
type OnboardingViewModel struct {
	client   OnboardingSaver
	username string

	mu                  sync.Mutex
	step                int
	selectedMotivations map[int]struct{}
	selectedTimes       map[int]struct{}
	pushNotifications   bool
}

// NewOnboardingViewModel はOnboardingViewModelの新しいインスタンスを生成する。
func NewOnboardingViewModel(client OnboardingSaver, username string) *OnboardingViewModel {
	return &OnboardingViewModel{
		client:              client,
		username:            username,
		selectedMotivations: make(map[int]struct{}),
		selectedTimes:       make(map[int]struct{}),
	}
}

// Step は現在のステップ番号（0〜3）を返す。
func (vm *OnboardingViewModel) Step() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.step
}

// Next は次のステップへ進む。最終ステップでは何もしない。
// 最終ステップに達したかどうかを返す。
func (vm *OnboardingViewModel) Next() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.step < onboardingLastStep {
		vm.step++
	}
	return vm.step == onboardingLastStep
}

// Back は前のステップへ戻る。先頭ステップでは何もしない。
func (vm *OnboardingViewModel) Back() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.step > 0 {
		vm.step--
	}
}

// ToggleMotivation は利用動機の選択状態を反転する。範囲外の添字は無視する。
func (vm *OnboardingViewModel) ToggleMotivation(index int) {
	if index < 0 || index >= len(Motivations) {
		return
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	toggle(vm.selectedMotivations, index)
}

// ToggleCollectionTime は受け取り時間帯の選択状態を反転する。範囲外の添字は無視する。
func (vm *OnboardingViewModel) ToggleCollectionTime(index int) {
	if index < 0 || index >= len(CollectionTimes) {
		return
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	toggle(vm.selectedTimes, index)
}

// SetPushNotifications はプッシュ通知の許可フラグを設定する。
func (vm *OnboardingViewModel) SetPushNotifications(enabled bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pushNotifications = enabled
}

// Complete は選択内容からペイロードを組み立てて保存する。
// 再実行は上書きになる（サーバー側がupsertする）。
func (vm *OnboardingViewModel) Complete(ctx context.Context) appclient.OnboardingResult {
	vm.mu.Lock()
	input := appclient.SaveOnboardingInput{
		Username:                 vm.username,
		Motivations:              selectedValues(Motivations, vm.selectedMotivations),
		CollectionTimes:          selectedValues(CollectionTimes, vm.selectedTimes),
		PushNotificationsEnabled: vm.pushNotifications,
	}
	vm.mu.Unlock()

	return vm.client.SaveOnboarding(ctx, input)
}

// toggle はセット内の添字の有無を反転する。
func toggle(set map[int]struct{}, index int) {
	if _, ok := set[index]; ok {
		delete(set, index)
	} else {
		set[index] = struct{}{}
	}
}

// selectedValues は選択された添字に対応する値を定義順で返す。
func selectedValues(options []string, selected map[int]struct{}) []string {
	values := []string{}
	for i, option := range options {
		if _, ok := selected[i]; ok {
			values = append(values, option)
		}
	}
	return values
}
