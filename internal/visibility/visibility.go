// Package visibility содержит правило окна доступности изображений отчёта.
// Та же граница используется фоновой зачисткой (internal/retention), чтобы
// отчёт не мог быть одновременно «видимым» и «удалённым».
package visibility

import "time"

// WindowDays — срок хранения отчёта и его изображений в днях.
const WindowDays = 7

// Window — тот же срок как длительность.
const Window = WindowDays * 24 * time.Hour

// ImagesVisible сообщает, можно ли ещё показывать и выгружать изображения
// отчёта, созданного в createdAt. Чистая функция: вычисляется заново при
// каждом рендере, результат не кешируется.
//
// Граница: возраст ровно 7×24ч ещё видим; на микросекунду старше — нет.
func ImagesVisible(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= Window
}

// Cutoff возвращает момент, раньше которого созданные отчёты подлежат
// удалению (строгое "<" на стороне зачистки).
func Cutoff(now time.Time) time.Time {
	return now.Add(-Window)
}
