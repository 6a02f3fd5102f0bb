// Package debounce откладывает вызов до наступления паузы во входящих событиях.
package debounce

import (
	"sync"
	"time"
)

// SearchQuiet — пауза после последнего нажатия клавиши перед перезагрузкой списка
const SearchQuiet = 1000 * time.Millisecond

// Debouncer вызывает последнюю переданную функцию один раз,
// когда после последнего Trigger прошло quiet.
type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	gen   uint64
}

func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger (пере)запускает окно ожидания; fn заменяет ранее переданную.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fn = fn
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// Stop отменяет отложенный вызов. Уже запущенный вызов не прерывается.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
	d.gen++
}

// fire срабатывает только для последнего Trigger: таймер, который
// успел истечь до Stop, не вызовет устаревшую функцию.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}
