package debounce

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidArgument = errors.New("debounce: invalid argument")

type Option func(*options)

type options struct {
	clock Clock
}

// WithClock troca a fonte de timers (padrão: RealClock).
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// New retorna uma versão "debounced" de action.
//
// Cada chamada guarda o argumento mais recente e reinicia a contagem de quiet.
// Se a contagem terminar sem nova chamada, action roda uma única vez com o
// último argumento. Cada New devolve um wrapper com estado próprio.
//
// quiet negativo ou action nil retornam ErrInvalidArgument.
func New[T any](action func(T), quiet time.Duration, opts ...Option) (func(T), error) {
	if action == nil {
		return nil, fmt.Errorf("%w: action is nil", ErrInvalidArgument)
	}
	if quiet < 0 {
		return nil, fmt.Errorf("%w: quiet period must be >= 0, got %s", ErrInvalidArgument, quiet)
	}

	o := options{clock: RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	p := &pending[T]{
		clock:  o.clock,
		quiet:  quiet,
		action: action,
	}
	return p.call, nil
}

// Func é a variante sem argumentos de New.
func Func(action func(), quiet time.Duration, opts ...Option) (func(), error) {
	if action == nil {
		return nil, fmt.Errorf("%w: action is nil", ErrInvalidArgument)
	}
	wrapped, err := New(func(struct{}) { action() }, quiet, opts...)
	if err != nil {
		return nil, err
	}
	return func() { wrapped(struct{}{}) }, nil
}

// pending associa a ação a no máximo um timer pendente.
type pending[T any] struct {
	mu     sync.Mutex
	clock  Clock
	quiet  time.Duration
	action func(T)

	timer Timer
	// gen identifica o timer vigente; um timer que disparou depois de
	// ter sido substituído não executa a ação.
	gen uint64
}

func (p *pending[T]) call(arg T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	p.gen++
	gen := p.gen
	p.timer = p.clock.AfterFunc(p.quiet, func() { p.fire(gen, arg) })
}

func (p *pending[T]) fire(gen uint64, arg T) {
	p.mu.Lock()
	if gen != p.gen || p.timer == nil {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.mu.Unlock()

	p.action(arg)
}
