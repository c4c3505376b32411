package debounce

import "time"

// Timer é o mínimo de um timer pendente: só precisa poder ser parado.
type Timer interface {
	Stop() bool
}

// Clock abstrai a fonte de timers para permitir testes determinísticos.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock usa time.AfterFunc.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
