package bot

import (
	"math/rand"
	"sync"
	"time"
)

// Rand источник случайности движка
//
// Выделен в интерфейс чтобы тесты могли подставить детерминированную
// последовательность и проверять вероятностные ветки без флаки.
type Rand interface {
	// Float64 возвращает значение из [0, 1)
	Float64() float64
}

// lockedRand потокобезопасная обёртка над math/rand
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// NewRand возвращает источник, засеянный текущим временем
func NewRand() Rand {
	return NewSeededRand(time.Now().UnixNano())
}

// NewSeededRand возвращает воспроизводимый источник
func NewSeededRand(seed int64) Rand {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}
