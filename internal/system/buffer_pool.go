package system

import (
	"sync"

	"github.com/ivlev/motionguider/internal/tensor"
)

// BufferPool предоставляет повторное использование float-буферов одной длины
// между кадрами для снижения нагрузки на Garbage Collector (GC).
type BufferPool struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = NewBufferPool()

func NewBufferPool() *BufferPool {
	return &BufferPool{pools: make(map[int]*sync.Pool)}
}

// GetImage возвращает временное изображение из общего пула. Содержимое не определено.
func GetImage(width, height, channels int) *tensor.Image {
	return globalPool.GetImage(width, height, channels)
}

// PutImage возвращает изображение в общий пул для повторного использования.
func PutImage(img *tensor.Image) {
	globalPool.PutImage(img)
}

func (p *BufferPool) get(n int) []float32 {
	p.mu.RLock()
	pool, exists := p.pools[n]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[n]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					buf := make([]float32, n)
					return &buf
				},
			}
			p.pools[n] = pool
		}
		p.mu.Unlock()
	}

	return *pool.Get().(*[]float32)
}

func (p *BufferPool) GetImage(width, height, channels int) *tensor.Image {
	pix := p.get(width * height * channels)
	return &tensor.Image{Width: width, Height: height, Channels: channels, Pix: pix}
}

func (p *BufferPool) PutImage(img *tensor.Image) {
	if img == nil || len(img.Pix) == 0 {
		return
	}
	n := len(img.Pix)
	p.mu.RLock()
	pool, exists := p.pools[n]
	p.mu.RUnlock()

	if exists {
		buf := img.Pix[:n:n]
		pool.Put(&buf)
	}
	img.Pix = nil
}
