// Package pushid генерирует 20-символьные ключи в формате push-ключей
// Firebase Realtime Database: 8 символов — миллисекунды Unix-времени,
// 12 — случайный хвост. Лексикографический порядок ключей совпадает
// с порядком создания, на это опирается пагинация каталога.
package pushid

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Алфавит упорядочен по ASCII, иначе сортировка ключей сломается.
const alphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

const (
	timestampLen = 8
	randomLen    = 12
	base         = int64(len(alphabet))
)

var (
	mu         sync.Mutex
	rng        = rand.New(rand.NewSource(time.Now().UnixNano()))
	lastMillis int64
	lastRand   [randomLen]int
)

// New возвращает новый ключ. Ключи, выданные в одну миллисекунду,
// монотонно возрастают за счёт инкремента случайного хвоста.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastMillis {
		now = lastMillis
		increment()
	} else {
		lastMillis = now
		for i := range lastRand {
			lastRand[i] = rng.Intn(int(base))
		}
	}

	var b strings.Builder
	b.Grow(timestampLen + randomLen)

	var ts [timestampLen]byte
	for i := timestampLen - 1; i >= 0; i-- {
		ts[i] = alphabet[now%base]
		now /= base
	}
	b.Write(ts[:])

	for _, idx := range lastRand {
		b.WriteByte(alphabet[idx])
	}

	return b.String()
}

func increment() {
	for i := randomLen - 1; i >= 0; i-- {
		lastRand[i]++
		if lastRand[i] < int(base) {
			return
		}
		lastRand[i] = 0
	}
	// Переполнение хвоста в пределах одной миллисекунды недостижимо на практике.
	lastMillis++
}
