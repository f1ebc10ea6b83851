package pkg

import (
	"strconv"
	"sync/atomic"
	"time"
)

// lastID, son üretilen ID'nin milisaniye değeri.
// atomic.Int64: Birden fazla goroutine güvenle okuyup yazabilir.
var lastID atomic.Int64

// NewID, Unix epoch milisaniyesinden türetilmiş string bir ID döner.
//
// Pin, yorum ve kullanıcı ID'leri timestamp string'idir — sıralanabilir
// ve ekstra bir ID formatı gerektirmez. Aynı milisaniye içinde birden
// fazla ID istenirse sayaç bir sonraki milisaniyeye ilerletilir,
// böylece ID'ler her zaman unique ve monoton artandır.
func NewID() string {
	now := time.Now().UnixMilli()
	for {
		last := lastID.Load()
		if now <= last {
			now = last + 1
		}
		if lastID.CompareAndSwap(last, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}
