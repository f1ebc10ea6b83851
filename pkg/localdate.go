package pkg

import "time"

// LocalDateLayout, pin'lerin gün bazlı filtrelenmesinde kullanılan tarih formatı.
const LocalDateLayout = "2006-01-02"

// LocalDateString, verilen zamanın YEREL takvim gününü YYYY-MM-DD olarak döner.
//
// Neden UTC değil?
// Pin'in "hangi güne ait" olduğu kullanıcının kendi takvimine göre belirlenir.
// createdAt UTC'de 2024-06-02 00:30 olan bir pin, UTC+7'deki kullanıcı için
// 2024-06-02 07:30'dur — ama UTC-5'teki kullanıcı için hâlâ 2024-06-01.
// date alanı oluşturma anında yerel günden türetilir ve filtrelemede
// createdAt yerine bu alan esas alınır (timezone kayması olmaz).
func LocalDateString(t time.Time) string {
	return t.Local().Format(LocalDateLayout)
}

// Today, bugünün yerel takvim gününü YYYY-MM-DD olarak döner.
func Today() string {
	return LocalDateString(time.Now())
}
