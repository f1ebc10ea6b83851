// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı haritaya pin bırakır → HTTP POST → Service → store kayıt
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i tüm bağlı client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
// 5. Frontend event'i alır ve harita/post listesini günceller
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "pin_create", "heartbeat" vb.
// Data: Event'e özgü payload — pin objesi, yorum bilgisi vb.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
// Frontend eksik event tespit etmek için seq'i takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt — "seni duydum"

	OpPinCreate = "pin_create" // Haritaya yeni pin bırakıldı
	OpPinUpdate = "pin_update" // Pin düzenlendi
	OpPinDelete = "pin_delete" // Pin silindi

	OpCommentCreate     = "comment_create"      // Pin'e yeni yorum/cevap eklendi
	OpCommentDelete     = "comment_delete"      // Yorum silindi (cevaplarıyla birlikte)
	OpCommentLikeUpdate = "comment_like_update" // Yorumun beğeni listesi değişti

	OpReactionUpdate = "reaction_update" // Pin'in tepki map'i değişti
	OpFavoriteUpdate = "favorite_update" // Pin'in favori listesi değişti

	OpProfileUpdate = "profile_update" // Bir kullanıcının profili güncellendi
)

// ReadyData, bağlantı kurulduğunda gönderilen ilk event'in payload'ı.
type ReadyData struct {
	UserID string `json:"user_id"`
}
