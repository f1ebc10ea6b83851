package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"livemap/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// Neden services.AuthService yerine kendi interface'imizi tanımlıyoruz?
// Circular dependency'yi önlemek için: services paketi ws.EventPublisher'ı
// kullanıyor (broadcast için); ws paketi services'e bağımlı olsaydı
// ws → services → ws döngüsü oluşurdu. Ayrıca handler'ın AuthService'in
// tüm method'larına ihtiyacı yok — sadece token doğrulama yeterli
// (Interface Segregation).
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: Production'da domain kontrolü yapılmalı.
	// Şimdilik tüm origin'lere izin veriyoruz (development için).
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Token URL query parameter'ı olarak gelir (ws://server/ws?token=JWT) —
// tarayıcılar WebSocket upgrade sırasında custom header gönderemez.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: claims.UserID,
		send:   make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	// Bağlantı kurulduğunu client'a bildir
	client.sendEvent(Event{Op: OpReady, Data: ReadyData{UserID: claims.UserID}})

	// WritePump ayrı goroutine'de, ReadPump bu goroutine'de çalışır —
	// ReadPump bağlantı kapanana kadar bloklar, handler o zamana dek dönmez.
	go client.WritePump()
	client.ReadPump()
}
