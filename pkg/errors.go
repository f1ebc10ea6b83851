// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız, karşılaştırma errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Böylece string karşılaştırması yerine güvenli referans kontrolü kullanılır.
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner, handler katmanı HTTP status code'larına map'ler.
//
// Hata sınıflandırması:
//   - ErrNotFound: Pin, yorum veya kullanıcı bulunamadı
//   - ErrAlreadyExists: Email zaten kayıtlı (signup conflict)
//   - ErrBadRequest: Validation hatası (boş şifre, geçersiz kategori vb.)
//   - ErrUnauthorized / ErrForbidden: Kimlik ve sahiplik kontrolleri
//   - ErrInternal: Beklenmeyen storage hatası
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
