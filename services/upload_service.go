package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"livemap/models"
	"livemap/pkg"
	"livemap/repository"
)

// UploadService, dosya yükleme iş mantığı: avatar ve pin medyası.
//
// Dosyalar diske yazılır, veritabanında sadece URL tutulur. Dosya adı
// uuid ile üretilir — client'ın gönderdiği isim asla disk yoluna girmez
// (path traversal engeli), sadece uzantı korunur.
type UploadService interface {
	// UploadAvatar, kullanıcının profil fotoğrafını kaydeder, profildeki
	// avatar URL'ini günceller ve eski dosyayı diskten siler.
	UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error)
	// UploadMedia, pin veya yoruma eklenecek görsel/video dosyasını kaydeder.
	UploadMedia(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.Media, error)
}

type uploadService struct {
	userRepo  repository.UserRepository
	uploadDir string
	maxSize   int64
}

// NewUploadService, constructor.
func NewUploadService(userRepo repository.UserRepository, uploadDir string, maxSize int64) UploadService {
	return &uploadService{
		userRepo:  userRepo,
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}
}

// avatarMimeTypes, avatar olarak kabul edilen türler — sadece görsel.
var avatarMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// mediaMimeTypes, pin medyası olarak kabul edilen türler.
var mediaMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
}

func (s *uploadService) UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.saveFile(file, header, avatarMimeTypes)
	if err != nil {
		return nil, err
	}

	oldAvatar := user.Avatar

	updated, err := s.userRepo.Update(ctx, userID, &models.UpdateProfileRequest{Avatar: &fileURL})
	if err != nil {
		s.removeByURL(fileURL)
		return nil, err
	}

	// Eski avatar dosyasını temizle — silinemezse sadece logla
	if oldAvatar != nil && strings.HasPrefix(*oldAvatar, "/api/uploads/") {
		s.removeByURL(*oldAvatar)
	}

	return updated, nil
}

func (s *uploadService) UploadMedia(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.Media, error) {
	fileURL, err := s.saveFile(file, header, mediaMimeTypes)
	if err != nil {
		return nil, err
	}

	mediaType := models.MediaImage
	if strings.HasPrefix(mimeBase(header), "video/") {
		mediaType = models.MediaVideo
	}

	return &models.Media{
		Type: mediaType,
		URL:  fileURL,
	}, nil
}

// ─── Private Helpers ───

// saveFile, dosyayı doğrular ve diske yazar; public URL'ini döner.
func (s *uploadService) saveFile(file multipart.File, header *multipart.FileHeader, allowed map[string]bool) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	mime := mimeBase(header)
	if !allowed[mime] {
		return "", fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mime)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	diskFilename := uuid.NewString() + ext

	destPath := filepath.Join(s.uploadDir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/api/uploads/" + diskFilename, nil
}

// mimeBase, Content-Type header'ından parametresiz MIME türünü çıkarır.
func mimeBase(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		return "application/octet-stream"
	}
	base, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(base)
}

// removeByURL, "/api/uploads/{name}" formatındaki URL'in diske karşılık
// gelen dosyasını siler.
func (s *uploadService) removeByURL(fileURL string) {
	name := filepath.Base(fileURL)
	if name == "" || name == "." || name == ".." {
		return
	}
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("[upload] failed to remove file %s: %v", name, err)
	}
}
