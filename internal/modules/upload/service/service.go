package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"clabs.com/website/internal/modules/upload/dto"
	"clabs.com/website/internal/modules/upload/repository"
	"clabs.com/website/pkg/apperror"
	"clabs.com/website/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MaxImageSize = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

var (
	ErrUnsupportedType = apperror.BadRequest("unsupported file type, upload a JPG, PNG, GIF or WebP image")
	ErrTooLarge        = apperror.BadRequest("file exceeds the 5MB limit")
	ErrImageNotFound   = apperror.NotFound("image not found")
)

type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadImageResponse, error)
	// FetchImage returns ErrImageNotFound for missing and unreadable images alike.
	FetchImage(ctx context.Context, filename string) (*storage.Object, error)
	ListRecent(ctx context.Context, limit int) ([]dto.UploadedImageResponse, error)
	Count(ctx context.Context) (int64, error)
	DeleteUpload(ctx context.Context, id uint) error
}

type uploadService struct {
	repo    repository.UploadRepository
	storage storage.ObjectStorage
	logger  *zap.Logger
	now     func() time.Time
}

func NewUploadService(repo repository.UploadRepository, objectStorage storage.ObjectStorage, logger *zap.Logger) UploadService {
	return &uploadService{
		repo:    repo,
		storage: objectStorage,
		logger:  logger,
		now:     time.Now,
	}
}

func IsAllowedType(contentType string) bool {
	return slices.Contains(allowedImageTypes, contentType)
}

func (s *uploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadImageResponse, error) {
	contentType := file.Header.Get("Content-Type")
	if !IsAllowedType(contentType) {
		return nil, ErrUnsupportedType
	}
	if file.Size > MaxImageSize {
		return nil, ErrTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}

	obj := &storage.Object{
		Key:          s.generateFilename(file.Filename),
		OriginalName: file.Filename,
		ContentType:  contentType,
		Size:         int64(len(data)),
		Data:         data,
	}

	url, err := s.storage.Put(ctx, obj)
	if err != nil {
		return nil, err
	}

	s.logger.Info("image uploaded",
		zap.String("filename", obj.Key),
		zap.String("type", contentType),
		zap.Int64("size", obj.Size),
	)

	return &dto.UploadImageResponse{
		URL:      url,
		FileName: obj.Key,
		Size:     obj.Size,
		Type:     contentType,
	}, nil
}

func (s *uploadService) FetchImage(ctx context.Context, filename string) (*storage.Object, error) {
	obj, err := s.storage.Get(ctx, filename)
	if err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			s.logger.Warn("image fetch failed", zap.String("filename", filename), zap.Error(err))
		}
		return nil, ErrImageNotFound
	}
	return obj, nil
}

func (s *uploadService) ListRecent(ctx context.Context, limit int) ([]dto.UploadedImageResponse, error) {
	images, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UploadedImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, dto.UploadedImageResponse{
			ID:           img.ID,
			Filename:     img.Filename,
			OriginalName: img.OriginalName,
			FileSize:     img.FileSize,
			FileType:     img.FileType,
			URL:          storage.PublicURL(img.Filename),
			CreatedAt:    img.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *uploadService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *uploadService) DeleteUpload(ctx context.Context, id uint) error {
	img, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrImageNotFound
	}
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, img.Filename); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	s.logger.Info("image deleted", zap.Uint("id", id), zap.String("filename", img.Filename))
	return nil
}

// generateFilename builds {unixMillis}_{random}.{ext}, keeping the client
// extension only when it is plain alphanumerics.
func (s *uploadService) generateFilename(original string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if ext == "" || !isAlnum(ext) {
		ext = "jpg"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("%d_%s.%s", s.now().UnixMilli(), random, ext)
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
