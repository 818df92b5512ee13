package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
)

// FileStorage is the slice of the object store the content usecase needs.
// The GCS client satisfies it.
type FileStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// ContentUseCase manages homepage banners and the admin media library.
type ContentUseCase struct {
	bannerRepo repository.BannerRepository
	mediaRepo  repository.MediaRepository
	storage    FileStorage
	maxUpload  int64
}

func NewContentUseCase(
	bannerRepo repository.BannerRepository,
	mediaRepo repository.MediaRepository,
	storage FileStorage,
	maxUploadMB int,
) *ContentUseCase {
	if maxUploadMB <= 0 {
		maxUploadMB = 5
	}
	return &ContentUseCase{
		bannerRepo: bannerRepo,
		mediaRepo:  mediaRepo,
		storage:    storage,
		maxUpload:  int64(maxUploadMB) << 20,
	}
}

type SaveBannerInput struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url"`
	Link     string `json:"link" validate:"omitempty,url"`
	Active   bool   `json:"active"`
	Position int    `json:"position"`
}

func (uc *ContentUseCase) CreateBanner(ctx context.Context, input SaveBannerInput) (*entity.Banner, error) {
	banner := &entity.Banner{
		Title:     input.Title,
		ImageURL:  input.ImageURL,
		Link:      input.Link,
		Active:    input.Active,
		Position:  input.Position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uc.bannerRepo.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (uc *ContentUseCase) UpdateBanner(ctx context.Context, id string, input SaveBannerInput) (*entity.Banner, error) {
	banner, err := uc.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = input.Title
	banner.ImageURL = input.ImageURL
	banner.Link = input.Link
	banner.Active = input.Active
	banner.Position = input.Position
	banner.UpdatedAt = time.Now()

	if err := uc.bannerRepo.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// ListBanners returns every banner for the admin panel; ActiveBanners is the
// public ordered carousel.
func (uc *ContentUseCase) ListBanners(ctx context.Context) ([]*entity.Banner, error) {
	return uc.bannerRepo.List(ctx)
}

func (uc *ContentUseCase) ActiveBanners(ctx context.Context) ([]*entity.Banner, error) {
	return uc.bannerRepo.ListActive(ctx)
}

func (uc *ContentUseCase) DeleteBanner(ctx context.Context, id string) error {
	if _, err := uc.bannerRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.bannerRepo.Delete(ctx, id)
}

type UploadMediaInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadMedia streams a file to object storage under a random name and
// records it in the media library.
func (uc *ContentUseCase) UploadMedia(ctx context.Context, uploaderID string, input UploadMediaInput) (*entity.MediaItem, error) {
	if !allowedMediaTypes[input.ContentType] {
		return nil, errors.BadRequest("Unsupported file type: "+input.ContentType, nil)
	}
	if input.Size > uc.maxUpload {
		return nil, errors.BadRequest(fmt.Sprintf("File exceeds the %dMB upload limit", uc.maxUpload>>20), nil)
	}

	ext := strings.ToLower(path.Ext(input.FileName))
	objectPath := fmt.Sprintf("media/%s%s", uuid.New().String(), ext)

	url, err := uc.storage.Upload(ctx, objectPath, input.ContentType, input.Body)
	if err != nil {
		return nil, errors.Internal("Failed to upload file", err)
	}

	item := &entity.MediaItem{
		Name:        input.FileName,
		URL:         url,
		ObjectPath:  objectPath,
		ContentType: input.ContentType,
		Size:        input.Size,
		UploadedBy:  uploaderID,
		CreatedAt:   time.Now(),
	}

	if err := uc.mediaRepo.Create(ctx, item); err != nil {
		if delErr := uc.storage.Delete(ctx, objectPath); delErr != nil {
			logger.Warn("Failed to clean up orphaned object %s: %v", objectPath, delErr)
		}
		return nil, err
	}
	return item, nil
}

func (uc *ContentUseCase) ListMedia(ctx context.Context, page, limit int) ([]*entity.MediaItem, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.mediaRepo.List(ctx, limit, offset)
}

// DeleteMedia removes the library record and the stored object. A failed
// object delete is logged; the record is gone either way.
func (uc *ContentUseCase) DeleteMedia(ctx context.Context, id string) error {
	item, err := uc.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.storage.Delete(ctx, item.ObjectPath); err != nil {
		logger.Warn("Failed to delete object %s: %v", item.ObjectPath, err)
	}
	return nil
}
