package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type firestoreBannerRepository struct {
	client *firestore.Client
}

func NewFirestoreBannerRepository(client *firestore.Client) repository.BannerRepository {
	return &firestoreBannerRepository{
		client: client,
	}
}

func (r *firestoreBannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	if banner.ID == "" {
		banner.ID = r.client.Collection("banners").NewDoc().ID
	}

	now := time.Now()
	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = now
	}
	banner.UpdatedAt = now

	_, err := r.client.Collection("banners").Doc(banner.ID).Set(ctx, banner)
	if err != nil {
		return errors.Internal("Failed to create banner", err)
	}

	return nil
}

func (r *firestoreBannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	doc, err := r.client.Collection("banners").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Banner", err)
		}
		return nil, errors.Internal("Failed to get banner", err)
	}

	var banner entity.Banner
	if err := doc.DataTo(&banner); err != nil {
		return nil, errors.Internal("Failed to parse banner data", err)
	}

	return &banner, nil
}

func (r *firestoreBannerRepository) List(ctx context.Context) ([]*entity.Banner, error) {
	return r.list(ctx, r.client.Collection("banners").OrderBy("position", firestore.Asc))
}

func (r *firestoreBannerRepository) ListActive(ctx context.Context) ([]*entity.Banner, error) {
	query := r.client.Collection("banners").
		Where("active", "==", true).
		OrderBy("position", firestore.Asc)
	return r.list(ctx, query)
}

func (r *firestoreBannerRepository) list(ctx context.Context, query firestore.Query) ([]*entity.Banner, error) {
	iter := query.Documents(ctx)

	var banners []*entity.Banner
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate banners", err)
		}

		var banner entity.Banner
		if err := doc.DataTo(&banner); err != nil {
			return nil, errors.Internal("Failed to parse banner data", err)
		}
		banners = append(banners, &banner)
	}

	return banners, nil
}

func (r *firestoreBannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	banner.UpdatedAt = time.Now()

	_, err := r.client.Collection("banners").Doc(banner.ID).Set(ctx, banner)
	if err != nil {
		return errors.Internal("Failed to update banner", err)
	}

	return nil
}

func (r *firestoreBannerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("banners").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete banner", err)
	}

	return nil
}

type firestoreMediaRepository struct {
	client *firestore.Client
}

func NewFirestoreMediaRepository(client *firestore.Client) repository.MediaRepository {
	return &firestoreMediaRepository{
		client: client,
	}
}

func (r *firestoreMediaRepository) Create(ctx context.Context, item *entity.MediaItem) error {
	if item.ID == "" {
		item.ID = r.client.Collection("media").NewDoc().ID
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("media").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create media item", err)
	}

	return nil
}

func (r *firestoreMediaRepository) GetByID(ctx context.Context, id string) (*entity.MediaItem, error) {
	doc, err := r.client.Collection("media").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Media item", err)
		}
		return nil, errors.Internal("Failed to get media item", err)
	}

	var item entity.MediaItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse media item data", err)
	}

	return &item, nil
}

func (r *firestoreMediaRepository) List(ctx context.Context, limit, offset int) ([]*entity.MediaItem, int64, error) {
	query := r.client.Collection("media").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count media items", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var items []*entity.MediaItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate media items", err)
		}

		var item entity.MediaItem
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse media item data", err)
		}
		items = append(items, &item)
	}

	return items, total, nil
}

func (r *firestoreMediaRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("media").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete media item", err)
	}

	return nil
}
