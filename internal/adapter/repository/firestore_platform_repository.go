package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

type firestorePlatformRepository struct {
	client *firestore.Client
}

func NewFirestorePlatformRepository(client *firestore.Client) repository.PlatformRepository {
	return &firestorePlatformRepository{
		client: client,
	}
}

func (r *firestorePlatformRepository) CreatePlatform(ctx context.Context, platform *entity.Platform) error {
	if platform.ID == "" {
		platform.ID = r.client.Collection("platforms").NewDoc().ID
	}

	_, err := r.client.Collection("platforms").Doc(platform.ID).Set(ctx, platform)
	if err != nil {
		return errors.Internal("Failed to create platform", err)
	}

	return nil
}

func (r *firestorePlatformRepository) ListPlatforms(ctx context.Context) ([]*entity.Platform, error) {
	iter := r.client.Collection("platforms").OrderBy("name", firestore.Asc).Documents(ctx)

	var platforms []*entity.Platform
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate platforms", err)
		}

		var platform entity.Platform
		if err := doc.DataTo(&platform); err != nil {
			return nil, errors.Internal("Failed to parse platform data", err)
		}
		platforms = append(platforms, &platform)
	}

	return platforms, nil
}

func (r *firestorePlatformRepository) CreateGroup(ctx context.Context, group *entity.PlatformGroup) error {
	if group.ID == "" {
		group.ID = r.client.Collection("platform_groups").NewDoc().ID
	}

	_, err := r.client.Collection("platform_groups").Doc(group.ID).Set(ctx, group)
	if err != nil {
		return errors.Internal("Failed to create platform group", err)
	}

	return nil
}

func (r *firestorePlatformRepository) GetGroup(ctx context.Context, id string) (*entity.PlatformGroup, error) {
	doc, err := r.client.Collection("platform_groups").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Platform group", err)
		}
		return nil, errors.Internal("Failed to get platform group", err)
	}

	var group entity.PlatformGroup
	if err := doc.DataTo(&group); err != nil {
		return nil, errors.Internal("Failed to parse platform group data", err)
	}

	return &group, nil
}

func (r *firestorePlatformRepository) ListGroups(ctx context.Context) ([]*entity.PlatformGroup, error) {
	iter := r.client.Collection("platform_groups").Documents(ctx)

	var groups []*entity.PlatformGroup
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate platform groups", err)
		}

		var group entity.PlatformGroup
		if err := doc.DataTo(&group); err != nil {
			return nil, errors.Internal("Failed to parse platform group data", err)
		}
		groups = append(groups, &group)
	}

	return groups, nil
}
