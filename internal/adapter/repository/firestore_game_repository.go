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
	"nexusmarket/pkg/logger"
)

type firestoreGameRepository struct {
	client *firestore.Client
}

func NewFirestoreGameRepository(client *firestore.Client) repository.GameRepository {
	return &firestoreGameRepository{
		client: client,
	}
}

func (r *firestoreGameRepository) Create(ctx context.Context, game *entity.Game) error {
	if game.ID == "" {
		doc := r.client.Collection("games").NewDoc()
		game.ID = doc.ID
	}

	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	_, err := r.client.Collection("games").Doc(game.ID).Set(ctx, game)
	if err != nil {
		return errors.Internal("Failed to create game", err)
	}

	return nil
}

func (r *firestoreGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	doc, err := r.client.Collection("games").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Game", err)
		}
		return nil, errors.Internal("Failed to get game", err)
	}

	var game entity.Game
	if err := doc.DataTo(&game); err != nil {
		return nil, errors.Internal("Failed to parse game data", err)
	}
	if game.DeletedAt != nil {
		return nil, errors.NotFound("Game", nil)
	}

	return &game, nil
}

func (r *firestoreGameRepository) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	query := r.client.Collection("games").Where("slug", "==", slug).Where("deletedAt", "==", nil).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()

	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Game", nil)
		}
		return nil, errors.Internal("Failed to query game", err)
	}

	var game entity.Game
	if err := doc.DataTo(&game); err != nil {
		return nil, errors.Internal("Failed to parse game data", err)
	}

	return &game, nil
}

func (r *firestoreGameRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Game, int64, error) {
	query := r.client.Collection("games").Query.Where("deletedAt", "==", nil)

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	query = query.OrderBy("name", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count games", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var games []*entity.Game

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate games", err)
		}

		var game entity.Game
		if err := doc.DataTo(&game); err != nil {
			return nil, 0, errors.Internal("Failed to parse game data", err)
		}
		games = append(games, &game)
	}

	return games, total, nil
}

func (r *firestoreGameRepository) Update(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = time.Now()

	_, err := r.client.Collection("games").Doc(game.ID).Set(ctx, game)
	if err != nil {
		return errors.Internal("Failed to update game", err)
	}

	return nil
}

// UpdateWithListingSync writes the game and every listing whose variant
// reference still resolves in one transaction. Reads run before writes as
// Firestore transactions require.
func (r *firestoreGameRepository) UpdateWithListingSync(ctx context.Context, game *entity.Game) (int, error) {
	game.UpdatedAt = time.Now()

	updated := 0
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		updated = 0

		query := r.client.Collection("listings").
			Where("gameId", "==", game.ID).
			Where("deletedAt", "==", nil)

		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}

		var synced []*entity.Listing
		for _, doc := range docs {
			var listing entity.Listing
			if err := doc.DataTo(&listing); err != nil {
				return err
			}
			if listing.VariantID == "" {
				continue
			}
			if entity.SyncListingWithVariant(game, &listing) {
				listing.UpdatedAt = game.UpdatedAt
				synced = append(synced, &listing)
			} else {
				// Variant no longer exists: the listing is left as a silent
				// orphan rather than deleted or errored.
				logger.Warn("Listing %s references missing variant %s of game %s", listing.ID, listing.VariantID, game.ID)
			}
		}

		if err := tx.Set(r.client.Collection("games").Doc(game.ID), game); err != nil {
			return err
		}
		for _, listing := range synced {
			if err := tx.Set(r.client.Collection("listings").Doc(listing.ID), listing); err != nil {
				return err
			}
		}

		updated = len(synced)
		return nil
	})
	if err != nil {
		return 0, errors.Internal("Failed to save game with listing sync", err)
	}

	return updated, nil
}

func (r *firestoreGameRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("games").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to delete game", err)
	}

	return nil
}
