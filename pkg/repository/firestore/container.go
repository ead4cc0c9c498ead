package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type containerDocument struct {
	ID          int64     `firestore:"id"`
	AssetID     int64     `firestore:"asset_id"`
	Name        string    `firestore:"name"`
	Type        string    `firestore:"type"`
	Location    string    `firestore:"location"`
	Description string    `firestore:"description"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func newContainerDocument(container *model.Container) *containerDocument {
	return &containerDocument{
		ID:          container.ID,
		AssetID:     container.AssetID,
		Name:        container.Name,
		Type:        container.Type.String(),
		Location:    container.Location.String(),
		Description: container.Description,
		CreatedAt:   container.CreatedAt,
		UpdatedAt:   container.UpdatedAt,
	}
}

func (d *containerDocument) toModel() *model.Container {
	return &model.Container{
		ID:          d.ID,
		AssetID:     d.AssetID,
		Name:        d.Name,
		Type:        types.ContainerType(d.Type),
		Location:    types.ContainerLocation(d.Location),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type containerRepository struct {
	client *firestore.Client
	prefix string
}

func newContainerRepository(client *firestore.Client) *containerRepository {
	return &containerRepository{client: client}
}

func (r *containerRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_containers"
	}
	return "containers"
}

func (r *containerRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "container_counter"}
}

func (r *containerRepository) Create(ctx context.Context, container *model.Container) (*model.Container, error) {
	id, err := r.counter().next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *container
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, newContainerDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create container")
	}
	return &created, nil
}

func (r *containerRepository) Get(ctx context.Context, id int64) (*model.Container, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "container not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get container", goerr.V("id", id))
	}

	var doc containerDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode container")
	}
	return doc.toModel(), nil
}

func (r *containerRepository) GetByAssetAndName(ctx context.Context, assetID int64, name string) (*model.Container, error) {
	iter := r.client.Collection(r.collection()).
		Where("asset_id", "==", assetID).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snapshot, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "container not found",
			goerr.V("asset_id", assetID), goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query container",
			goerr.V("asset_id", assetID), goerr.V("name", name))
	}

	var doc containerDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode container")
	}
	return doc.toModel(), nil
}

func (r *containerRepository) ListByAsset(ctx context.Context, assetID int64) ([]*model.Container, error) {
	iter := r.client.Collection(r.collection()).
		Where("asset_id", "==", assetID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var containers []*model.Container
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list containers", goerr.V("asset_id", assetID))
		}

		var doc containerDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode container")
		}
		containers = append(containers, doc.toModel())
	}
	return containers, nil
}

func (r *containerRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "container not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get container", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete container", goerr.V("id", id))
	}
	return nil
}
