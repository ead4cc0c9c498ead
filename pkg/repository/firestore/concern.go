package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type concernDocument struct {
	ID          int64     `firestore:"id"`
	ContainerID int64     `firestore:"container_id"`
	Description string    `firestore:"description"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (d *concernDocument) toModel() *model.Concern {
	return &model.Concern{
		ID:          d.ID,
		ContainerID: d.ContainerID,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type concernRepository struct {
	client *firestore.Client
	prefix string
}

func newConcernRepository(client *firestore.Client) *concernRepository {
	return &concernRepository{client: client}
}

func (r *concernRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_concerns"
	}
	return "concerns"
}

func (r *concernRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "concern_counter"}
}

func (r *concernRepository) Create(ctx context.Context, concern *model.Concern) (*model.Concern, error) {
	id, err := r.counter().next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &concernDocument{
		ID:          id,
		ContainerID: concern.ContainerID,
		Description: concern.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create concern")
	}
	return doc.toModel(), nil
}

func (r *concernRepository) Get(ctx context.Context, id int64) (*model.Concern, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "concern not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get concern", goerr.V("id", id))
	}

	var doc concernDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode concern")
	}
	return doc.toModel(), nil
}

func (r *concernRepository) GetByContainerAndDescription(ctx context.Context, containerID int64, description string) (*model.Concern, error) {
	iter := r.client.Collection(r.collection()).
		Where("container_id", "==", containerID).
		Where("description", "==", description).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snapshot, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "concern not found",
			goerr.V("container_id", containerID), goerr.V("description", description))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query concern",
			goerr.V("container_id", containerID), goerr.V("description", description))
	}

	var doc concernDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode concern")
	}
	return doc.toModel(), nil
}

func (r *concernRepository) ListByContainer(ctx context.Context, containerID int64) ([]*model.Concern, error) {
	iter := r.client.Collection(r.collection()).
		Where("container_id", "==", containerID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var concerns []*model.Concern
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list concerns", goerr.V("container_id", containerID))
		}

		var doc concernDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode concern")
		}
		concerns = append(concerns, doc.toModel())
	}
	return concerns, nil
}

func (r *concernRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "concern not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get concern", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete concern", goerr.V("id", id))
	}
	return nil
}
