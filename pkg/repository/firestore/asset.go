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

type assetDocument struct {
	ID              int64     `firestore:"id"`
	AuditID         int64     `firestore:"audit_id"`
	Name            string    `firestore:"name"`
	Description     string    `firestore:"description"`
	OwnerName       string    `firestore:"owner_name"`
	Rationale       string    `firestore:"rationale"`
	Confidentiality int       `firestore:"confidentiality"`
	Integrity       int       `firestore:"integrity"`
	Availability    int       `firestore:"availability"`
	PrimaryReq      string    `firestore:"primary_req"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

func newAssetDocument(asset *model.Asset) *assetDocument {
	return &assetDocument{
		ID:              asset.ID,
		AuditID:         asset.AuditID,
		Name:            asset.Name,
		Description:     asset.Description,
		OwnerName:       asset.OwnerName,
		Rationale:       asset.Rationale,
		Confidentiality: asset.Confidentiality,
		Integrity:       asset.Integrity,
		Availability:    asset.Availability,
		PrimaryReq:      asset.PrimaryReq.String(),
		CreatedAt:       asset.CreatedAt,
		UpdatedAt:       asset.UpdatedAt,
	}
}

func (d *assetDocument) toModel() *model.Asset {
	return &model.Asset{
		ID:              d.ID,
		AuditID:         d.AuditID,
		Name:            d.Name,
		Description:     d.Description,
		OwnerName:       d.OwnerName,
		Rationale:       d.Rationale,
		Confidentiality: d.Confidentiality,
		Integrity:       d.Integrity,
		Availability:    d.Availability,
		PrimaryReq:      types.CIAProperty(d.PrimaryReq),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type assetRepository struct {
	client *firestore.Client
	prefix string
}

func newAssetRepository(client *firestore.Client) *assetRepository {
	return &assetRepository{client: client}
}

func (r *assetRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_assets"
	}
	return "assets"
}

func (r *assetRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "asset_counter"}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	id, err := r.counter().next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *asset
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, newAssetDocument(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create asset")
	}
	return &created, nil
}

func (r *assetRepository) Get(ctx context.Context, id int64) (*model.Asset, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get asset", goerr.V("id", id))
	}

	var doc assetDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode asset")
	}
	return doc.toModel(), nil
}

func (r *assetRepository) ListByAudit(ctx context.Context, auditID int64) ([]*model.Asset, error) {
	iter := r.client.Collection(r.collection()).
		Where("audit_id", "==", auditID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var assets []*model.Asset
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list assets", goerr.V("audit_id", auditID))
		}

		var doc assetDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode asset")
		}
		assets = append(assets, doc.toModel())
	}
	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", asset.ID))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", asset.ID))
		}
		return nil, goerr.Wrap(err, "failed to get asset", goerr.V("id", asset.ID))
	}

	var existing assetDocument
	if err := snapshot.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode asset")
	}

	updated := *asset
	updated.AuditID = existing.AuditID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, newAssetDocument(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update asset", goerr.V("id", asset.ID))
	}
	return &updated, nil
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get asset", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete asset", goerr.V("id", id))
	}
	return nil
}
