package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type assetVulnDocument struct {
	ID         int64     `firestore:"id"`
	AssetID    int64     `firestore:"asset_id"`
	VulnID     int64     `firestore:"vuln_id"`
	Likelihood int       `firestore:"likelihood"`
	RiskScore  int       `firestore:"risk_score"`
	CreatedAt  time.Time `firestore:"created_at"`
}

func newAssetVulnDocument(row *model.AssetVulnerability) *assetVulnDocument {
	return &assetVulnDocument{
		ID:         row.ID,
		AssetID:    row.AssetID,
		VulnID:     row.VulnID,
		Likelihood: row.Likelihood,
		RiskScore:  row.RiskScore,
		CreatedAt:  row.CreatedAt,
	}
}

func (d *assetVulnDocument) toModel() *model.AssetVulnerability {
	return &model.AssetVulnerability{
		ID:         d.ID,
		AssetID:    d.AssetID,
		VulnID:     d.VulnID,
		Likelihood: d.Likelihood,
		RiskScore:  d.RiskScore,
		CreatedAt:  d.CreatedAt,
	}
}

type assetVulnRepository struct {
	client *firestore.Client
	prefix string
}

func newAssetVulnRepository(client *firestore.Client) *assetVulnRepository {
	return &assetVulnRepository{client: client}
}

func (r *assetVulnRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_asset_vulnerabilities"
	}
	return "asset_vulnerabilities"
}

func (r *assetVulnRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "asset_vuln_counter"}
}

// ReplaceForAsset swaps the asset's selections in one transaction, with IDs
// reserved up front because the counter transaction cannot nest.
func (r *assetVulnRepository) ReplaceForAsset(ctx context.Context, assetID int64, selections []*model.AssetVulnerability) ([]*model.AssetVulnerability, error) {
	var ids []int64
	if len(selections) > 0 {
		var err error
		if ids, err = r.counter().nextN(ctx, len(selections)); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	created := make([]*model.AssetVulnerability, 0, len(selections))
	for i, selection := range selections {
		row := *selection
		row.ID = ids[i]
		row.AssetID = assetID
		row.CreatedAt = now
		created = append(created, &row)
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		old, err := tx.Documents(r.client.Collection(r.collection()).
			Where("asset_id", "==", assetID)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query selections")
		}

		for _, snapshot := range old {
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}
		for _, row := range created {
			docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", row.ID))
			if err := tx.Set(docRef, newAssetVulnDocument(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to replace selections", goerr.V("asset_id", assetID))
	}

	return created, nil
}

func (r *assetVulnRepository) ListByAsset(ctx context.Context, assetID int64) ([]*model.AssetVulnerability, error) {
	iter := r.client.Collection(r.collection()).
		Where("asset_id", "==", assetID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var selections []*model.AssetVulnerability
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list selections", goerr.V("asset_id", assetID))
		}

		var doc assetVulnDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode selection")
		}
		selections = append(selections, doc.toModel())
	}
	return selections, nil
}
