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

type riskDocument struct {
	ID                int64     `firestore:"id"`
	ScenarioID        int64     `firestore:"scenario_id"`
	CIAImpacted       string    `firestore:"cia_impacted"`
	ConsequenceDetail string    `firestore:"consequence_detail"`
	CreatedAt         time.Time `firestore:"created_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

func newRiskDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		ID:                risk.ID,
		ScenarioID:        risk.ScenarioID,
		CIAImpacted:       risk.CIAImpacted.String(),
		ConsequenceDetail: risk.ConsequenceDetail,
		CreatedAt:         risk.CreatedAt,
		UpdatedAt:         risk.UpdatedAt,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:                d.ID,
		ScenarioID:        d.ScenarioID,
		CIAImpacted:       types.CIAProperty(d.CIAImpacted),
		ConsequenceDetail: d.ConsequenceDetail,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type riskRepository struct {
	client *firestore.Client
	prefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "risk_counter"}
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var doc riskDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk")
	}
	return doc.toModel(), nil
}

func (r *riskRepository) GetByScenario(ctx context.Context, scenarioID int64) (*model.Risk, error) {
	iter := r.client.Collection(r.collection()).
		Where("scenario_id", "==", scenarioID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snapshot, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("scenario_id", scenarioID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query risk", goerr.V("scenario_id", scenarioID))
	}

	var doc riskDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk")
	}
	return doc.toModel(), nil
}

func (r *riskRepository) UpdateCIA(ctx context.Context, id int64, cia types.CIAProperty) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "cia_impacted", Value: cia.String()},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update risk", goerr.V("id", id))
	}
	return nil
}
