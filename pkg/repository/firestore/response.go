package firestore

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cloud.google.com/go/firestore"
)

type responseDocument struct {
	RiskID     int64     `firestore:"risk_id"`
	Strategy   string    `firestore:"strategy"`
	Rationale  string    `firestore:"rationale"`
	Owner      string    `firestore:"owner"`
	TargetDate time.Time `firestore:"target_date"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

func (d *responseDocument) toModel() *model.RiskResponse {
	return &model.RiskResponse{
		RiskID:     d.RiskID,
		Strategy:   types.ResponseStrategy(d.Strategy),
		Rationale:  d.Rationale,
		Owner:      d.Owner,
		TargetDate: d.TargetDate,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type responseRepository struct {
	client *firestore.Client
	prefix string
}

func newResponseRepository(client *firestore.Client) *responseRepository {
	return &responseRepository{client: client}
}

func (r *responseRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_risk_responses"
	}
	return "risk_responses"
}

// Put upserts the response of a risk. The risk ID doubles as document ID.
func (r *responseRepository) Put(ctx context.Context, response *model.RiskResponse) (*model.RiskResponse, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", response.RiskID))

	now := time.Now().UTC()
	createdAt := now
	if snapshot, err := docRef.Get(ctx); err == nil {
		var existing responseDocument
		if err := snapshot.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to get risk response", goerr.V("risk_id", response.RiskID))
	}

	doc := &responseDocument{
		RiskID:     response.RiskID,
		Strategy:   response.Strategy.String(),
		Rationale:  response.Rationale,
		Owner:      response.Owner,
		TargetDate: response.TargetDate,
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put risk response", goerr.V("risk_id", response.RiskID))
	}
	return doc.toModel(), nil
}

func (r *responseRepository) GetByRisk(ctx context.Context, riskID int64) (*model.RiskResponse, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", riskID))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk response not found", goerr.V("risk_id", riskID))
		}
		return nil, goerr.Wrap(err, "failed to get risk response", goerr.V("risk_id", riskID))
	}

	var doc responseDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk response")
	}
	return doc.toModel(), nil
}
