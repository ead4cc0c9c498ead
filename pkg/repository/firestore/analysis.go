package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type analysisDocument struct {
	RiskID       int64     `firestore:"risk_id"`
	Likelihood   int       `firestore:"likelihood"`
	Reputation   int       `firestore:"reputation_impact"`
	Financial    int       `firestore:"financial_impact"`
	Productivity int       `firestore:"productivity_impact"`
	Safety       int       `firestore:"safety_impact"`
	Legal        int       `firestore:"legal_impact"`
	RiskScore    float64   `firestore:"risk_score"`
	RiskLevel    string    `firestore:"risk_level"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (d *analysisDocument) toModel() *model.RiskAnalysis {
	return &model.RiskAnalysis{
		RiskID:     d.RiskID,
		Likelihood: d.Likelihood,
		Impacts: model.ImpactRatings{
			Reputation:   d.Reputation,
			Financial:    d.Financial,
			Productivity: d.Productivity,
			Safety:       d.Safety,
			Legal:        d.Legal,
		},
		RiskScore: d.RiskScore,
		RiskLevel: types.RiskLevel(d.RiskLevel),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type analysisRepository struct {
	client *firestore.Client
	prefix string
}

func newAnalysisRepository(client *firestore.Client) *analysisRepository {
	return &analysisRepository{client: client}
}

func (r *analysisRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_risk_analyses"
	}
	return "risk_analyses"
}

// Put upserts the analysis of a risk. The risk ID doubles as document ID.
func (r *analysisRepository) Put(ctx context.Context, analysis *model.RiskAnalysis) (*model.RiskAnalysis, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", analysis.RiskID))

	now := time.Now().UTC()
	createdAt := now
	if snapshot, err := docRef.Get(ctx); err == nil {
		var existing analysisDocument
		if err := snapshot.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to get risk analysis", goerr.V("risk_id", analysis.RiskID))
	}

	doc := &analysisDocument{
		RiskID:       analysis.RiskID,
		Likelihood:   analysis.Likelihood,
		Reputation:   analysis.Impacts.Reputation,
		Financial:    analysis.Impacts.Financial,
		Productivity: analysis.Impacts.Productivity,
		Safety:       analysis.Impacts.Safety,
		Legal:        analysis.Impacts.Legal,
		RiskScore:    analysis.RiskScore,
		RiskLevel:    analysis.RiskLevel.String(),
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put risk analysis", goerr.V("risk_id", analysis.RiskID))
	}
	return doc.toModel(), nil
}

func (r *analysisRepository) GetByRisk(ctx context.Context, riskID int64) (*model.RiskAnalysis, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", riskID))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk analysis not found", goerr.V("risk_id", riskID))
		}
		return nil, goerr.Wrap(err, "failed to get risk analysis", goerr.V("risk_id", riskID))
	}

	var doc analysisDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk analysis")
	}
	return doc.toModel(), nil
}
