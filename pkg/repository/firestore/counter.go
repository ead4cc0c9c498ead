package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// counter hands out monotonically increasing int64 IDs for one entity kind,
// backed by a counter document. IDs are allocated before the write that uses
// them, so a failed write leaves a gap in the sequence, which is harmless.
type counter struct {
	client     *firestore.Client
	collection string
	doc        string
}

func (c *counter) next(ctx context.Context) (int64, error) {
	ids, err := c.nextN(ctx, 1)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// nextN reserves n consecutive IDs in one transaction.
func (c *counter) nextN(ctx context.Context, n int) ([]int64, error) {
	counterRef := c.client.Collection(c.collection).Doc(c.doc)

	var last int64
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				last = int64(n)
				return tx.Set(counterRef, map[string]interface{}{
					"value": last,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		last = currentValue.(int64) + int64(n)
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: last},
		})
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reserve IDs", goerr.V("doc", c.doc))
	}

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = last - int64(n) + int64(i) + 1
	}
	return ids, nil
}
