// internal/output/mongodb.go
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// mongoSink upserts records into a collection keyed by record id. This is
// the path a cloud catalog database consumes.
type mongoSink struct {
	uri        string
	database   string
	collection string
}

func (s *mongoSink) Name() string { return "mongodb:" + s.database }

func (s *mongoSink) Export(ctx context.Context, cat hardware.Category, records hardware.Dataset) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Disconnect(context.Background())

	dbName := s.database
	if dbName == "" {
		dbName = "hwcatalog"
	}
	coll := client.Database(dbName).Collection(tableName(s.collection, cat))

	// Drop ids this run no longer produces, then upsert the batch.
	ids := make([]string, 0, len(records))
	models := make([]mongo.WriteModel, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
		doc := bson.M{
			"_id":          rec.ID,
			"category":     string(rec.Category),
			"brand":        rec.Brand,
			"model":        rec.Model,
			"release_date": rec.ReleaseDate,
			"source":       rec.Source,
			"record":       rec,
		}
		if rec.Price != nil {
			doc["price"] = *rec.Price
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": rec.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := coll.DeleteMany(ctx, bson.M{
		"category": string(cat),
		"_id":      bson.M{"$nin": ids},
	}); err != nil {
		return fmt.Errorf("failed to prune stale documents: %w", err)
	}

	if len(models) == 0 {
		return nil
	}
	if _, err := coll.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("bulk write failed: %w", err)
	}
	return nil
}
