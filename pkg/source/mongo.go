package source

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Record is one dataset cell as stored in MongoDB. A missing or null value
// is an absent cell.
type Record struct {
	Series   string   `bson:"series"`
	Category string   `bson:"category"`
	Value    *float64 `bson:"value"`
}

// Finder is the part of *mongo.Collection the loader needs.
type Finder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// MongoRef addresses a collection.
type MongoRef struct {
	URI        string
	Database   string
	Collection string
}

// ParseMongoRef splits "mongodb://host/db/collection?opts" into a client URI
// ("mongodb://host/?opts") and the database and collection names.
func ParseMongoRef(ref string) (MongoRef, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return MongoRef{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", ref)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return MongoRef{}, errors.New(errors.ErrCodeInvalidInput,
			"mongo reference must name a database and a collection: mongodb://host/<db>/<collection>")
	}
	u.Path = "/"
	return MongoRef{URI: u.String(), Database: parts[0], Collection: parts[1]}, nil
}

// LoadMongo connects to the collection ref names and reads it with
// [LoadCollection].
func LoadMongo(ctx context.Context, ref string) (*data.Table, error) {
	r, err := ParseMongoRef(ref)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(r.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect %s", r.Database)
	}
	defer client.Disconnect(context.Background())

	return LoadCollection(ctx, client.Database(r.Database).Collection(r.Collection), bson.D{})
}

// LoadCollection reads every record matching filter, in insertion order.
// Series and categories appear in the order they are first seen.
func LoadCollection(ctx context.Context, coll Finder, filter interface{}) (*data.Table, error) {
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find")
	}
	defer cur.Close(ctx)

	t := data.NewTable()
	for cur.Next(ctx) {
		var rec Record
		if err := cur.Decode(&rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode record")
		}
		if rec.Series == "" || rec.Category == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "record without series or category")
		}
		if rec.Value == nil {
			t.AddRow(rec.Series)
			t.AddColumn(rec.Category)
			t.RemoveValue(rec.Series, rec.Category)
			continue
		}
		t.SetValue(*rec.Value, rec.Series, rec.Category)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read cursor")
	}
	return t, nil
}
