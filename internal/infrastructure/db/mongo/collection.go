package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

// errConditionFailed reports that the document exists but no longer matches
// the guard of a conditional update.
var errConditionFailed = errors.New("update condition not met")

// collection holds the CRUD plumbing shared by every repository. Documents are
// keyed by a string _id and listed newest first.
type collection[T any] struct {
	col      *mongo.Collection
	notFound error
}

func newCollection[T any](db *mongo.Database, name string, notFound error) collection[T] {
	return collection[T]{col: db.Collection(name), notFound: notFound}
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := c.col.InsertOne(ctx, doc)
	return err
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, c.notFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

// findMany returns every document whose _id is in ids.
func (c collection[T]) findMany(ctx context.Context, ids []string) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []*T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// list returns one page of documents matching filter, newest first, plus the
// total match count.
func (c collection[T]) list(ctx context.Context, filter bson.M, page domain.Page) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := c.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cur, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	docs := make([]*T, 0, page.Limit)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (c collection[T]) replace(ctx context.Context, id string, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}
	return nil
}

// update applies an update document and returns the stored result.
func (c collection[T]) update(ctx context.Context, id string, update bson.M) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	if err := c.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, c.notFound
		}
		return nil, err
	}
	return &doc, nil
}

// updateWhen is update guarded by cond. When the document exists but fails the
// guard it is returned unchanged together with errConditionFailed.
func (c collection[T]) updateWhen(ctx context.Context, id string, cond, update bson.M) (*T, error) {
	filter := bson.M{"_id": id}
	for k, v := range cond {
		filter[k] = v
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := c.col.FindOneAndUpdate(updateCtx, filter, update, opts).Decode(&doc)
	if err == nil {
		return &doc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	current, err := c.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return current, errConditionFailed
}

// statusIn guards a status update on the statuses allowed to make the move.
func statusIn[S ~string](from []S) bson.M {
	return bson.M{"status": bson.M{"$in": from}}
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return c.notFound
	}
	return nil
}
