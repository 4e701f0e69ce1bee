// Package repo implements the generic document repository every resource is
// built on: find-all, find-by-id with reference expansion, insert, partial
// update, and delete against a MongoDB collection. Reference expansion
// ("population") is a read-time $lookup join driven by the refs declared for
// the collection; stored documents only ever hold identifiers.
package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ref declares a reference field to expand on reads. Field is the bson field
// holding the identifier(s), From the collection it points into. Single refs
// are unwound to an embedded document (or null); slice refs stay arrays.
type Ref struct {
	Field  string
	From   string
	Single bool
}

// Store is the repository contract consumed by the services. T is the stored
// document form, E the expanded (populated) form returned by reads. Splitting
// the two keeps reference fields typed as ObjectIDs on the write path and as
// embedded documents on the read path.
type Store[T any, E any] interface {
	FindAll(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*E, error)
	FindOne(ctx context.Context, filter bson.M) (*T, error)
	Insert(ctx context.Context, doc *T) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*E, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Collection is the MongoDB-backed Store implementation.
type Collection[T any, E any] struct {
	coll *mongo.Collection
	refs []Ref
}

// NewCollection binds a repository to a named collection with its declared
// reference expansions.
func NewCollection[T any, E any](db *mongo.Database, name string, refs []Ref) *Collection[T, E] {
	return &Collection[T, E]{coll: db.Collection(name), refs: refs}
}

// lookupStages builds the aggregation stages expanding the declared refs.
func (c *Collection[T, E]) lookupStages() []bson.M {
	stages := make([]bson.M, 0, len(c.refs)*2)
	for _, ref := range c.refs {
		stages = append(stages, bson.M{"$lookup": bson.M{
			"from":         ref.From,
			"localField":   ref.Field,
			"foreignField": "_id",
			"as":           ref.Field,
		}})
		if ref.Single {
			// $lookup always yields an array; single refs collapse back to one
			// embedded document, kept null when the reference dangles.
			stages = append(stages, bson.M{"$unwind": bson.M{
				"path":                       "$" + ref.Field,
				"preserveNullAndEmptyArrays": true,
			}})
		}
	}
	return stages
}

// FindAll returns every document with references expanded.
func (c *Collection[T, E]) FindAll(ctx context.Context) ([]E, error) {
	cursor, err := c.coll.Aggregate(ctx, c.lookupStages())
	if err != nil {
		return nil, err
	}
	results := []E{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// FindByID returns one document with references expanded, or
// mongo.ErrNoDocuments when the id matches nothing.
func (c *Collection[T, E]) FindByID(ctx context.Context, id primitive.ObjectID) (*E, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, c.lookupStages()...)
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var results []E
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &results[0], nil
}

// FindOne returns the first stored document matching filter, unexpanded.
func (c *Collection[T, E]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Insert persists doc as given. Identifier and timestamps are assigned by the
// caller before insertion.
func (c *Collection[T, E]) Insert(ctx context.Context, doc *T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

// UpdateByID merges only the supplied fields into the document and returns the
// post-update state with references expanded. updatedAt is refreshed by the
// store. Returns mongo.ErrNoDocuments when the id matches nothing.
func (c *Collection[T, E]) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*E, error) {
	update := bson.M{
		"$set":         fields,
		"$currentDate": bson.M{"updatedAt": true},
	}
	var updated T
	err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return nil, err
	}
	// Re-read through the aggregation so references come back expanded.
	return c.FindByID(ctx, id)
}

// DeleteByID removes the document and reports whether anything matched.
func (c *Collection[T, E]) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
