package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/innovatelu/docstore/internal/document"
)

// MongoRepo stores documents in a MongoDB collection under the same contract
// as MemoryRepo. The document id doubles as the Mongo _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("save: nil document: %w", ErrInvalidArgument)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	created := doc.Created
	if created == nil {
		now := time.Now().UTC()
		created = &now
	}
	// $setOnInsert keeps the created value of the first save when the id
	// already exists; everything else is replaced.
	update := bson.M{
		"$set": bson.M{
			"title":   doc.Title,
			"content": doc.Content,
			"author":  doc.Author,
		},
		"$setOnInsert": bson.M{"created": created},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored document.Document
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": doc.ID}, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("mongo save: %w", err)
	}
	doc.Created = stored.Created
	return doc, nil
}

func (m *MongoRepo) Search(ctx context.Context, req *document.SearchRequest) ([]*document.Document, error) {
	if req == nil {
		return nil, fmt.Errorf("search: nil request: %w", ErrInvalidArgument)
	}
	or := searchClauses(req)
	if len(or) == 0 {
		return []*document.Document{}, nil
	}
	cur, err := m.col.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, fmt.Errorf("mongo search: %w", err)
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("mongo search decode: %w", err)
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

// searchClauses translates the request into $or clauses with the same OR
// semantics the memory repository applies in process: case-insensitive
// anchored regex for title prefixes, unanchored for content substrings,
// $in on the embedded author id and strict $gt/$lt on created.
func searchClauses(req *document.SearchRequest) []bson.M {
	var or []bson.M
	for _, p := range req.TitlePrefixes {
		or = append(or, bson.M{"title": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(p), Options: "i"}})
	}
	for _, c := range req.ContainsContents {
		or = append(or, bson.M{"content": primitive.Regex{Pattern: regexp.QuoteMeta(c), Options: "i"}})
	}
	if len(req.AuthorIDs) > 0 {
		or = append(or, bson.M{"author.id": bson.M{"$in": req.AuthorIDs}})
	}
	if req.CreatedFrom != nil {
		or = append(or, bson.M{"created": bson.M{"$gt": req.CreatedFrom}})
	}
	if req.CreatedTo != nil {
		or = append(or, bson.M{"created": bson.M{"$lt": req.CreatedTo}})
	}
	return or
}

func (m *MongoRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*document.Document, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("mongo list decode: %w", err)
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}
