package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openshelf/book-catalog/internal/core/domain"
	"github.com/openshelf/book-catalog/internal/core/ports"
)

const booksCollection = "books"

// BookRepository persists catalog records in the books collection.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Genre         string             `bson:"genre"`
	PublishedYear int                `bson:"published_year"`
	CreatedBy     string             `bson:"created_by"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (mb *mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:            mb.ID.Hex(),
		Title:         mb.Title,
		Author:        mb.Author,
		Genre:         mb.Genre,
		PublishedYear: mb.PublishedYear,
		CreatedBy:     mb.CreatedBy,
		CreatedAt:     mb.CreatedAt.UTC(),
		UpdatedAt:     mb.UpdatedAt.UTC(),
	}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBook{
		Title:         book.Title,
		Author:        book.Author,
		Genre:         book.Genre,
		PublishedYear: book.PublishedYear,
		CreatedBy:     book.CreatedBy,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) Find(ctx context.Context, filter ports.BookFilter, limit, offset int) ([]*domain.Book, error) {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = primitive.Regex{Pattern: filter.Title, Options: "i"}
	}
	if filter.Author != "" {
		query["author"] = primitive.Regex{Pattern: filter.Author, Options: "i"}
	}
	if filter.Genre != "" {
		query["genre"] = primitive.Regex{Pattern: filter.Genre, Options: "i"}
	}
	if filter.PublishedYear != nil {
		query["published_year"] = *filter.PublishedYear
	}
	return r.findMany(ctx, query, limit, offset)
}

func (r *BookRepository) Search(ctx context.Context, q string, limit, offset int) ([]*domain.Book, error) {
	pattern := primitive.Regex{Pattern: q, Options: "i"}
	query := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"author": pattern},
		bson.M{"genre": pattern},
	}}
	return r.findMany(ctx, query, limit, offset)
}

func (r *BookRepository) findMany(ctx context.Context, query bson.M, limit, offset int) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	books := make([]*domain.Book, 0, limit)
	for cur.Next(ctx) {
		var mb mongoBook
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	return books, cur.Err()
}

func (r *BookRepository) Update(ctx context.Context, id string, upd ports.BookUpdate) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Author != nil {
		set["author"] = *upd.Author
	}
	if upd.Genre != nil {
		set["genre"] = *upd.Genre
	}
	if upd.PublishedYear != nil {
		set["published_year"] = *upd.PublishedYear
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mb mongoBook
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// EnsureIndexes creates single-field indexes on the searchable fields and a
// text index spanning title, author and genre.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
		{Keys: bson.D{{Key: "published_year", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "author", Value: "text"},
			{Key: "genre", Value: "text"},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
