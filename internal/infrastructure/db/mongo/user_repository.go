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

const usersCollection = "users"

// UserRepository persists user accounts in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email,omitempty"`
	FirstName    string             `bson:"first_name,omitempty"`
	LastName     string             `bson:"last_name,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		IsActive:     mu.IsActive,
		CreatedAt:    mu.CreatedAt.UTC(),
		UpdatedAt:    mu.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Find(ctx context.Context, filter ports.UserFilter, limit, offset int) ([]*domain.User, error) {
	query := bson.M{}
	if filter.Role != nil {
		query["role"] = *filter.Role
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}
	return r.findMany(ctx, query, limit, offset)
}

func (r *UserRepository) Search(ctx context.Context, q string, limit, offset int) ([]*domain.User, error) {
	pattern := primitive.Regex{Pattern: q, Options: "i"}
	query := bson.M{"$or": bson.A{
		bson.M{"username": pattern},
		bson.M{"email": pattern},
		bson.M{"first_name": pattern},
		bson.M{"last_name": pattern},
	}}
	return r.findMany(ctx, query, limit, offset)
}

func (r *UserRepository) findMany(ctx context.Context, query bson.M, limit, offset int) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]*domain.User, 0, limit)
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) Update(ctx context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index and a unique sparse email
// index on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
