package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "blogsite/internal/errors"
	"blogsite/internal/model"
)

// UserRepository defines persistence operations on the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*model.User, error)
	PushBlog(ctx context.Context, email string, blog model.Blog) error
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository builds a MongoDB-backed repository over the users
// collection and ensures the unique email index exists.
func NewUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("Warning: failed to create unique index on email: %v", err)
	}

	return &userRepository{collection: collection}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicateAccount
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByCredentials matches email and password exactly, both compared as
// opaque case-sensitive values.
func (r *userRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "password": password})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// PushBlog appends a blog to the user's blogs array with a single $push
// update, so concurrent appends to the same account cannot clobber each other.
func (r *userRepository) PushBlog(ctx context.Context, email string, blog model.Blog) error {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{"blogs": blog}},
	)
	if err != nil {
		return fmt.Errorf("push blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}
