package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Email string             `bson:"email"`
	Name  string             `bson:"name,omitempty"`
	Role  string             `bson:"role"`
	Extra bson.M             `bson:",inline"`
}

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.User{
		ID:    doc.ID.Hex(),
		Email: doc.Email,
		Name:  doc.Name,
		Role:  domain.Role(doc.Role),
		Extra: domain.Fields(doc.Extra),
	}, nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *domain.User) (*domain.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, userDocument{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
		Extra: bson.M(user.Extra),
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return insertResult(res), nil
}

var _ UserRepository = (*MongoUserRepository)(nil)
