package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// packageFromDocument keeps every stored attribute; tour packages have no
// enforced schema.
func packageFromDocument(doc bson.M) domain.TourPackage {
	pkg := domain.NewTourPackage(doc)
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		pkg.ID = oid.Hex()
	}
	return pkg
}

type MongoPackageRepository struct {
	coll *mongo.Collection
}

func NewMongoPackageRepository(db *mongo.Database) PackageRepository {
	return &MongoPackageRepository{coll: db.Collection(PackagesCollection)}
}

func (r *MongoPackageRepository) List(ctx context.Context, search string) ([]domain.TourPackage, error) {
	filter := bson.M{}
	if search != "" {
		filter["tour_name"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}
	return r.find(ctx, filter)
}

func (r *MongoPackageRepository) ListLimit(ctx context.Context, limit int64) ([]domain.TourPackage, error) {
	return r.find(ctx, bson.M{}, options.Find().SetLimit(limit))
}

func (r *MongoPackageRepository) ListByGuide(ctx context.Context, guideEmail string) ([]domain.TourPackage, error) {
	return r.find(ctx, bson.M{"guide_email": guideEmail})
}

func (r *MongoPackageRepository) GetByID(ctx context.Context, id string) (*domain.TourPackage, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	pkg := packageFromDocument(doc)
	return &pkg, nil
}

func (r *MongoPackageRepository) Insert(ctx context.Context, pkg *domain.TourPackage) (*domain.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, bson.M(pkg.Document()))
	if err != nil {
		return nil, fmt.Errorf("insert package: %w", err)
	}
	return insertResult(res), nil
}

func (r *MongoPackageRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return nil, fmt.Errorf("update package: %w", err)
	}
	return updateResult(res), nil
}

func (r *MongoPackageRepository) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete package: %w", err)
	}
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (r *MongoPackageRepository) IncrementBookingCount(ctx context.Context, id string) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"bookingCount": 1}})
	if err != nil {
		return nil, fmt.Errorf("increment booking count: %w", err)
	}
	return updateResult(res), nil
}

func (r *MongoPackageRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.TourPackage, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find packages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}

	packages := make([]domain.TourPackage, 0, len(docs))
	for _, d := range docs {
		packages = append(packages, packageFromDocument(d))
	}
	return packages, nil
}

var _ PackageRepository = (*MongoPackageRepository)(nil)
