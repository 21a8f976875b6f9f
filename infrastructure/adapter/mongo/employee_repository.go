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

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/entity"
)

type employeeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Type      string             `bson:"type"`
	Level     int                `bson:"level"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *employeeDocument) toEntity() *entity.Employee {
	return &entity.Employee{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Type:      d.Type,
		Level:     d.Level,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

type EmployeeRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewEmployeeRepository(coll *mongo.Collection) *EmployeeRepository {
	return &EmployeeRepository{
		coll: coll,
		now:  time.Now,
	}
}

// Connect dials uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique email index and the type index.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index().SetName("idx_type"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*entity.Employee, error) {
	return r.find(ctx, bson.D{})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, outbound.ErrEmployeeNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *EmployeeRepository) GetByType(ctx context.Context, employeeType string) ([]*entity.Employee, error) {
	return r.find(ctx, bson.D{{Key: "type", Value: employeeType}})
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *entity.Employee) (*entity.Employee, error) {
	doc := employeeDocument{
		ID:        primitive.NewObjectID(),
		Name:      employee.Name,
		Email:     employee.Email,
		Password:  employee.Password,
		Type:      employee.Type,
		Level:     employee.Level,
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, outbound.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}

	return doc.toEntity(), nil
}

// Update rewrites every mutable field. _id and createdAt are never touched.
func (r *EmployeeRepository) Update(ctx context.Context, id string, employee *entity.Employee) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: employee.Name},
		{Key: "email", Value: employee.Email},
		{Key: "password", Value: employee.Password},
		{Key: "type", Value: employee.Type},
		{Key: "level", Value: employee.Level},
	}}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, outbound.ErrEmailAlreadyExists
		}
		return false, fmt.Errorf("failed to update employee: %w", err)
	}

	return res.MatchedCount > 0, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "email", Value: email}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return n > 0, nil
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.D) (*entity.Employee, error) {
	var doc employeeDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, outbound.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *EmployeeRepository) find(ctx context.Context, filter bson.D) ([]*entity.Employee, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cur.Close(ctx)

	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	res := make([]*entity.Employee, 0, len(docs))
	for i := range docs {
		res = append(res, docs[i].toEntity())
	}
	return res, nil
}

var _ outbound.EmployeeRepository = (*EmployeeRepository)(nil)
