package mongo

import (
	"context"
	"fmt"

	"github.com/isdelr/course-api-be/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type courseDocument struct {
	ID              bson.ObjectID  `bson:"_id,omitempty"`
	User            *bson.ObjectID `bson:"user,omitempty"`
	Title           string         `bson:"title"`
	Description     string         `bson:"description"`
	EstimatedTime   string         `bson:"estimatedTime,omitempty"`
	MaterialsNeeded string         `bson:"materialsNeeded,omitempty"`

	// Owner is filled by the $lookup stage and never stored.
	Owner []userDocument `bson:"owner,omitempty"`
}

func (d courseDocument) toModel() models.Course {
	course := models.Course{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		EstimatedTime:   d.EstimatedTime,
		MaterialsNeeded: d.MaterialsNeeded,
	}
	if d.User != nil {
		course.UserID = d.User.Hex()
	}
	if len(d.Owner) > 0 {
		course.User = d.Owner[0].toModel()
	}
	return course
}

// populatePipeline replaces the stored owner reference with the user document.
func populatePipeline(match bson.M) mongo.Pipeline {
	var pipeline mongo.Pipeline
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
	)
}

// CourseRepository implements models.CourseRepository on a MongoDB collection.
type CourseRepository struct {
	coll *mongo.Collection
}

// NewCourseRepository creates a new MongoDB-backed CourseRepository.
func NewCourseRepository(coll *mongo.Collection) *CourseRepository {
	return &CourseRepository{coll: coll}
}

func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	docs, err := r.aggregate(ctx, nil)
	if err != nil {
		return nil, err
	}
	courses := make([]models.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, doc.toModel())
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	oid, err := parseID("course", id)
	if err != nil {
		return nil, err
	}
	docs, err := r.aggregate(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("course %s: %w", id, models.ErrNotFound)
	}
	course := docs[0].toModel()
	return &course, nil
}

// Create inserts course, assigning a new ObjectID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	doc := courseDocument{
		ID:              bson.NewObjectID(),
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
	}
	if course.UserID != "" {
		owner, err := parseID("user", course.UserID)
		if err != nil {
			return err
		}
		doc.User = &owner
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	course.ID = doc.ID.Hex()
	return nil
}

// Update applies the non-nil fields of update. Empty optional fields are unset.
func (r *CourseRepository) Update(ctx context.Context, id string, update models.CourseUpdate) error {
	oid, err := parseID("course", id)
	if err != nil {
		return err
	}

	doc, err := updateDocument(update)
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("count course: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("course %s: %w", id, models.ErrNotFound)
		}
		return nil
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("course %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID("course", id)
	if err != nil {
		return err
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("course %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *CourseRepository) aggregate(ctx context.Context, match bson.M) ([]courseDocument, error) {
	cursor, err := r.coll.Aggregate(ctx, populatePipeline(match))
	if err != nil {
		return nil, fmt.Errorf("aggregate courses: %w", err)
	}
	var docs []courseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return docs, nil
}

// updateDocument builds the $set/$unset document for a partial update.
func updateDocument(update models.CourseUpdate) (bson.M, error) {
	set := bson.M{}
	unset := bson.M{}

	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	optional := func(field string, value *string) {
		if value == nil {
			return
		}
		if *value == "" {
			unset[field] = ""
		} else {
			set[field] = *value
		}
	}
	optional("estimatedTime", update.EstimatedTime)
	optional("materialsNeeded", update.MaterialsNeeded)

	if update.UserID != nil {
		if *update.UserID == "" {
			unset["user"] = ""
		} else {
			owner, err := parseID("user", *update.UserID)
			if err != nil {
				return nil, err
			}
			set["user"] = owner
		}
	}

	doc := bson.M{}
	if len(set) > 0 {
		doc["$set"] = set
	}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc, nil
}

var _ models.CourseRepository = (*CourseRepository)(nil)
