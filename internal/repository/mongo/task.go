package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type taskDocument struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"userId"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	Status      string     `bson:"status"`
	DueDate     *time.Time `bson:"dueDate"`
	CreatedAt   time.Time  `bson:"createdAt"`
}

func newTaskDocument(task model.Task) taskDocument {
	return taskDocument{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
	}
}

func (d taskDocument) toModel() (model.Task, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid task id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return model.Task{}, fmt.Errorf("invalid task owner %q: %w", d.UserID, err)
	}

	task := model.Task{
		ID:          id,
		UserID:      userID,
		Title:       d.Title,
		Description: d.Description,
		Status:      model.TaskStatus(d.Status),
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		task.DueDate = &due
	}

	return task, nil
}

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		collection: db.db.Collection(tasksCollection),
	}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	doc := newTaskDocument(task)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return doc.toModel()
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	var doc taskDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return doc.toModel()
}

func (r *TaskRepository) ListByUserID(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	cursor, err := r.collection.Aggregate(ctx, listPipeline(userID, filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]model.Task, 0)
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		task, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	var doc taskDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": task.ID.String(), "userId": task.UserID.String()},
		bson.M{"$set": bson.M{
			"title":       task.Title,
			"description": task.Description,
			"status":      string(task.Status),
			"dueDate":     task.DueDate,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return doc.toModel()
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String(), "userId": userID.String()})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

// listPipeline builds the aggregation for a user's task listing. Mongo sorts
// nulls first, so undated tasks get a helper field to push them last.
func listPipeline(userID uuid.UUID, filter model.TaskFilter) mongo.Pipeline {
	match := bson.D{{Key: "userId", Value: userID.String()}}
	if filter.Status != "" {
		match = append(match, bson.E{Key: "status", Value: string(filter.Status)})
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}

	switch filter.Sort {
	case model.TaskSortDueDate:
		pipeline = append(pipeline,
			bson.D{{Key: "$addFields", Value: bson.D{{Key: "undated", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$dueDate", nil}}}, nil}}}, 1, 0}},
			}}}}},
			bson.D{{Key: "$sort", Value: bson.D{{Key: "undated", Value: 1}, {Key: "dueDate", Value: 1}, {Key: "createdAt", Value: -1}}}},
			bson.D{{Key: "$project", Value: bson.D{{Key: "undated", Value: 0}}}},
		)
	case model.TaskSortTitle:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "title", Value: 1}, {Key: "createdAt", Value: -1}}}})
	case model.TaskSortStatus:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}}})
	default:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}})
	}

	return pipeline
}
