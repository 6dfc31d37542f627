package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SkillPost is immutable once created. Text fields are pointers so that a
// field missing from the form stays absent rather than becoming "".
type SkillPost struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        *string            `bson:"title,omitempty" json:"title,omitempty"`
	Description  *string            `bson:"description,omitempty" json:"description,omitempty"`
	Category     *string            `bson:"category,omitempty" json:"category,omitempty"`
	Location     *string            `bson:"location,omitempty" json:"location,omitempty"`
	Availability *string            `bson:"availability,omitempty" json:"availability,omitempty"`
	Type         *string            `bson:"type,omitempty" json:"type,omitempty"` // Offer or Request
	Name         *string            `bson:"name,omitempty" json:"name,omitempty"`
	Contact      *string            `bson:"contact,omitempty" json:"contact,omitempty"`
	Tag          *string            `bson:"tag,omitempty" json:"tag,omitempty"`
	Status       *string            `bson:"status,omitempty" json:"status,omitempty"`
	Image        *string            `bson:"image" json:"image"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *SkillPost) BeforeCreate() error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	return nil
}

// OwnerName and OwnerContact read the copied-in poster details, empty when absent.
func (p *SkillPost) OwnerName() string {
	return deref(p.Name)
}

func (p *SkillPost) OwnerContact() string {
	return deref(p.Contact)
}

func (p *SkillPost) TitleText() string {
	return deref(p.Title)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *SkillPost) (*SkillPost, error)
	ListPosts(ctx context.Context) ([]*SkillPost, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*SkillPost, error)
}

func (mdb *MongodbRepo) CreatePost(ctx context.Context, post *SkillPost) (*SkillPost, error) {
	if err := post.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare post for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, SkillPostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	if _, err := col.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to insert post into database: %w", translate(err))
	}
	return post, nil
}

func (mdb *MongodbRepo) ListPosts(ctx context.Context) ([]*SkillPost, error) {
	col, err := mdb.GetCollection(ctx, SkillPostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := make([]*SkillPost, 0)
	for cursor.Next(ctx) {
		var post SkillPost
		if err := cursor.Decode(&post); err != nil {
			return nil, fmt.Errorf("error decoding post: %w", err)
		}
		posts = append(posts, &post)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return posts, nil
}

func (mdb *MongodbRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*SkillPost, error) {
	col, err := mdb.GetCollection(ctx, SkillPostsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var post SkillPost
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}
