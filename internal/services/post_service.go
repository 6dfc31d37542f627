package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const connectTemplate = "Hi %s, someone is interested in your skill \"%s\". You can contact them at %s."

// PostInput carries the form fields of a new post. A nil field was not
// supplied by the client.
type PostInput struct {
	Title        *string
	Description  *string
	Category     *string
	Location     *string
	Availability *string
	Type         *string
	Name         *string
	Contact      *string
	Tag          *string
	Status       *string
}

type PostService struct {
	postsRepo   models.PostRepo
	images      helpers.ImageStore
	sms         helpers.SMSSender
	countryCode string
	logger      *slog.Logger
	now         func() time.Time
}

// NewPostService wires the post routes. sms may be nil when no provider is
// configured; Connect then fails with ErrSMSNotConfigured.
func NewPostService(postsRepo models.PostRepo, images helpers.ImageStore, sms helpers.SMSSender, countryCode string, logger *slog.Logger) *PostService {
	return &PostService{
		postsRepo:   postsRepo,
		images:      images,
		sms:         sms,
		countryCode: countryCode,
		logger:      logger,
		now:         time.Now,
	}
}

func (ps *PostService) CreatePost(ctx context.Context, in PostInput, image *multipart.FileHeader) (*models.SkillPost, error) {
	post := &models.SkillPost{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Location:     in.Location,
		Availability: in.Availability,
		Type:         in.Type,
		Name:         in.Name,
		Contact:      in.Contact,
		Tag:          in.Tag,
		Status:       in.Status,
	}

	if image != nil {
		stored, err := ps.images.SaveImage(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		ps.logger.Debug("Stored post image", "path", stored.Path, "content_type", stored.ContentType, "size", image.Size)
		post.Image = &stored.Path
	}

	now := ps.now()
	post.CreatedAt = now
	post.UpdatedAt = now

	created, err := ps.postsRepo.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return created, nil
}

func (ps *PostService) ListPosts(ctx context.Context) ([]*models.SkillPost, error) {
	posts, err := ps.postsRepo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Connect texts the owner of a post that phone is interested in it. The
// message is sent once and nothing about it is stored.
func (ps *PostService) Connect(ctx context.Context, postID, phone string) error {
	id, err := primitive.ObjectIDFromHex(helpers.StringTrim(postID))
	if err != nil {
		return ErrNotFound
	}

	post, err := ps.postsRepo.GetPostByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	if ps.sms == nil {
		return ErrSMSNotConfigured
	}

	body := fmt.Sprintf(connectTemplate, post.OwnerName(), post.TitleText(), phone)
	sid, err := ps.sms.SendSMS(ctx, ps.countryCode+post.OwnerContact(), body)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	ps.logger.Info("SMS sent", "post_id", id.Hex(), "sid", sid)
	return nil
}
