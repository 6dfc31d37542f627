package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-redis/redis/v8"
	"github.com/joshua-takyi/skillshare/internal/config"
	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/models"
	"github.com/joshua-takyi/skillshare/internal/services"
	"github.com/twilio/twilio-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	// Database clients
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client
	Repo          *models.MongodbRepo

	UserService    *services.UserService
	PostService    *services.PostService
	AadhaarService *services.AadhaarService
}

// NewContainer creates a new dependency injection container. redisClient,
// cld and sms are optional; the OTP store falls back to MongoDB and images
// to the local upload directory.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
	cld *cloudinary.Cloudinary,
	twilioClient *twilio.RestClient,
) *Container {
	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)

	var otps models.OtpStore = models.NewMongoOtpStore(repo)
	if redisClient != nil {
		otps = models.NewRedisOtpStore(redisClient)
	}

	var images helpers.ImageStore = helpers.NewLocalImageStore(cfg.UploadDir)
	if cfg.ImageStore == config.ImageStoreCloudinary && cld != nil {
		images = helpers.NewCloudinaryImageStore(cld, cfg.CloudinaryFolder)
	}

	var sms helpers.SMSSender
	if twilioClient != nil {
		sms = helpers.NewTwilioSender(twilioClient, cfg.TwilioFromNumber)
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		Repo:           repo,
		UserService:    services.NewUserService(repo),
		PostService:    services.NewPostService(repo, images, sms, cfg.SMSCountryCode, logger),
		AadhaarService: services.NewAadhaarService(repo, otps, logger),
	}
}
