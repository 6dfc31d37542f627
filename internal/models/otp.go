package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AadhaarOtp is a pending verification code for one user.
type AadhaarOtp struct {
	Username      string    `bson:"username" json:"username"`
	AadhaarNumber string    `bson:"aadhaar_number" json:"aadhaar_number"`
	Code          string    `bson:"code" json:"code"`
	ExpiresAt     time.Time `bson:"expires_at" json:"expires_at"` // TTL index field
}

// OtpStore keeps at most one pending code per username. Backends may purge
// expired records on their own; callers still compare ExpiresAt themselves.
type OtpStore interface {
	SaveOtp(ctx context.Context, otp *AadhaarOtp) error
	GetOtp(ctx context.Context, username string) (*AadhaarOtp, error)
	DeleteOtp(ctx context.Context, username string) error
}

// MongoOtpStore persists codes in the aadhaar_otps collection.
type MongoOtpStore struct {
	repo *MongodbRepo
}

func NewMongoOtpStore(repo *MongodbRepo) *MongoOtpStore {
	return &MongoOtpStore{repo: repo}
}

func (s *MongoOtpStore) SaveOtp(ctx context.Context, otp *AadhaarOtp) error {
	col, err := s.repo.GetCollection(ctx, OtpColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := col.ReplaceOne(ctx, bson.M{"username": otp.Username}, otp, opts); err != nil {
		return fmt.Errorf("error saving otp: %w", err)
	}
	return nil
}

func (s *MongoOtpStore) GetOtp(ctx context.Context, username string) (*AadhaarOtp, error) {
	col, err := s.repo.GetCollection(ctx, OtpColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var otp AadhaarOtp
	if err := col.FindOne(ctx, bson.M{"username": username}).Decode(&otp); err != nil {
		return nil, translate(err)
	}
	return &otp, nil
}

func (s *MongoOtpStore) DeleteOtp(ctx context.Context, username string) error {
	col, err := s.repo.GetCollection(ctx, OtpColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	if _, err := col.DeleteOne(ctx, bson.M{"username": username}); err != nil {
		return fmt.Errorf("error deleting otp: %w", err)
	}
	return nil
}
