package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const otpKeyPrefix = "aadhaar_otp:"

// RedisOtpStore keeps each pending code under a key that expires with it.
type RedisOtpStore struct {
	client *redis.Client
}

func NewRedisOtpStore(client *redis.Client) *RedisOtpStore {
	return &RedisOtpStore{client: client}
}

func otpKey(username string) string {
	return otpKeyPrefix + username
}

func (s *RedisOtpStore) SaveOtp(ctx context.Context, otp *AadhaarOtp) error {
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp for %s is already expired", otp.Username)
	}

	payload, err := json.Marshal(otp)
	if err != nil {
		return fmt.Errorf("failed to marshal otp: %w", err)
	}

	if err := s.client.Set(ctx, otpKey(otp.Username), payload, ttl).Err(); err != nil {
		return fmt.Errorf("error saving otp: %w", err)
	}
	return nil
}

func (s *RedisOtpStore) GetOtp(ctx context.Context, username string) (*AadhaarOtp, error) {
	raw, err := s.client.Get(ctx, otpKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading otp: %w", err)
	}

	var otp AadhaarOtp
	if err := json.Unmarshal(raw, &otp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp: %w", err)
	}
	return &otp, nil
}

func (s *RedisOtpStore) DeleteOtp(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, otpKey(username)).Err(); err != nil {
		return fmt.Errorf("error deleting otp: %w", err)
	}
	return nil
}
