package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/joshua-takyi/skillshare/internal/models"
)

const (
	OtpTTL = 5 * time.Minute

	otpMin = 100000
	otpMax = 999999
)

type AadhaarService struct {
	userRepo models.UserRepo
	otps     models.OtpStore
	logger   *slog.Logger
	now      func() time.Time
	newCode  func() (string, error)
}

func NewAadhaarService(userRepo models.UserRepo, otps models.OtpStore, logger *slog.Logger) *AadhaarService {
	return &AadhaarService{
		userRepo: userRepo,
		otps:     otps,
		logger:   logger,
		now:      time.Now,
		newCode:  generateOtp,
	}
}

// generateOtp draws a code uniformly from 100000-999999.
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}

// RequestOtp issues a new code for username, replacing any pending one.
// Delivery is simulated by logging the code.
func (as *AadhaarService) RequestOtp(ctx context.Context, username, aadhaarNumber string) error {
	if _, err := as.userRepo.GetUserByUsername(ctx, username); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	code, err := as.newCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	otp := &models.AadhaarOtp{
		Username:      username,
		AadhaarNumber: aadhaarNumber,
		Code:          code,
		ExpiresAt:     as.now().Add(OtpTTL),
	}
	if err := as.otps.SaveOtp(ctx, otp); err != nil {
		return fmt.Errorf("failed to save otp: %w", err)
	}

	as.logger.Info("Simulated Aadhaar OTP", "username", username, "otp", code, "expires_at", otp.ExpiresAt)
	return nil
}

// SubmitOtp marks the user verified when otp matches the pending code and the
// code has not expired. A wrong code, an expired code and a missing request
// all return ErrInvalidOrExpired and leave the pending code in place.
func (as *AadhaarService) SubmitOtp(ctx context.Context, username, otp string) error {
	if _, err := as.userRepo.GetUserByUsername(ctx, username); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	pending, err := as.otps.GetOtp(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return ErrInvalidOrExpired
	}
	if err != nil {
		return fmt.Errorf("failed to get otp: %w", err)
	}

	matches := subtle.ConstantTimeCompare([]byte(pending.Code), []byte(otp)) == 1
	if !matches || !pending.ExpiresAt.After(as.now()) {
		return ErrInvalidOrExpired
	}

	_, err = as.userRepo.UpdateUser(ctx, username, map[string]interface{}{
		"aadhaarVerified": true,
		"aadhaarNumber":   pending.AadhaarNumber,
	})
	if errors.Is(err, models.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	// the record expires on its own, so a failed delete does not undo the verification
	if err := as.otps.DeleteOtp(ctx, username); err != nil {
		as.logger.Warn("Failed to clear Aadhaar OTP", "username", username, "error", err)
	}
	return nil
}
