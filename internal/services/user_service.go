package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/models"
)

// ProfileFields are the only keys a profile update may touch.
var ProfileFields = []string{"fullName", "email", "phone", "address", "profilePic", "password"}

type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) Register(ctx context.Context, in RegisterInput) error {
	_, err := us.userRepo.GetUserByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return ErrConflict
	case !errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("failed to look up username: %w", err)
	}

	hashed, err := helpers.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: in.Username,
		Password: hashed,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Address:  in.Address,
	}
	if _, err := us.userRepo.CreateUser(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, models.ErrDuplicate) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login returns the stored username when the password matches. Unknown users
// and wrong passwords are indistinguishable.
func (us *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := us.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !helpers.CheckPassword(password, user.Password) {
		return "", ErrUnauthorized
	}
	return user.Username, nil
}

func (us *UserService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	user, err := us.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateProfile applies the truthy allow-listed values in body. Falsy values
// such as "" are skipped, so a field cannot be cleared through this call.
func (us *UserService) UpdateProfile(ctx context.Context, username string, body map[string]interface{}) (*models.Profile, error) {
	fields, err := filterProfileUpdate(body)
	if err != nil {
		return nil, err
	}

	if pw, ok := fields["password"]; ok {
		hashed, err := helpers.HashPassword(pw.(string))
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password"] = hashed
	}

	user, err := us.userRepo.UpdateUser(ctx, username, fields)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	profile := user.Profile()
	return &profile, nil
}

func filterProfileUpdate(body map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	for _, key := range ProfileFields {
		value, ok, err := truthyString(body[key])
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if ok {
			fields[key] = value
		}
	}
	return fields, nil
}

// truthyString converts a decoded JSON value to the string that will be
// stored, reporting false for null, "", 0 and false.
func truthyString(v interface{}) (string, bool, error) {
	switch val := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return val, val != "", nil
	case bool:
		return "true", val, nil
	case float64:
		if val == 0 {
			return "", false, nil
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	default:
		return "", false, fmt.Errorf("cannot store %T as a string", v)
	}
}
