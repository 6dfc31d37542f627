package services

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"sort"
	"sync"

	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	// createErr is returned by CreateUser when set.
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.users[user.Username]; ok {
		return nil, models.ErrDuplicate
	}
	user.BeforeCreate()
	cp := *user
	r.users[user.Username] = &cp
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "fullName":
			u.FullName = v.(string)
		case "email":
			u.Email = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		case "profilePic":
			u.ProfilePic = v.(string)
		case "password":
			u.Password = v.(string)
		case "aadhaarNumber":
			u.AadhaarNumber = v.(string)
		case "aadhaarVerified":
			u.AadhaarVerified = v.(bool)
		}
	}
	cp := *u
	return &cp, nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts []*models.SkillPost
}

func (r *fakePostRepo) CreatePost(ctx context.Context, post *models.SkillPost) (*models.SkillPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.BeforeCreate()
	r.posts = append(r.posts, post)
	return post, nil
}

func (r *fakePostRepo) ListPosts(ctx context.Context) ([]*models.SkillPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]*models.SkillPost(nil), r.posts...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (r *fakePostRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.SkillPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeOtpStore struct {
	mu   sync.Mutex
	otps map[string]models.AadhaarOtp
	// deleteErr is returned by DeleteOtp when set.
	deleteErr error
}

func newFakeOtpStore() *fakeOtpStore {
	return &fakeOtpStore{otps: make(map[string]models.AadhaarOtp)}
}

func (s *fakeOtpStore) SaveOtp(ctx context.Context, otp *models.AadhaarOtp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[otp.Username] = *otp
	return nil
}

func (s *fakeOtpStore) GetOtp(ctx context.Context, username string) (*models.AadhaarOtp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.otps[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &otp, nil
}

func (s *fakeOtpStore) DeleteOtp(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.otps, username)
	return nil
}

type fakeImageStore struct {
	saved []string
}

func (s *fakeImageStore) SaveImage(ctx context.Context, file *multipart.FileHeader) (*helpers.StoredImage, error) {
	s.saved = append(s.saved, file.Filename)
	return &helpers.StoredImage{Path: "/uploads/fixed-" + file.Filename, ContentType: "image/png"}, nil
}

type sentSMS struct {
	to   string
	body string
}

type fakeSMS struct {
	sent []sentSMS
	err  error
}

func (s *fakeSMS) SendSMS(ctx context.Context, to, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, sentSMS{to: to, body: body})
	return "SM123", nil
}
