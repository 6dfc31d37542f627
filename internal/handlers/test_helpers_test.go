package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/models"
	"github.com/joshua-takyi/skillshare/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (r *memUsers) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return nil, models.ErrDuplicate
	}
	cp := *user
	r.users[user.Username] = &cp
	return user, nil
}

func (r *memUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) UpdateUser(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error) {
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

// memPosts keeps insertion order; newest is last.
type memPosts struct {
	mu    sync.Mutex
	posts []*models.SkillPost
	err   error
}

func (r *memPosts) CreatePost(ctx context.Context, post *models.SkillPost) (*models.SkillPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	post.BeforeCreate()
	r.posts = append(r.posts, post)
	return post, nil
}

func (r *memPosts) ListPosts(ctx context.Context) ([]*models.SkillPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.SkillPost, 0, len(r.posts))
	for i := len(r.posts) - 1; i >= 0; i-- {
		out = append(out, r.posts[i])
	}
	return out, nil
}

func (r *memPosts) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.SkillPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

type memOtps struct {
	mu   sync.Mutex
	otps map[string]models.AadhaarOtp
}

func (s *memOtps) SaveOtp(ctx context.Context, otp *models.AadhaarOtp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[otp.Username] = *otp
	return nil
}

func (s *memOtps) GetOtp(ctx context.Context, username string) (*models.AadhaarOtp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp, ok := s.otps[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &otp, nil
}

func (s *memOtps) DeleteOtp(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, username)
	return nil
}

type recordedSMS struct {
	to, body string
}

type stubSMS struct {
	sent []recordedSMS
}

func (s *stubSMS) SendSMS(ctx context.Context, to, body string) (string, error) {
	s.sent = append(s.sent, recordedSMS{to: to, body: body})
	return "SMtest", nil
}

type testServer struct {
	router  *gin.Engine
	users   *memUsers
	posts   *memPosts
	otps    *memOtps
	sms     *stubSMS
	uploads string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := &testServer{
		users:   &memUsers{users: make(map[string]*models.User)},
		posts:   &memPosts{},
		otps:    &memOtps{otps: make(map[string]models.AadhaarOtp)},
		sms:     &stubSMS{},
		uploads: t.TempDir(),
	}

	userService := services.NewUserService(ts.users)
	postService := services.NewPostService(ts.posts, helpers.NewLocalImageStore(ts.uploads), ts.sms, "+91", logger)
	aadhaarService := services.NewAadhaarService(ts.users, ts.otps, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", RegisterUser(userService))
	api.POST("/login", LoginUser(userService))
	api.GET("/profile/:username", GetProfile(userService))
	api.PUT("/profile/:username", UpdateProfile(userService))
	api.POST("/posts", CreatePost(postService))
	api.GET("/posts", ListPosts(postService))
	api.POST("/posts/connect/:postId", ConnectPost(postService))
	api.POST("/verify-aadhaar/request-otp", RequestAadhaarOtp(aadhaarService))
	api.POST("/verify-aadhaar/submit-otp", SubmitAadhaarOtp(aadhaarService))
	ts.router = r
	return ts
}

func (ts *testServer) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	ts.router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("json.Unmarshal: %v (body %s)", err, resp.Body.String())
	}
}

func mustStatus(t *testing.T, actual int, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func registerUser(t *testing.T, ts *testServer, username, password string) {
	t.Helper()
	resp := ts.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"fullName": "Test User",
		"email":    username + "@x.io",
		"phone":    "9000000001",
		"address":  "Pune",
		"username": username,
		"password": password,
	})
	mustStatus(t, resp.Code, http.StatusCreated)
}
