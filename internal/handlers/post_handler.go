package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillshare/internal/models"
	"github.com/joshua-takyi/skillshare/internal/services"
)

// formValue returns nil when the field was not sent at all.
func formValue(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

func CreatePost(p *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.PostInput{
			Title:        formValue(c, "title"),
			Description:  formValue(c, "description"),
			Category:     formValue(c, "category"),
			Location:     formValue(c, "location"),
			Availability: formValue(c, "availability"),
			Type:         formValue(c, "type"),
			Name:         formValue(c, "name"),
			Contact:      formValue(c, "contact"),
			Tag:          formValue(c, "tag"),
			Status:       formValue(c, "status"),
		}

		var image *multipart.FileHeader
		if fh, err := c.FormFile("image"); err == nil {
			image = fh
		} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}

		post, err := p.CreatePost(c.Request.Context(), in, image)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}

		c.JSON(http.StatusCreated, models.PostCreatedResponse{
			Message: "Post created successfully",
			Post:    post,
		})
	}
}

func ListPosts(p *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := p.ListPosts(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server error"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

func ConnectPost(p *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}

		err := p.Connect(c.Request.Context(), c.Param("postId"), req.Phone)
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Post not found"})
			return
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to send SMS"})
			return
		}

		c.JSON(http.StatusOK, models.ConnectResponse{Success: true, Message: "SMS sent to the post owner"})
	}
}
