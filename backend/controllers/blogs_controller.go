package controllers

import (
	"errors"
	"time"

	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type BlogsController struct {
	DB  *gorm.DB
	Log *utils.Logger
}

func NewBlogsController(db *gorm.DB, log *utils.Logger) *BlogsController {
	return &BlogsController{DB: db, Log: log}
}

type BlogRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt" validate:"max=500"`
	Content     string   `json:"content" validate:"required"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

type BlogUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=200"`
	Slug        *string  `json:"slug"`
	Excerpt     *string  `json:"excerpt" validate:"omitempty,max=500"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

// ListBlogs godoc
// @Summary List blog posts
// @Tags admin
// @Produce json
// @Success 200 {array} models.Blog
// @Security ApiKeyAuth
// @Router /admin/blogs [get]
func (bc *BlogsController) ListBlogs(c *fiber.Ctx) error {
	blogs := []models.Blog{}
	if err := bc.DB.WithContext(c.UserContext()).Order("created_at DESC, id DESC").Find(&blogs).Error; err != nil {
		return utils.HandleError(c, bc.Log, err)
	}
	return c.JSON(blogs)
}

// CreateBlog godoc
// @Summary Create a blog post
// @Tags admin
// @Accept json
// @Produce json
// @Param input body BlogRequest true "Blog post"
// @Success 201 {object} models.Blog
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/blogs [post]
func (bc *BlogsController) CreateBlog(c *fiber.Ctx) error {
	var input BlogRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	blog := models.Blog{
		Title:       input.Title,
		Slug:        input.Slug,
		Excerpt:     input.Excerpt,
		Content:     input.Content,
		AuthorID:    middleware.CurrentUser(c).ID,
		Tags:        stringsOrEmpty(input.Tags),
		IsPublished: input.IsPublished,
	}
	if blog.Slug == "" {
		blog.Slug = slug.Make(blog.Title)
	}
	if blog.IsPublished {
		now := time.Now().UTC()
		blog.PublishedAt = &now
	}

	if err := bc.DB.WithContext(c.UserContext()).Create(&blog).Error; err != nil {
		return utils.HandleError(c, bc.Log, err)
	}
	return utils.Created(c, blog)
}

func (bc *BlogsController) UpdateBlog(c *fiber.Ctx) error {
	blogID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid blog ID")
	}

	var input BlogUpdateRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	db := bc.DB.WithContext(c.UserContext())
	var blog models.Blog
	if err := db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Blog not found")
		}
		return utils.HandleError(c, bc.Log, err)
	}

	if input.Title != nil && *input.Title != "" {
		blog.Title = *input.Title
	}
	if input.Slug != nil && *input.Slug != "" {
		blog.Slug = *input.Slug
	}
	if input.Excerpt != nil {
		blog.Excerpt = *input.Excerpt
	}
	if input.Content != nil && *input.Content != "" {
		blog.Content = *input.Content
	}
	if input.Tags != nil {
		blog.Tags = input.Tags
	}
	if input.IsPublished != nil {
		if *input.IsPublished && blog.PublishedAt == nil {
			now := time.Now().UTC()
			blog.PublishedAt = &now
		}
		blog.IsPublished = *input.IsPublished
	}

	if err := db.Save(&blog).Error; err != nil {
		return utils.HandleError(c, bc.Log, err)
	}
	return c.JSON(blog)
}

func (bc *BlogsController) DeleteBlog(c *fiber.Ctx) error {
	blogID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid blog ID")
	}

	res := bc.DB.WithContext(c.UserContext()).Delete(&models.Blog{}, blogID)
	if res.Error != nil {
		return utils.HandleError(c, bc.Log, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Blog not found")
	}
	return utils.Message(c, "Blog deleted")
}
