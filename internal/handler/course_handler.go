package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"beingiitian/internal/service"
)

// CourseHandler handles the public catalog and admin course CRUD.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CourseRequest is the admin payload for creating or updating a course.
type CourseRequest struct {
	Title          string           `json:"title" validate:"required"`
	Description    string           `json:"description" validate:"required"`
	Subject        string           `json:"subject" validate:"required"`
	Level          string           `json:"level" validate:"required"`
	Price          *decimal.Decimal `json:"price" validate:"required"`
	Duration       *int             `json:"duration"`
	TotalLectures  *int             `json:"total_lectures"`
	InstructorName string           `json:"instructor_name" validate:"required"`
	MentorID       *uuid.UUID       `json:"mentor_id"`
	ThumbnailURL   string           `json:"thumbnail_url"`
	Tags           []string         `json:"tags"`
	IsPublished    *bool            `json:"is_published"`
}

// UpdateCourseRequest is the partial-update variant: nothing is required,
// absent fields stay unchanged, and an explicit empty string clears an
// optional field like thumbnail_url.
type UpdateCourseRequest struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	Subject        *string          `json:"subject"`
	Level          *string          `json:"level"`
	Price          *decimal.Decimal `json:"price"`
	Duration       *int             `json:"duration"`
	TotalLectures  *int             `json:"total_lectures"`
	InstructorName *string          `json:"instructor_name"`
	MentorID       *uuid.UUID       `json:"mentor_id"`
	ThumbnailURL   *string          `json:"thumbnail_url"`
	Tags           []string         `json:"tags"`
	IsPublished    *bool            `json:"is_published"`
}

// ListPublished godoc
// @Summary List published courses
// @Tags courses
// @Produce json
// @Success 200 {object} map[string][]model.Course
// @Router /courses [get]
func (h *CourseHandler) ListPublished(c echo.Context) error {
	courses, err := h.courseService.ListPublished(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

// GetBySlug godoc
// @Summary Get a published course by slug
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} model.Course
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{slug} [get]
func (h *CourseHandler) GetBySlug(c echo.Context) error {
	course, err := h.courseService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"course": course})
}

// ListAll godoc
// @Summary List all courses including unpublished
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]model.Course
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/courses [get]
func (h *CourseHandler) ListAll(c echo.Context) error {
	courses, err := h.courseService.ListAll(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

// Create godoc
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CourseRequest true "Course data"
// @Success 201 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req CourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.Create(c.Request().Context(), service.CourseInput{
		Title:          req.Title,
		Description:    req.Description,
		Subject:        req.Subject,
		Level:          req.Level,
		Price:          req.Price,
		Duration:       req.Duration,
		TotalLectures:  req.TotalLectures,
		InstructorName: req.InstructorName,
		MentorID:       req.MentorID,
		ThumbnailURL:   req.ThumbnailURL,
		Tags:           req.Tags,
		IsPublished:    req.IsPublished,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "course created successfully",
		"course":  course,
	})
}

// Get godoc
// @Summary Get a course by id
// @Tags admin
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	course, err := h.courseService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"course": course})
}

// Update godoc
// @Summary Update a course
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body UpdateCourseRequest true "Fields to update"
// @Success 200 {object} model.Course
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.Update(c.Request().Context(), id, service.UpdateCourseInput{
		Title:          req.Title,
		Description:    req.Description,
		Subject:        req.Subject,
		Level:          req.Level,
		Price:          req.Price,
		Duration:       req.Duration,
		TotalLectures:  req.TotalLectures,
		InstructorName: req.InstructorName,
		MentorID:       req.MentorID,
		ThumbnailURL:   req.ThumbnailURL,
		Tags:           req.Tags,
		IsPublished:    req.IsPublished,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "course updated successfully",
		"course":  course,
	})
}

// Delete godoc
// @Summary Delete a course
// @Tags admin
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.courseService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "course deleted successfully"})
}
