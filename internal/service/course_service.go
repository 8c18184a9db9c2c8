package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"beingiitian/internal/cache"
	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
	"beingiitian/internal/repository"
)

const (
	publishedCoursesCacheKey = "courses:published"
	publishedCoursesCacheTTL = 5 * time.Minute
)

// CourseInput is the admin payload for creating a course.
type CourseInput struct {
	Title          string
	Description    string
	Subject        string
	Level          string
	Price          *decimal.Decimal
	Duration       *int
	TotalLectures  *int
	InstructorName string
	MentorID       *uuid.UUID
	ThumbnailURL   string
	Tags           []string
	IsPublished    *bool
}

// UpdateCourseInput carries partial updates. Nil fields are left untouched;
// a pointer to the empty string clears an optional text field.
type UpdateCourseInput struct {
	Title          *string
	Description    *string
	Subject        *string
	Level          *string
	Price          *decimal.Decimal
	Duration       *int
	TotalLectures  *int
	InstructorName *string
	MentorID       *uuid.UUID
	ThumbnailURL   *string
	Tags           []string
	IsPublished    *bool
}

// CourseService exposes catalog operations: a public read surface plus
// admin-only CRUD.
type CourseService interface {
	ListPublished(ctx context.Context) ([]model.Course, error)
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)
	ListAll(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Course, error)
	Create(ctx context.Context, input CourseInput) (*model.Course, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCourseInput) (*model.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	courseRepo repository.CourseRepository
	cache      *cache.Client
}

// NewCourseService builds a CourseService with repository and cache.
func NewCourseService(courseRepo repository.CourseRepository, cache *cache.Client) CourseService {
	return &courseService{courseRepo: courseRepo, cache: cache}
}

// ListPublished returns the public catalog, served from cache when possible.
func (s *courseService) ListPublished(ctx context.Context) ([]model.Course, error) {
	if data, _ := s.cache.Get(ctx, publishedCoursesCacheKey); data != nil {
		var cached []model.Course
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	courses, err := s.courseRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published courses: %w", err)
	}

	if payload, err := json.Marshal(courses); err == nil {
		_ = s.cache.Set(ctx, publishedCoursesCacheKey, payload, publishedCoursesCacheTTL)
	}
	return courses, nil
}

// GetBySlug returns a published course. Unpublished courses are invisible to
// the public surface and read as not found.
func (s *courseService) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	course, err := s.courseRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	if !course.IsPublished {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) ListAll(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courseRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return course, nil
}

// Create adds a course with a slug derived from the title. Two titles that
// slugify identically are a conflict.
func (s *courseService) Create(ctx context.Context, input CourseInput) (*model.Course, error) {
	slug := Slugify(input.Title)
	if err := s.ensureSlugFree(ctx, slug, uuid.Nil); err != nil {
		return nil, err
	}

	course := &model.Course{
		ID:             uuid.New(),
		Title:          input.Title,
		Slug:           slug,
		Description:    input.Description,
		Subject:        input.Subject,
		Level:          input.Level,
		InstructorName: input.InstructorName,
		MentorID:       input.MentorID,
		ThumbnailURL:   input.ThumbnailURL,
		Tags:           input.Tags,
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Duration != nil {
		course.Duration = *input.Duration
	}
	if input.TotalLectures != nil {
		course.TotalLectures = *input.TotalLectures
	}
	if input.IsPublished != nil {
		course.IsPublished = *input.IsPublished
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.invalidateCatalog(ctx)
	return course, nil
}

// Update applies partial updates; a changed title regenerates the slug.
func (s *courseService) Update(ctx context.Context, id uuid.UUID, input UpdateCourseInput) (*model.Course, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != course.Title {
		slug := Slugify(*input.Title)
		if err := s.ensureSlugFree(ctx, slug, course.ID); err != nil {
			return nil, err
		}
		course.Title = *input.Title
		course.Slug = slug
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Subject != nil {
		course.Subject = *input.Subject
	}
	if input.Level != nil {
		course.Level = *input.Level
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Duration != nil {
		course.Duration = *input.Duration
	}
	if input.TotalLectures != nil {
		course.TotalLectures = *input.TotalLectures
	}
	if input.InstructorName != nil {
		course.InstructorName = *input.InstructorName
	}
	if input.MentorID != nil {
		course.MentorID = input.MentorID
	}
	if input.ThumbnailURL != nil {
		course.ThumbnailURL = *input.ThumbnailURL
	}
	if input.Tags != nil {
		course.Tags = input.Tags
	}
	if input.IsPublished != nil {
		course.IsPublished = *input.IsPublished
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrSlugTaken
		}
		return nil, fmt.Errorf("update course: %w", err)
	}

	s.invalidateCatalog(ctx)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *courseService) ensureSlugFree(ctx context.Context, slug string, selfID uuid.UUID) error {
	existing, err := s.courseRepo.FindBySlug(ctx, slug)
	if err == nil && existing != nil && existing.ID != selfID {
		return apperrors.ErrSlugTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check slug: %w", err)
	}
	return nil
}

func (s *courseService) invalidateCatalog(ctx context.Context) {
	_ = s.cache.Delete(ctx, publishedCoursesCacheKey)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a course title: lowercased, runs of
// non-alphanumerics collapsed to single hyphens, edges trimmed.
func Slugify(title string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
