package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"JEE Advanced Physics", "jee-advanced-physics"},
		{"Maths: Calculus & Algebra!", "maths-calculus-algebra"},
		{"  trims  edges  ", "trims-edges"},
		{"Class 12 -- Chemistry", "class-12-chemistry"},
		{"ALLCAPS", "allcaps"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), tt.title)
	}
}

func TestCourseService_Create(t *testing.T) {
	price := decimal.NewFromInt(4999)

	t.Run("slug derived from title", func(t *testing.T) {
		mockCourses := new(MockCourseRepository)
		mockCourses.On("FindBySlug", mock.Anything, "jee-advanced-physics").Return(nil, gorm.ErrRecordNotFound)
		mockCourses.On("Create", mock.Anything, mock.AnythingOfType("*model.Course")).Return(nil)

		svc := NewCourseService(mockCourses, nilCache)
		course, err := svc.Create(context.Background(), CourseInput{
			Title:          "JEE Advanced Physics",
			Description:    "Mechanics to modern physics",
			Subject:        "Physics",
			Level:          "Advanced",
			Price:          &price,
			InstructorName: "Priya Mehta",
		})

		require.NoError(t, err)
		assert.Equal(t, "jee-advanced-physics", course.Slug)
		assert.False(t, course.IsPublished, "courses start unpublished")
		mockCourses.AssertExpectations(t)
	})

	t.Run("colliding title", func(t *testing.T) {
		mockCourses := new(MockCourseRepository)
		mockCourses.On("FindBySlug", mock.Anything, "jee-advanced-physics").
			Return(&model.Course{ID: uuid.New(), Slug: "jee-advanced-physics"}, nil)

		svc := NewCourseService(mockCourses, nilCache)
		course, err := svc.Create(context.Background(), CourseInput{
			Title:          "JEE Advanced Physics",
			Description:    "duplicate",
			Subject:        "Physics",
			Level:          "Advanced",
			Price:          &price,
			InstructorName: "Priya Mehta",
		})

		assert.ErrorIs(t, err, apperrors.ErrSlugTaken)
		assert.Nil(t, course)
	})
}

func TestCourseService_GetBySlug(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		mockCourses := new(MockCourseRepository)
		mockCourses.On("FindBySlug", mock.Anything, "jee-maths").
			Return(&model.Course{Slug: "jee-maths", IsPublished: true}, nil)

		svc := NewCourseService(mockCourses, nilCache)
		course, err := svc.GetBySlug(context.Background(), "jee-maths")
		require.NoError(t, err)
		assert.Equal(t, "jee-maths", course.Slug)
	})

	t.Run("unpublished reads as not found", func(t *testing.T) {
		mockCourses := new(MockCourseRepository)
		mockCourses.On("FindBySlug", mock.Anything, "draft-course").
			Return(&model.Course{Slug: "draft-course", IsPublished: false}, nil)

		svc := NewCourseService(mockCourses, nilCache)
		course, err := svc.GetBySlug(context.Background(), "draft-course")
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		assert.Nil(t, course)
	})

	t.Run("missing", func(t *testing.T) {
		mockCourses := new(MockCourseRepository)
		mockCourses.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewCourseService(mockCourses, nilCache)
		_, err := svc.GetBySlug(context.Background(), "nope")
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestCourseService_Update_TitleChangeRegeneratesSlug(t *testing.T) {
	id := uuid.New()
	mockCourses := new(MockCourseRepository)
	mockCourses.On("FindByID", mock.Anything, id).
		Return(&model.Course{ID: id, Title: "Old Title", Slug: "old-title"}, nil)
	mockCourses.On("FindBySlug", mock.Anything, "new-title").Return(nil, gorm.ErrRecordNotFound)
	mockCourses.On("Update", mock.Anything, mock.AnythingOfType("*model.Course")).Return(nil)

	svc := NewCourseService(mockCourses, nilCache)
	newTitle := "New Title"
	course, err := svc.Update(context.Background(), id, UpdateCourseInput{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, "new-title", course.Slug)
	mockCourses.AssertExpectations(t)
}

func TestCourseService_Update_ClearableOptionalFields(t *testing.T) {
	id := uuid.New()
	mockCourses := new(MockCourseRepository)
	mockCourses.On("FindByID", mock.Anything, id).Return(&model.Course{
		ID:           id,
		Title:        "JEE Physics",
		Slug:         "jee-physics",
		Description:  "Mechanics to modern physics",
		ThumbnailURL: "https://cdn.example.com/old.png",
	}, nil)
	mockCourses.On("Update", mock.Anything, mock.AnythingOfType("*model.Course")).Return(nil)

	svc := NewCourseService(mockCourses, nilCache)
	empty := ""
	course, err := svc.Update(context.Background(), id, UpdateCourseInput{ThumbnailURL: &empty})

	require.NoError(t, err)
	assert.Empty(t, course.ThumbnailURL, "explicit empty string clears the field")
	assert.Equal(t, "Mechanics to modern physics", course.Description, "nil fields stay untouched")
	assert.Equal(t, "jee-physics", course.Slug)
	mockCourses.AssertExpectations(t)
}
