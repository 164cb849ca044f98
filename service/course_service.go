// api/service/course_service.go
package service

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sagelms/sage/api/errors"
	logger "github.com/sagelms/sage/api/logging"
	"github.com/sagelms/sage/api/model"
	"github.com/sagelms/sage/api/util"
)

// CourseStore is the persistence surface CourseService needs.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	ListCourses(ctx context.Context) ([]model.Course, error)
	CreateLecture(ctx context.Context, lecture *model.Lecture) error
	Enroll(ctx context.Context, enrollment *model.Enrollment) error
}

type ICourseService interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	CreateCourse(ctx context.Context, principal model.Principal, course model.Course) (*model.Course, error)
	AddLecture(ctx context.Context, principal model.Principal, lecture model.Lecture) (*model.Lecture, error)
	Enroll(ctx context.Context, principal model.Principal, courseID string) (*model.Enrollment, error)
}

// CourseService handles course CRUD with a cached listing. Course mutations
// publish events; the cache invalidation runs off the bus.
type CourseService struct {
	courses  CourseStore
	cache    *util.CacheService
	eventBus *util.EventBus
}

func NewCourseService(courses CourseStore, cache *util.CacheService, eventBus *util.EventBus) *CourseService {
	service := &CourseService{
		courses:  courses,
		cache:    cache,
		eventBus: eventBus,
	}

	eventBus.Subscribe(util.EventCourseCreated, service.handleCourseMutated)
	eventBus.Subscribe(util.EventLecturePublished, service.handleCourseMutated)

	return service
}

func (s *CourseService) handleCourseMutated(ctx context.Context, event util.Event) error {
	if err := s.cache.InvalidateCourses(ctx); err != nil {
		logger.Warn("Failed to invalidate course cache", zap.Error(err), zap.String("event", event.Type))
		return err
	}
	logger.Debug("Course cache invalidated", zap.String("event", event.Type))
	return nil
}

// ListCourses serves from cache when possible; a miss reads the database and
// best-effort refills the cache.
func (s *CourseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	if courses, found := s.cache.GetCourses(ctx); found {
		return courses, nil
	}

	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		logger.Error("Failed to list courses", zap.Error(err))
		return nil, errors.ErrDatabaseOp
	}

	if err := s.cache.SetCourses(ctx, courses); err != nil {
		logger.Warn("Failed to cache course listing", zap.Error(err))
	}
	return courses, nil
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.courses.GetCourse(ctx, id)
	if err != nil {
		if stderrors.Is(err, errors.ErrCourseNotFound) {
			return nil, errors.ErrCourseNotFound
		}
		logger.Error("Failed to get course", zap.Error(err), zap.String("courseID", id))
		return nil, errors.ErrDatabaseOp
	}
	return course, nil
}

func (s *CourseService) CreateCourse(ctx context.Context, principal model.Principal, course model.Course) (*model.Course, error) {
	if principal.Role != model.RoleTeacher && principal.Role != model.RoleAdmin {
		return nil, errors.Forbidden("role")
	}
	if strings.TrimSpace(course.Title) == "" {
		return nil, errors.ErrInvalidInput
	}

	course.ID = uuid.NewString()
	if principal.Role == model.RoleTeacher || course.TeacherID == "" {
		course.TeacherID = principal.UserID
	}

	if err := s.courses.CreateCourse(ctx, &course); err != nil {
		logger.Error("Failed to create course", zap.Error(err))
		return nil, errors.ErrDatabaseOp
	}

	// Handlers run after the response; detach them from request cancellation
	// so an invalidation in flight is never aborted mid-way.
	s.eventBus.Publish(context.WithoutCancel(ctx), util.EventCourseCreated, course)
	return &course, nil
}

func (s *CourseService) AddLecture(ctx context.Context, principal model.Principal, lecture model.Lecture) (*model.Lecture, error) {
	if strings.TrimSpace(lecture.Title) == "" || strings.TrimSpace(lecture.CourseID) == "" {
		return nil, errors.ErrInvalidInput
	}

	course, err := s.GetCourse(ctx, lecture.CourseID)
	if err != nil {
		return nil, err
	}
	if principal.Role != model.RoleAdmin && course.TeacherID != principal.UserID {
		return nil, errors.Forbidden("not-owner")
	}

	lecture.ID = uuid.NewString()
	if err := s.courses.CreateLecture(ctx, &lecture); err != nil {
		logger.Error("Failed to create lecture", zap.Error(err), zap.String("courseID", lecture.CourseID))
		return nil, errors.ErrDatabaseOp
	}

	if lecture.IsPublished {
		s.eventBus.Publish(context.WithoutCancel(ctx), util.EventLecturePublished, lecture)
	}
	return &lecture, nil
}

func (s *CourseService) Enroll(ctx context.Context, principal model.Principal, courseID string) (*model.Enrollment, error) {
	if principal.Role != model.RoleStudent {
		return nil, errors.Forbidden("role")
	}

	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment := &model.Enrollment{
		ID:         uuid.NewString(),
		UserID:     principal.UserID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.courses.Enroll(ctx, enrollment); err != nil {
		if stderrors.Is(err, errors.ErrEnrollConflict) {
			return nil, errors.ErrEnrollConflict
		}
		logger.Error("Failed to enroll", zap.Error(err), zap.String("courseID", courseID))
		return nil, errors.ErrDatabaseOp
	}

	s.eventBus.Publish(context.WithoutCancel(ctx), util.EventUserEnrolled, *enrollment)
	return enrollment, nil
}
