// api/service/course_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/kv"
	"github.com/sagelms/sage/api/model"
	"github.com/sagelms/sage/api/util"
)

type fakeCourseStore struct {
	courses     map[string]*model.Course
	lectures    []*model.Lecture
	enrollments map[string]bool // userID:courseID
	listCalls   int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:     make(map[string]*model.Course),
		enrollments: make(map[string]bool),
	}
}

func (f *fakeCourseStore) CreateCourse(_ context.Context, course *model.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) GetCourse(_ context.Context, id string) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) ListCourses(_ context.Context) ([]model.Course, error) {
	f.listCalls++
	var out []model.Course
	for _, course := range f.courses {
		out = append(out, *course)
	}
	return out, nil
}

func (f *fakeCourseStore) CreateLecture(_ context.Context, lecture *model.Lecture) error {
	f.lectures = append(f.lectures, lecture)
	return nil
}

func (f *fakeCourseStore) Enroll(_ context.Context, enrollment *model.Enrollment) error {
	key := enrollment.UserID + ":" + enrollment.CourseID
	if f.enrollments[key] {
		return apperrors.ErrEnrollConflict
	}
	f.enrollments[key] = true
	return nil
}

func newTestCourseService() (*CourseService, *fakeCourseStore, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	cache := util.NewCacheService(store, time.Hour)
	bus := util.NewEventBus()
	bus.Start(context.Background())

	courses := newFakeCourseStore()
	return NewCourseService(courses, cache, bus), courses, store
}

func TestListCoursesCachesListing(t *testing.T) {
	ctx := context.Background()
	svc, courses, _ := newTestCourseService()

	courses.courses["course-1"] = &model.Course{ID: "course-1", Title: "Go 101", TeacherID: "teacher-1"}

	first, err := svc.ListCourses(ctx)
	assert.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Equal(t, 1, courses.listCalls)

	// Second read is served from cache, not the store.
	second, err := svc.ListCourses(ctx)
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, courses.listCalls)
}

func TestCreateCourseInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, courses, store := newTestCourseService()

	teacher := model.Principal{UserID: "teacher-1", Role: model.RoleTeacher}
	_, err := svc.CreateCourse(ctx, teacher, model.Course{Title: "Go 101"})
	assert.NoError(t, err)

	_, err = svc.ListCourses(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, courses.listCalls)

	_, err = svc.CreateCourse(ctx, teacher, model.Course{Title: "Go 201"})
	assert.NoError(t, err)

	// The invalidation handler runs off the bus asynchronously.
	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)

	listing, err := svc.ListCourses(ctx)
	assert.NoError(t, err)
	assert.Len(t, listing, 2)
	assert.Equal(t, 2, courses.listCalls)
}

// cancelSensitiveStore aborts prefix deletes whose context is already
// cancelled, the way an in-flight redis operation does.
type cancelSensitiveStore struct {
	*kv.MemoryStore
}

func (s *cancelSensitiveStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryStore.DeleteByPrefix(ctx, prefix)
}

func TestInvalidationSurvivesRequestCancellation(t *testing.T) {
	store := &cancelSensitiveStore{MemoryStore: kv.NewMemoryStore()}
	cache := util.NewCacheService(store, time.Hour)
	bus := util.NewEventBus()
	bus.Start(context.Background())

	courses := newFakeCourseStore()
	svc := NewCourseService(courses, cache, bus)

	courses.courses["course-1"] = &model.Course{ID: "course-1", Title: "Go 101", TeacherID: "teacher-1"}
	listing, err := svc.ListCourses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, listing, 1)

	// The request context is cancelled by the time the invalidation handler
	// runs, as when the HTTP handler has already returned.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	owner := model.Principal{UserID: "teacher-1", Role: model.RoleTeacher}
	_, err = svc.CreateCourse(ctx, owner, model.Course{Title: "Go 201"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)

	listing, err = svc.ListCourses(context.Background())
	assert.NoError(t, err)
	assert.Len(t, listing, 2)
}

func TestCreateCourseRequiresTeacherRole(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestCourseService()

	studentPrincipal := model.Principal{UserID: "student-1", Role: model.RoleStudent}
	_, err := svc.CreateCourse(ctx, studentPrincipal, model.Course{Title: "Nope"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateCourseAssignsOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestCourseService()

	teacher := model.Principal{UserID: "teacher-1", Role: model.RoleTeacher}
	// A teacher always owns what they create, whatever the request claims.
	course, err := svc.CreateCourse(ctx, teacher, model.Course{Title: "Go 101", TeacherID: "someone-else"})
	assert.NoError(t, err)
	assert.Equal(t, "teacher-1", course.TeacherID)
	assert.NotEmpty(t, course.ID)
}

func TestAddLectureOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestCourseService()

	owner := model.Principal{UserID: "teacher-1", Role: model.RoleTeacher}
	course, err := svc.CreateCourse(ctx, owner, model.Course{Title: "Go 101"})
	assert.NoError(t, err)

	other := model.Principal{UserID: "teacher-2", Role: model.RoleTeacher}
	_, err = svc.AddLecture(ctx, other, model.Lecture{CourseID: course.ID, Title: "Intro"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	lecture, err := svc.AddLecture(ctx, owner, model.Lecture{CourseID: course.ID, Title: "Intro"})
	assert.NoError(t, err)
	assert.NotEmpty(t, lecture.ID)

	adminPrincipal := model.Principal{UserID: "admin-1", Role: model.RoleAdmin}
	_, err = svc.AddLecture(ctx, adminPrincipal, model.Lecture{CourseID: course.ID, Title: "Admin note"})
	assert.NoError(t, err)
}

func TestAddLectureUnknownCourse(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestCourseService()

	owner := model.Principal{UserID: "teacher-1", Role: model.RoleTeacher}
	_, err := svc.AddLecture(ctx, owner, model.Lecture{CourseID: "missing", Title: "Intro"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestCourseService()

	teacherPrincipal := model.Principal{UserID: "teacher-1", Role: model.RoleTeacher}
	course, err := svc.CreateCourse(ctx, teacherPrincipal, model.Course{Title: "Go 101"})
	assert.NoError(t, err)

	studentPrincipal := model.Principal{UserID: "student-1", Role: model.RoleStudent}
	enrollment, err := svc.Enroll(ctx, studentPrincipal, course.ID)
	assert.NoError(t, err)
	assert.Equal(t, "student-1", enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)

	// Enrolling twice is a conflict, teachers cannot enroll at all.
	_, err = svc.Enroll(ctx, studentPrincipal, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollConflict)

	_, err = svc.Enroll(ctx, teacherPrincipal, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Enroll(ctx, studentPrincipal, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
