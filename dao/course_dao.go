// api/dao/course_dao.go
package dao

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/model"
)

type CourseDAO struct {
	db *gorm.DB
}

func NewCourseDAO(db *gorm.DB) *CourseDAO {
	return &CourseDAO{db: db}
}

func (d *CourseDAO) CreateCourse(ctx context.Context, course *model.Course) error {
	if err := d.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (d *CourseDAO) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := d.db.WithContext(ctx).Where("id = ?", id).Take(&course).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &course, nil
}

func (d *CourseDAO) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := d.db.WithContext(ctx).Order("created_at DESC").Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (d *CourseDAO) CreateLecture(ctx context.Context, lecture *model.Lecture) error {
	if err := d.db.WithContext(ctx).Create(lecture).Error; err != nil {
		return fmt.Errorf("failed to create lecture: %w", err)
	}
	return nil
}

func (d *CourseDAO) Enroll(ctx context.Context, enrollment *model.Enrollment) error {
	err := d.db.WithContext(ctx).Create(enrollment).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrEnrollConflict
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

// IsEnrolled is an authorization fact consumed by the gate; the gate itself
// never queries.
func (d *CourseDAO) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return count > 0, nil
}

// PublishedLectures returns the published lectures of a course in display
// order; they are the context material for assistant chat.
func (d *CourseDAO) PublishedLectures(ctx context.Context, courseID string) ([]model.Lecture, error) {
	var lectures []model.Lecture
	err := d.db.WithContext(ctx).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Order("order_index").
		Find(&lectures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list published lectures: %w", err)
	}
	return lectures, nil
}

// LectureDetail carries a lecture together with the owning teacher of its
// course.
type LectureDetail struct {
	model.Lecture
	TeacherID string `json:"teacher_id"`
}

func (d *CourseDAO) GetLectureDetail(ctx context.Context, lectureID string) (*LectureDetail, error) {
	var detail LectureDetail
	err := d.db.WithContext(ctx).Table("lectures").
		Select("lectures.*, courses.teacher_id").
		Joins("JOIN courses ON courses.id = lectures.course_id").
		Where("lectures.id = ?", lectureID).
		Take(&detail).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("failed to get lecture: %w", err)
	}
	return &detail, nil
}

// SubmissionDetail carries a submission together with its assignment brief
// and the owning teacher of the course.
type SubmissionDetail struct {
	model.AssignmentSubmission
	AssignmentTitle       string `json:"assignment_title"`
	AssignmentDescription string `json:"assignment_description"`
	CourseID              string `json:"course_id"`
	TeacherID             string `json:"teacher_id"`
}

func (d *CourseDAO) GetSubmissionDetail(ctx context.Context, submissionID string) (*SubmissionDetail, error) {
	var detail SubmissionDetail
	err := d.db.WithContext(ctx).Table("assignment_submissions").
		Select("assignment_submissions.*, assignments.title AS assignment_title, assignments.description AS assignment_description, assignments.course_id, courses.teacher_id").
		Joins("JOIN assignments ON assignments.id = assignment_submissions.assignment_id").
		Joins("JOIN courses ON courses.id = assignments.course_id").
		Where("assignment_submissions.id = ?", submissionID).
		Take(&detail).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &detail, nil
}
