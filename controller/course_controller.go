// api/controller/course_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sage_errors "github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/model"
	"github.com/sagelms/sage/api/service"
	"github.com/sagelms/sage/api/util"
)

type CourseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// RegisterRoutes registers the API routes
func (cc *CourseController) RegisterRoutes(r *gin.RouterGroup) {
	courses := r.Group("/courses")
	{
		courses.GET("", cc.ListCourses)
		courses.GET("/:id", cc.GetCourse)
		courses.POST("", cc.CreateCourse)
		courses.POST("/:id/lectures", cc.AddLecture)
		courses.POST("/:id/enroll", cc.Enroll)
	}
}

// ListCourses endpoint
func (cc *CourseController) ListCourses(c *gin.Context) {
	courses, err := cc.courseService.ListCourses(c.Request.Context())
	if err != nil {
		respondWithOperationError(c, err, "Failed to list courses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": len(courses), "courses": courses})
}

// GetCourse endpoint
func (cc *CourseController) GetCourse(c *gin.Context) {
	course, err := cc.courseService.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithOperationError(c, err, "Failed to get course")
		return
	}
	c.JSON(http.StatusOK, course)
}

type createCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TeacherID   string `json:"teacher_id"`
}

// CreateCourse endpoint
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid course data", sage_errors.ErrInvalidInput)
		return
	}
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	course, err := cc.courseService.CreateCourse(c.Request.Context(), principal, model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TeacherID:   req.TeacherID,
	})
	if err != nil {
		respondWithOperationError(c, err, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, course)
}

type addLectureRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	OrderIndex  int    `json:"order_index"`
	IsPublished bool   `json:"is_published"`
}

// AddLecture endpoint
func (cc *CourseController) AddLecture(c *gin.Context) {
	var req addLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid lecture data", sage_errors.ErrInvalidInput)
		return
	}
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	lecture, err := cc.courseService.AddLecture(c.Request.Context(), principal, model.Lecture{
		CourseID:    c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		ContentType: req.ContentType,
		ContentURL:  req.ContentURL,
		OrderIndex:  req.OrderIndex,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		respondWithOperationError(c, err, "Failed to add lecture")
		return
	}

	c.JSON(http.StatusCreated, lecture)
}

// Enroll endpoint
func (cc *CourseController) Enroll(c *gin.Context) {
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	enrollment, err := cc.courseService.Enroll(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		if err == sage_errors.ErrEnrollConflict {
			util.RespondWithError(c, http.StatusConflict, "Already enrolled", err)
			return
		}
		respondWithOperationError(c, err, "Failed to enroll")
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}
