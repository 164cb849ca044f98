// api/controller/ai_controller.go
package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	sage_errors "github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/service"
	"github.com/sagelms/sage/api/util"
)

type AIController struct {
	aiService service.IAIService
}

func NewAIController(aiService service.IAIService) *AIController {
	return &AIController{
		aiService: aiService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AIController) RegisterRoutes(r *gin.RouterGroup) {
	ai := r.Group("/ai")
	{
		ai.POST("/chat", ac.Chat)
		ai.POST("/generate-quiz", ac.GenerateQuiz)
		ai.POST("/extract-concepts", ac.ExtractConcepts)
		ai.POST("/generate-feedback", ac.GenerateFeedback)
		ai.GET("/chat-history", ac.ChatHistory)
	}
}

type chatRequest struct {
	Query    string `json:"query" binding:"required"`
	CourseID string `json:"course_id"`
}

// Chat endpoint
func (ac *AIController) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Query is required", sage_errors.ErrInvalidInput)
		return
	}
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	response, err := ac.aiService.Chat(c.Request.Context(), principal, req.Query, req.CourseID)
	if err != nil {
		respondWithOperationError(c, err, "Failed to process AI chat request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

type generateQuizRequest struct {
	LectureID    string `json:"lecture_id" binding:"required"`
	NumQuestions int    `json:"num_questions"`
}

// GenerateQuiz endpoint
func (ac *AIController) GenerateQuiz(c *gin.Context) {
	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Lecture id is required", sage_errors.ErrInvalidInput)
		return
	}
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	questions, err := ac.aiService.GenerateQuiz(c.Request.Context(), principal, req.LectureID, req.NumQuestions)
	if err != nil {
		respondWithOperationError(c, err, "Failed to generate quiz questions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

type extractConceptsRequest struct {
	LectureID string `json:"lecture_id" binding:"required"`
}

// ExtractConcepts endpoint
func (ac *AIController) ExtractConcepts(c *gin.Context) {
	var req extractConceptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Lecture id is required", sage_errors.ErrInvalidInput)
		return
	}
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	concepts, err := ac.aiService.ExtractConcepts(c.Request.Context(), principal, req.LectureID)
	if err != nil {
		respondWithOperationError(c, err, "Failed to extract key concepts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"concepts": concepts})
}

type generateFeedbackRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
}

// GenerateFeedback endpoint
func (ac *AIController) GenerateFeedback(c *gin.Context) {
	var req generateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Submission id is required", sage_errors.ErrInvalidInput)
		return
	}
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	feedback, err := ac.aiService.GenerateFeedback(c.Request.Context(), principal, req.SubmissionID)
	if err != nil {
		respondWithOperationError(c, err, "Failed to generate feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

// ChatHistory endpoint
func (ac *AIController) ChatHistory(c *gin.Context) {
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := ac.aiService.ChatHistory(c.Request.Context(), principal, limit, offset)
	if err != nil {
		respondWithOperationError(c, err, "Failed to fetch chat history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": len(history), "chat_history": history})
}
