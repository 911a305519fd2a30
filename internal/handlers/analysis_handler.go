package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

// AnalyzeDiagnosis runs the classifier on an uploaded scan. The request
// context is passed through, so a dropped connection cancels the work.
func (h *Handler) AnalyzeDiagnosis(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.Classifier.Classify(c.Request.Context(), req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeFluid runs the fluid quantifier on an uploaded scan.
func (h *Handler) AnalyzeFluid(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.Fluid.Quantify(c.Request.Context(), req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeEnhance runs the enhancer on an uploaded scan.
func (h *Handler) AnalyzeEnhance(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.Enhancer.Enhance(c.Request.Context(), req.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
