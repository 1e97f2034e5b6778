package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/validation"
	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/pkg/models"
)

type RecommendationHandler struct {
	recommendations services.RecommendationServiceInterface
	schemas         *validation.SchemaValidator
	logger          *logrus.Logger
}

func NewRecommendationHandler(recommendations services.RecommendationServiceInterface, schemas *validation.SchemaValidator, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		schemas:         schemas,
		logger:          logger,
	}
}

// Get answers GET /recommendations?strategy=&resourceId=&category=&limit=.
func (h *RecommendationHandler) Get(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "Invalid recommendation parameters", err)
		return
	}

	h.respond(c, req)
}

// Personalized answers POST /recommendations/personalized with the user's
// preferences in the body.
func (h *RecommendationHandler) Personalized(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}
	req.Strategy = models.StrategyPersonalized

	h.respond(c, req)
}

func (h *RecommendationHandler) respond(c *gin.Context, req models.RecommendationRequest) {
	recs, err := h.recommendations.Recommend(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "Failed to generate recommendations", err)
		return
	}

	respondQuery(c, recs, "", req.Limit)
}

func (h *RecommendationHandler) GetConfig(c *gin.Context) {
	respondOK(c, h.recommendations.Config())
}

// UpdateConfig applies a partial update; fields missing from the body keep
// their current value. The body must match the recommendation-config schema,
// so unknown fields are rejected.
func (h *RecommendationHandler) UpdateConfig(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}
	if err := h.schemas.ValidateRecommendationConfig(body).Err(); err != nil {
		respondBadRequest(c, "Invalid recommendation config", err)
		return
	}

	var update models.RecommendationConfigUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	cfg, err := h.recommendations.UpdateConfig(update)
	if err != nil {
		respondError(c, h.logger, "Invalid recommendation config", err)
		return
	}

	respondOK(c, cfg)
}

func (h *RecommendationHandler) ResetConfig(c *gin.Context) {
	respondOK(c, h.recommendations.ResetConfig())
}
