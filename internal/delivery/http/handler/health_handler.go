package handler

import (
	"net/http"

	"docspot-odonto/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler serves the liveness and store connectivity endpoints.
type HealthHandler struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewHealthHandler(db *gorm.DB, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Backend DocSpot Odonto is running!",
	})
}

// TestDB runs a trivial query against the store to verify connectivity.
func (h *HealthHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	if err := h.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		h.log.Errorf("Database connectivity check failed: %+v", err)
		response.InternalServerError(w, "Database connection failed")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Database connection successful!",
	})
}
