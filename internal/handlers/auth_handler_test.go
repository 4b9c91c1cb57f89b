package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ClinicaVitaBR/crm-followup/internal/config"
	"github.com/ClinicaVitaBR/crm-followup/internal/models"
)

func newAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	h := NewAuthHandler(db, &config.Config{JWTSecret: "test-secret"})

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	return r, db
}

func TestRegister_RejectsUnresolvableEmailDomain(t *testing.T) {
	r, db := newAuthTest(t)

	// .invalid is reserved and never resolves (RFC 2606)
	body := `{"name":"Ana","email":"ana@clinica.invalid","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_email_domain")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
