package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

// setupApp wires a fresh in-memory database and the full route surface for
// one test. Handlers read database.DB, so tests must not run in parallel.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.Feedback{},
		&models.Reply{},
		&models.Doubt{},
		&models.Favorite{},
		&models.FeedbackAnalysis{},
		&models.TeacherSummary{},
		&models.ChatHistory{},
	))
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.TeacherRoutes(app)
	routes.FeedbackRoutes(app)
	routes.DoubtRoutes(app)
	routes.FavoriteRoutes(app)
	routes.AnalyticsRoutes(app)
	routes.AdminRoutes(app)
	routes.AIRoutes(app)
	return app
}

var userSeq int

func createUser(t *testing.T, role string) models.User {
	t.Helper()
	userSeq++
	user := models.User{
		FullName: fmt.Sprintf("Test %s %d", role, userSeq),
		Email:    fmt.Sprintf("%s%d@example.com", role, userSeq),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTeacher(t *testing.T, name, department, subject string) models.Teacher {
	t.Helper()
	teacher := models.Teacher{Name: name, Department: department, Subject: subject}
	require.NoError(t, database.DB.Create(&teacher).Error)
	return teacher
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"name":    user.FullName,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func loadTeacher(t *testing.T, id uuid.UUID) models.Teacher {
	t.Helper()
	var teacher models.Teacher
	require.NoError(t, database.DB.First(&teacher, "id = ?", id).Error)
	return teacher
}

func createFeedbackAt(t *testing.T, teacherID, studentID uuid.UUID, rating int, comment string, at time.Time) models.Feedback {
	t.Helper()
	fb := models.Feedback{
		TeacherID:   teacherID,
		StudentID:   studentID,
		StudentName: "Seeded Student",
		Rating:      rating,
		Source:      models.FeedbackSourceWeb,
		CreatedAt:   at,
	}
	if comment != "" {
		fb.Comment = &comment
	}
	require.NoError(t, database.DB.Create(&fb).Error)
	return fb
}
