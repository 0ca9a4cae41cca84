package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTeachersSortedByName(t *testing.T) {
	app := setupApp(t)
	createTeacher(t, "Zawadi", "Math", "Algebra")
	createTeacher(t, "Amina", "Physics", "Mechanics")

	resp := doRequest(t, app, http.MethodGet, "/api/v1/teachers", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teachers []models.Teacher
	decodeBody(t, resp, &teachers)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Amina", teachers[0].Name)
	assert.Equal(t, "Zawadi", teachers[1].Name)
}

func TestGetTeacher(t *testing.T) {
	app := setupApp(t)
	teacher := createTeacher(t, "Dr. Mwangi", "Physics", "Mechanics")

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/teachers/%s", teacher.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Teacher
	decodeBody(t, resp, &got)
	assert.Equal(t, teacher.ID, got.ID)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/teachers/%s", uuid.New()), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTeacherRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	student := createUser(t, models.RoleStudent)
	admin := createUser(t, models.RoleAdmin)

	body := fiber.Map{"name": "Dr. New", "department": "Chemistry", "subject": "Organic Chemistry"}

	resp := doRequest(t, app, http.MethodPost, "/api/v1/teachers", tokenFor(t, student), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/teachers", tokenFor(t, admin), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Teacher
	decodeBody(t, resp, &created)
	assert.Equal(t, "Dr. New", created.Name)
	assert.Zero(t, created.AverageRating)
	assert.Zero(t, created.TotalFeedback)
}

func TestCreateTeacherValidation(t *testing.T) {
	app := setupApp(t)
	admin := createUser(t, models.RoleAdmin)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/teachers", tokenFor(t, admin), fiber.Map{
		"name": "Dr. Missing Fields",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTeacherProfileLeavesAggregatesAlone(t *testing.T) {
	app := setupApp(t)
	teacher := createTeacher(t, "Dr. Mwangi", "Physics", "Mechanics")
	staff := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)

	createFeedbackAt(t, teacher.ID, student.ID, 5, "", time.Now())
	recalcAll(t, teacher)

	resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/teachers/%s/profile", teacher.ID), tokenFor(t, staff), fiber.Map{
		"bio":          "20 years teaching classical mechanics.",
		"office_hours": "Tue 14:00-16:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := loadTeacher(t, teacher.ID)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "20 years teaching classical mechanics.", *got.Bio)
	assert.Equal(t, 1, got.TotalFeedback)
	assert.InDelta(t, 5.0, got.AverageRating, 1e-9)
}

func TestDeleteTeacherCascades(t *testing.T) {
	app := setupApp(t)
	teacher := createTeacher(t, "Dr. Mwangi", "Physics", "Mechanics")
	keep := createTeacher(t, "Dr. Keep", "Math", "Algebra")
	student := createUser(t, models.RoleStudent)
	admin := createUser(t, models.RoleAdmin)

	fb := createFeedbackAt(t, teacher.ID, student.ID, 4, "", time.Now())
	reply := models.Reply{FeedbackID: fb.ID, UserID: student.ID, UserName: student.FullName, UserRole: models.RoleStudent, Content: "thread"}
	require.NoError(t, database.DB.Create(&reply).Error)
	createDoubt(t, teacher.ID, student.ID, "open question", time.Now())
	require.NoError(t, database.DB.Create(&models.Favorite{StudentID: student.ID, TeacherID: teacher.ID}).Error)
	keepFb := createFeedbackAt(t, keep.ID, student.ID, 3, "", time.Now())

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/teachers/%s", teacher.ID), tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Teacher{}).Where("id = ?", teacher.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.Feedback{}).Where("teacher_id = ?", teacher.ID).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.Reply{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.Doubt{}).Count(&count)
	assert.Zero(t, count)
	database.DB.Model(&models.Favorite{}).Count(&count)
	assert.Zero(t, count)

	// Unrelated teacher data survives.
	database.DB.Model(&models.Feedback{}).Where("id = ?", keepFb.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
