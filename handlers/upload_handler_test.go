package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/edufeedback/edu_feedback/models"
	"github.com/edufeedback/edu_feedback/routes"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUploadSignatureRequiresTeacher(t *testing.T) {
	app := setupApp(t)
	routes.UploadRoutes(app)
	staff := createUser(t, models.RoleTeacher)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/uploads/signature", tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/uploads/signature?teacherId=%s", uuid.New()), tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadSignatureRejectsStudents(t *testing.T) {
	app := setupApp(t)
	routes.UploadRoutes(app)
	student := createUser(t, models.RoleStudent)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/uploads/signature", tokenFor(t, student), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
