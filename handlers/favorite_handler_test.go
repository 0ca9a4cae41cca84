package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/edufeedback/edu_feedback/database"
	"github.com/edufeedback/edu_feedback/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesLifecycle(t *testing.T) {
	app := setupApp(t)
	teacher := createTeacher(t, "Dr. Mwangi", "Physics", "Mechanics")
	student := createUser(t, models.RoleStudent)
	token := tokenFor(t, student)
	path := fmt.Sprintf("/api/v1/favorites/%s", teacher.ID)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ids []string
	decodeBody(t, resp, &ids)
	assert.Empty(t, ids)

	resp = doRequest(t, app, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Favoriting again is a no-op, not an error.
	resp = doRequest(t, app, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Favorite{}).Count(&count)
	assert.Equal(t, int64(1), count)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &ids)
	require.Len(t, ids, 1)
	assert.Equal(t, teacher.ID.String(), ids[0])

	resp = doRequest(t, app, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Removing a non-favorite succeeds too.
	resp = doRequest(t, app, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &ids)
	assert.Empty(t, ids)
}

func TestAddFavoriteUnknownTeacher(t *testing.T) {
	app := setupApp(t)
	student := createUser(t, models.RoleStudent)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/v1/favorites/%s", uuid.New()), tokenFor(t, student), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFavoritesAreScopedToStudent(t *testing.T) {
	app := setupApp(t)
	teacher := createTeacher(t, "Dr. Mwangi", "Physics", "Mechanics")
	s1 := createUser(t, models.RoleStudent)
	s2 := createUser(t, models.RoleStudent)

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/v1/favorites/%s", teacher.ID), tokenFor(t, s1), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/favorites", tokenFor(t, s2), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ids []string
	decodeBody(t, resp, &ids)
	assert.Empty(t, ids)
}
