package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrail/tasktrail-api/internal/mocks"
	"github.com/tasktrail/tasktrail-api/internal/service"
)

// newTestRouter mounts the task handler the way the server router does.
func newTestRouter(t *testing.T, taskStore *mocks.MockTaskStore) http.Handler {
	t.Helper()

	taskService, err := service.NewTaskService(taskStore, nil, slog.Default())
	require.NoError(t, err)

	handler := NewTaskHandler(taskService, slog.Default())

	r := chi.NewRouter()
	r.Route("/api/v1/tasks", func(r chi.Router) {
		r.Post("/", handler.CreateTask)
		r.Get("/", handler.ListTasks)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetTask)
			r.Put("/", handler.UpdateTask)
			r.Delete("/", handler.DeleteTask)
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeTask(t *testing.T, rec *httptest.ResponseRecorder) TaskResponse {
	t.Helper()
	var resp TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func createTask(t *testing.T, router http.Handler, title, description string) TaskResponse {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{
		Title:       title,
		Description: description,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeTask(t, rec)
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Run("valid request returns 201 with task", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{
			Title:       "Buy milk",
			Description: "Two liters",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		resp := decodeTask(t, rec)
		assert.Equal(t, "Buy milk", resp.Title)
		assert.Equal(t, "Two liters", resp.Description)
		assert.Equal(t, "created", resp.Status)
		_, err := uuid.Parse(resp.ID)
		assert.NoError(t, err)
		assert.False(t, resp.CreatedAt.IsZero())
		assert.False(t, resp.UpdatedAt.IsZero())
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", map[string]string{
			"description": "no title supplied",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing description returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", map[string]string{
			"title": "no description supplied",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure returns 500 with generic message", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		taskStore.CreateError = errors.New("pq: connection refused host=10.0.0.5")
		router := newTestRouter(t, taskStore)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/tasks", CreateTaskRequest{
			Title:       "title",
			Description: "description",
		})

		require.Equal(t, http.StatusInternalServerError, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to create task", resp["error"])
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})
}

func TestListTasksEndpoint(t *testing.T) {
	t.Run("empty store returns empty array", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("returns tasks in insertion order", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		a := createTask(t, router, "A", "first")
		b := createTask(t, router, "B", "second")

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, a.ID, resp[0].ID)
		assert.Equal(t, b.ID, resp[1].ID)
	})

	t.Run("skip and limit window the result", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		createTask(t, router, "A", "first")
		b := createTask(t, router, "B", "second")
		c := createTask(t, router, "C", "third")

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks?skip=1&limit=2", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, b.ID, resp[0].ID)
		assert.Equal(t, c.ID, resp[1].ID)
	})

	t.Run("negative skip returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks?skip=-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric limit returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks?limit=ten", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage failure returns 500", func(t *testing.T) {
		taskStore := mocks.NewMockTaskStore()
		taskStore.ListError = errors.New("connection reset")
		router := newTestRouter(t, taskStore)

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetTaskEndpoint(t *testing.T) {
	t.Run("existing task returns 200", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "title", "description")

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeTask(t, rec)
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, created.Title, resp.Title)
	})

	t.Run("unknown id returns 404 with message", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+uuid.NewString(), nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Task not found", resp["error"])
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodGet, "/api/v1/tasks/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateTaskEndpoint(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "original", "original description")

		rec := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, UpdateTaskRequest{
			Status: strPtr("in_progress"),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeTask(t, rec)
		assert.Equal(t, "original", resp.Title)
		assert.Equal(t, "original description", resp.Description)
		assert.Equal(t, "in_progress", resp.Status)
	})

	t.Run("full update changes all fields", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "original", "original description")

		rec := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, UpdateTaskRequest{
			Title:       strPtr("renamed"),
			Description: strPtr("rewritten"),
			Status:      strPtr("completed"),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeTask(t, rec)
		assert.Equal(t, "renamed", resp.Title)
		assert.Equal(t, "rewritten", resp.Description)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("empty body succeeds and changes nothing", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "title", "description")

		rec := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeTask(t, rec)
		assert.Equal(t, created.Title, resp.Title)
		assert.Equal(t, created.Description, resp.Description)
		assert.Equal(t, created.Status, resp.Status)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+uuid.NewString(), UpdateTaskRequest{
			Title: strPtr("renamed"),
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status value returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "title", "description")

		rec := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, map[string]string{
			"status": "archived",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("overlong title returns 400", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "title", "description")

		long := make([]byte, 201)
		for i := range long {
			long[i] = 'x'
		}
		rec := doJSON(t, router, http.MethodPut, "/api/v1/tasks/"+created.ID, map[string]string{
			"title": string(long),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteTaskEndpoint(t *testing.T) {
	t.Run("delete returns 204 and task is gone", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "title", "description")

		rec := doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())

		rec = doJSON(t, router, http.MethodGet, "/api/v1/tasks/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("second delete returns 404", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		created := createTask(t, router, "title", "description")

		rec := doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, router, http.MethodDelete, "/api/v1/tasks/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router := newTestRouter(t, mocks.NewMockTaskStore())

		rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%s", uuid.NewString()), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
