package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

type fakeImportQueue struct {
	queued   []tasks.ImportBooksTask
	status   backlite.TaskStatus
	addErr   error
	statusID string
}

func (f *fakeImportQueue) Enqueue(task backlite.Task) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.queued = append(f.queued, task.(tasks.ImportBooksTask))
	return "task-1", nil
}

func (f *fakeImportQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	f.statusID = taskID
	return f.status, nil
}

type fakeReports struct {
	paths []string
	err   error
}

func (f fakeReports) List() ([]string, error) { return f.paths, f.err }

func importsRouter(queue ImportQueue) *gin.Engine {
	return importsRouterWithReports(queue, nil)
}

func importsRouterWithReports(queue ImportQueue, reports ImportReports) *gin.Engine {
	controller := NewImportsController(queue, reports)
	router := gin.New()
	router.GET("/api/imports", controller.Reports)
	router.POST("/api/imports", controller.Enqueue)
	router.GET("/api/imports/:id", controller.Status)
	return router
}

func TestImportsController_Enqueue(t *testing.T) {
	t.Run("queues a valid document", func(t *testing.T) {
		queue := &fakeImportQueue{}
		body := `{"libros":[{"titulo":"Rayuela","autor":"Cortázar"},{"title":"Dune"}]}`

		w := doJSON(importsRouter(queue), http.MethodPost, "/api/imports", body)
		require.Equal(t, http.StatusAccepted, w.Code)

		var response struct {
			Message string               `json:"message"`
			Data    ImportQueuedResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "queued", response.Message)
		assert.Equal(t, "task-1", response.Data.TaskID)
		assert.Equal(t, 2, response.Data.Entries)

		require.Len(t, queue.queued, 1)
		assert.JSONEq(t, body, string(queue.queued[0].Document))
	})

	t.Run("rejects an invalid document without queueing", func(t *testing.T) {
		queue := &fakeImportQueue{}

		for _, body := range []string{`not json`, `"a string"`, ``} {
			w := doJSON(importsRouter(queue), http.MethodPost, "/api/imports", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
		assert.Empty(t, queue.queued)
	})

	t.Run("rejects an oversized document", func(t *testing.T) {
		previous := maxImportBytes
		maxImportBytes = 16
		t.Cleanup(func() { maxImportBytes = previous })

		queue := &fakeImportQueue{}
		w := doJSON(importsRouter(queue), http.MethodPost, "/api/imports", `[{"title":"Dune","author":"Frank Herbert"}]`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"error":"Import document too large"}`, w.Body.String())
		assert.Empty(t, queue.queued)
	})

	t.Run("queue failure", func(t *testing.T) {
		queue := &fakeImportQueue{addErr: errors.New("queue closed")}

		w := doJSON(importsRouter(queue), http.MethodPost, "/api/imports", `[]`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestImportsController_Status(t *testing.T) {
	t.Run("reports task status", func(t *testing.T) {
		queue := &fakeImportQueue{status: backlite.TaskStatusSuccess}

		w := doJSON(importsRouter(queue), http.MethodGet, "/api/imports/abc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"success","data":{"task_id":"abc","status":"success"}}`, w.Body.String())
		assert.Equal(t, "abc", queue.statusID)
	})

	t.Run("unknown task", func(t *testing.T) {
		queue := &fakeImportQueue{status: backlite.TaskStatusNotFound}

		w := doJSON(importsRouter(queue), http.MethodGet, "/api/imports/missing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Import not found"}`, w.Body.String())
	})
}

func TestImportsController_Reports(t *testing.T) {
	t.Run("lists report file names", func(t *testing.T) {
		reports := fakeReports{paths: []string{"audit/import-a.json", "audit/import-b.json"}}

		w := doJSON(importsRouterWithReports(&fakeImportQueue{}, reports), http.MethodGet, "/api/imports", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"success","data":{"reports":["import-a.json","import-b.json"]}}`, w.Body.String())
	})

	t.Run("no reports kept", func(t *testing.T) {
		w := doJSON(importsRouter(&fakeImportQueue{}), http.MethodGet, "/api/imports", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"success","data":{"reports":[]}}`, w.Body.String())
	})

	t.Run("listing failure", func(t *testing.T) {
		reports := fakeReports{err: errors.New("permission denied")}

		w := doJSON(importsRouterWithReports(&fakeImportQueue{}, reports), http.MethodGet, "/api/imports", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
