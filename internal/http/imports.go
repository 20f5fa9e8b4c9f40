package http

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/importers"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

const msgImportTooLarge = "Import document too large"

// maxImportBytes caps the size of an uploaded import document.
var maxImportBytes int64 = 10 << 20

// ImportsController queues uploaded JSON documents for the importer.
type ImportsController struct {
	queue   ImportQueue
	reports ImportReports
}

// NewImportsController creates the imports controller. reports may be nil
// when import reports are not kept.
func NewImportsController(queue ImportQueue, reports ImportReports) *ImportsController {
	return &ImportsController{queue: queue, reports: reports}
}

// ImportQueuedResponse is the data of a 202 from POST /api/imports.
type ImportQueuedResponse struct {
	TaskID  string          `json:"task_id"`
	Shape   importers.Shape `json:"shape"`
	Entries int             `json:"entries"`
}

// ImportStatusResponse is the data of GET /api/imports/:id.
type ImportStatusResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// ImportReportsResponse is the data of GET /api/imports.
type ImportReportsResponse struct {
	Reports []string `json:"reports"`
}

// Reports handles GET /api/imports: the file names of stored import reports,
// oldest first.
func (ic *ImportsController) Reports(c *gin.Context) {
	names := make([]string, 0)
	if ic.reports != nil {
		paths, err := ic.reports.List()
		if err != nil {
			respondStorageError(c, err, "list import reports")
			return
		}
		for _, path := range paths {
			names = append(names, filepath.Base(path))
		}
	}
	respondOK(c, ImportReportsResponse{Reports: names})
}

// Enqueue handles POST /api/imports. The document is validated before it is
// queued so a broken upload fails immediately.
func (ic *ImportsController) Enqueue(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	body, err := c.GetRawData()
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: msgImportTooLarge})
		return
	}
	if err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}

	doc, err := importers.ParseDocument(body)
	if errors.Is(err, importers.ErrInvalidDocument) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		respondBadRequest(c, msgInvalidBody)
		return
	}

	taskID, err := ic.queue.Enqueue(tasks.ImportBooksTask{
		Source:   "api:" + c.ClientIP(),
		Document: body,
	})
	if err != nil {
		respondStorageError(c, err, "queue import")
		return
	}

	respondAccepted(c, "queued", ImportQueuedResponse{
		TaskID:  taskID,
		Shape:   doc.Shape,
		Entries: len(doc.Entries),
	})
}

// Status handles GET /api/imports/:id
func (ic *ImportsController) Status(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ic.queue.Status(ctx, taskID)
	if err != nil {
		respondStorageError(c, err, "import status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "Import")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "success",
		Data:    ImportStatusResponse{TaskID: taskID, Status: tasks.StatusName(status)},
	})
}
