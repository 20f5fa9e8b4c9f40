package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/exporters"
)

type SnapshotsController struct {
	snapshotter Snapshotter
}

func NewSnapshotsController(snapshotter Snapshotter) *SnapshotsController {
	return &SnapshotsController{snapshotter: snapshotter}
}

// SnapshotStatusResponse is the data of GET /api/snapshots.
type SnapshotStatusResponse struct {
	Scheduled bool                    `json:"scheduled"`
	NextRun   *time.Time              `json:"next_run"`
	Last      *exporters.ExportResult `json:"last"`
	LastError string                  `json:"last_error,omitempty"`
}

// Status handles GET /api/snapshots
func (sc *SnapshotsController) Status(c *gin.Context) {
	last, lastErr := sc.snapshotter.LastResult()

	response := SnapshotStatusResponse{
		Scheduled: sc.snapshotter.IsRunning(),
		NextRun:   sc.snapshotter.NextRunTime(),
		Last:      last,
	}
	if lastErr != nil {
		response.LastError = lastErr.Error()
	}
	respondOK(c, response)
}

// Create handles POST /api/snapshots
func (sc *SnapshotsController) Create(c *gin.Context) {
	result, err := sc.snapshotter.RunNow()
	if err != nil {
		respondStorageError(c, err, "snapshot")
		return
	}
	respondCreated(c, result)
}
