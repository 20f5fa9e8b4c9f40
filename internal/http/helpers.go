package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse wraps a payload in the {message, data} envelope.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// DeleteResponse reports how many rows a delete removed.
type DeleteResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondStorageError logs err and passes its message to the client.
func respondStorageError(c *gin.Context, err error, context string) {
	log.Printf("Storage error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Message: "success", Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{Message: "success", Data: data})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// parseIDParam extracts a positive book id from the URL. Anything else can
// never match a stored book, so it is answered with 404.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, strconv.IntSize)
	if err != nil || id == 0 {
		respondNotFound(c, "Book")
		return 0, false
	}
	return uint(id), true
}
