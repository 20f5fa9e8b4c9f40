package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
	"github.com/mrlokans/bookshelf/internal/web"
)

type UIController struct{}

func NewUIController() *UIController {
	return &UIController{}
}

// Index renders the catalog page. Books are fetched by the page itself.
func (controller *UIController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, gin.H{
		"CSRFToken": security.GetCSRFToken(c),
		"ReadOnly":  readonly.IsReadOnly(c),
	})
}
