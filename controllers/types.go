package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash is a one-shot user-facing notice rendered on the next page.
type Flash struct {
	Level   string
	Message string
}

type PaginationMeta struct {
	CurrentPage int
	PageSize    int
	TotalItems  int64
	TotalPages  int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

func paginate(page, pageSize int, total int64) PaginationMeta {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	return PaginationMeta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
		PrevPage:    page - 1,
		NextPage:    page + 1,
	}
}

func addFlash(c *gin.Context, level, message string) {
	session := sessions.Default(c)
	session.AddFlash(level + "|" + message)
	// A failed cookie write loses the notice but never the flow.
	_ = session.Save()
}

// takeFlashes drains pending flash messages for rendering.
func takeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	flashes := make([]Flash, 0, len(raw))
	for _, entry := range raw {
		text, ok := entry.(string)
		if !ok {
			continue
		}
		level, message, found := strings.Cut(text, "|")
		if !found {
			level, message = "info", text
		}
		flashes = append(flashes, Flash{Level: level, Message: message})
	}
	return flashes
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error.html", gin.H{
		"Code":    http.StatusNotFound,
		"Message": "The page you are looking for does not exist.",
	})
	c.Abort()
}

func serverError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Code":    http.StatusInternalServerError,
		"Message": "Something went wrong. Please try again later.",
	})
	c.Abort()
}
