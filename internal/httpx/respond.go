package httpx

import "github.com/gin-gonic/gin"

// Envelope is the uniform JSON wrapper on every API response.
// swagger:model Envelope
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Page wraps paginated list data inside an Envelope.
// swagger:model Page
type Page struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

func NewPage(data interface{}, total, page, limit int) Page {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Page{Data: data, Total: total, Page: page, Limit: limit, TotalPages: pages}
}

func OK(c *gin.Context, data interface{}, message string) {
	c.JSON(200, Envelope{Success: true, Data: data, Message: message})
}

func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(201, Envelope{Success: true, Data: data, Message: message})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// AbortError stops the handler chain with an error envelope. Used by the
// short-circuiting middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}
