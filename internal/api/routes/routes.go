package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yoockh/mockview/internal/api/handlers"
)

type Deps struct {
	Interview  *handlers.InterviewHandler
	Transcript *handlers.TranscriptHandler // nil when Postgres is not configured
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/interview/start", d.Interview.Start)
	r.GET("/interview/:session_id/prompt", d.Interview.Prompt)
	r.POST("/interview/:session_id/answer", d.Interview.SubmitAnswer)
	r.GET("/interview/:session_id/result", d.Interview.Result)

	if d.Transcript != nil {
		r.GET("/interview/:session_id/transcript", d.Transcript.ListBySession)
	}
}
