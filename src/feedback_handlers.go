package main

import (
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
)

func feedbackHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/feedback", func(ctx *gin.Context) {
			var body types.CreateFeedbackRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			feedback := models.Feedback{
				Rating:  body.Rating,
				Comment: body.Comment,
			}
			db := db.GetDb()
			if err := db.Create(&feedback).Error; err != nil {
				log.Printf("Error creating Feedback: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": feedback})
		})
	return g
}

func feedbackAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/feedback", func(ctx *gin.Context) {
			var feedback []models.Feedback
			db := db.GetDb()
			if err := db.
				Order("created_at desc").
				Find(&feedback).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var avg float64
			if len(feedback) > 0 {
				var sum int
				for _, f := range feedback {
					sum += f.Rating
				}
				avg = float64(sum) / float64(len(feedback))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": feedback, "count": len(feedback), "averageRating": avg})
		})
	return g
}
