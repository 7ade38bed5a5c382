package main

import (
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications/:email", func(ctx *gin.Context) {
			var params types.EmailRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var notifications []models.Notification
			db := db.GetDb()
			if err := db.
				Where(&models.Notification{UserEmail: params.Email}).
				Order("timestamp desc").
				Find(&notifications).
				Error; err != nil {
				log.Printf("Error retrieving Notifications for %s: %s\n", params.Email, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		}).
		PUT("/notifications/read/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.
				Model(&models.Notification{}).
				Where(&models.Notification{ID: params.ID}).
				Update("read", true)
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func notificationAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/notifications", func(ctx *gin.Context) {
			var body types.AddNotificationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			notification := models.Notification{
				UserEmail:   body.Email,
				Title:       body.Title,
				Message:     body.Message,
				Alternative: body.Alternative,
			}
			db := db.GetDb()
			if err := db.Create(&notification).Error; err != nil {
				log.Printf("Error creating Notification: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": notification})
		}).
		POST("/notifications/broadcast", func(ctx *gin.Context) {
			var body types.BroadcastNotificationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var count int64
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var emails []string
				if err := tx.
					Model(&models.User{}).
					Pluck("email", &emails).
					Error; err != nil {
					return err
				}
				notifications := make([]models.Notification, 0, len(emails))
				for _, email := range emails {
					notifications = append(notifications, models.Notification{
						UserEmail:   email,
						Title:       body.Title,
						Message:     body.Message,
						Alternative: body.Alternative,
					})
				}
				if len(notifications) == 0 {
					return nil
				}
				if err := tx.CreateInBatches(notifications, 100).Error; err != nil {
					return err
				}
				count = int64(len(notifications))
				return nil
			})
			if err != nil {
				log.Printf("Error broadcasting Notification: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"count": count})
		})
	return g
}
