package main

import (
	"errors"
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func scheduleHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/schedules", func(ctx *gin.Context) {
			var schedules []models.Schedule
			db := db.GetDb()
			if err := db.
				Order("departure_time asc").
				Find(&schedules).
				Error; err != nil {
				log.Printf("Error retrieving Schedules: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedules, "count": len(schedules)})
		}).
		GET("/schedules/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var schedule models.Schedule
			db := db.GetDb()
			if err := db.
				Where(&models.Schedule{ID: params.ID}).
				First(&schedule).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedule})
		})
	return g
}

func scheduleAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/schedules", func(ctx *gin.Context) {
			var body types.CreateScheduleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			schedule := models.Schedule{
				TrainName:     body.TrainName,
				From:          body.From,
				To:            body.To,
				DepartureTime: body.DepartureTime,
				ArrivalTime:   body.ArrivalTime,
				Price:         *body.Price,
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&schedule).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				log.Printf("Error creating Schedule: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": schedule})
		}).
		PUT("/schedules/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateScheduleRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var schedule models.Schedule
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.Schedule{ID: params.ID}).
					First(&schedule).
					Error; err != nil {
					return err
				}
				updates := map[string]any{}
				if body.TrainName != nil {
					updates["train_name"] = *body.TrainName
				}
				if body.From != nil {
					updates["from"] = *body.From
				}
				if body.To != nil {
					updates["to"] = *body.To
				}
				if body.DepartureTime != nil {
					updates["departure_time"] = *body.DepartureTime
				}
				if body.ArrivalTime != nil {
					updates["arrival_time"] = *body.ArrivalTime
				}
				if body.Price != nil {
					updates["price"] = *body.Price
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.
					Model(&models.Schedule{}).
					Where(&models.Schedule{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.Where(&models.Schedule{ID: params.ID}).First(&schedule).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
					return
				}
				log.Printf("Error updating Schedule [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": schedule})
		}).
		DELETE("/schedules/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var schedule models.Schedule
			db := db.GetDb()
			db.Model(&models.Schedule{}).Where(&models.Schedule{ID: params.ID}).Find(&schedule)
			if schedule.ID < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
				return
			}
			// Bookings keep their denormalized route copy and stay valid.
			if err := db.Delete(&schedule).Error; err != nil {
				log.Printf("Error deleting Schedule [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
