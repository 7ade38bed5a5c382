package main

import (
	"errors"
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"
	"mrt/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.CreateBooking(ctx.Request.Context(), &body)
			if err != nil {
				if errors.Is(err, utils.ErrDuplicateBooking) {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				log.Printf("Error creating Booking: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/bookings/user/:email", func(ctx *gin.Context) {
			var params types.EmailRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var bookings []models.Booking
			db := db.GetDb()
			if err := db.
				Where(&models.Booking{UserEmail: params.Email}).
				Order("booking_time desc").
				Find(&bookings).
				Error; err != nil {
				log.Printf("Error retrieving Bookings for %s: %s\n", params.Email, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings = utils.DedupeBookings(bookings)
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}

func bookingAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var bookings []models.Booking
			db := db.GetDb()
			if err := db.
				Order("booking_time desc").
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.Booking{ID: params.ID}).
					First(&booking).
					Error; err != nil {
					return err
				}
				updates := map[string]any{}
				if body.UserName != nil {
					updates["user_name"] = *body.UserName
				}
				if body.Status != nil {
					updates["status"] = *body.Status
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.Where(&models.Booking{ID: params.ID}).First(&booking).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
					return
				}
				log.Printf("Error updating Booking [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			db := db.GetDb()
			db.Model(&models.Booking{}).Where(&models.Booking{ID: params.ID}).Find(&booking)
			if booking.ID < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
				return
			}
			// Hard delete so the passenger can rebook the same route.
			if err := db.Delete(&booking).Error; err != nil {
				log.Printf("Error deleting Booking [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
