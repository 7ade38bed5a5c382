package main

import (
	"errors"
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ticketURIParams struct {
	TicketID string `uri:"ticketId" binding:"required"`
}

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tickets/:ticketId", func(ctx *gin.Context) {
			var params ticketURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Where(&models.Booking{TicketID: params.TicketID}).
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			payload := utils.RenderTicketPayload(&booking)
			ctx.JSON(http.StatusOK, gin.H{"data": payload})
		}).
		GET("/tickets/:ticketId/qr", func(ctx *gin.Context) {
			var params ticketURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var booking models.Booking
			db := db.GetDb()
			if err := db.
				Where(&models.Booking{TicketID: params.TicketID}).
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filepath, err := utils.SaveTicketQR(&booking)
			if err != nil {
				log.Printf("Error rendering QR for ticket [%s]: %s\n", params.TicketID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.FileAttachment(filepath, "eticket.jpeg")
		})
	return g
}
