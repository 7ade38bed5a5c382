package main

import (
	"log"
	"net/http"

	"mrt/src/lib"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/payments/create-intent", func(ctx *gin.Context) {
			var body types.CreatePaymentIntentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pi, err := lib.CreatePaymentIntent(body.Amount, "usd", map[string]string{
				"source": "ticket_booking",
			})
			if err != nil {
				log.Printf("Error creating PaymentIntent: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"clientSecret":    pi.ClientSecret,
				"paymentIntentId": pi.ID,
			})
		}).
		GET("/payments/:id", func(ctx *gin.Context) {
			id := ctx.Param("id")
			pi, err := lib.RetrievePaymentIntent(id)
			if err != nil {
				log.Printf("Error retrieving PaymentIntent [%s]: %s\n", id, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"paymentIntentId": pi.ID,
				"status":          pi.Status,
				"amount":          pi.Amount,
			})
		})
	return g
}
