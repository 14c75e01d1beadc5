package main

import (
	"log"
	"net/http"

	"ems/src/db"
	"ems/src/middlewares"
	"ems/src/services"
	"ems/src/types"

	"github.com/gin-gonic/gin"
)

// Signup is public: attendees register without an account. Everything else
// under /registrations is organizer-facing and sits behind auth.
func publicRegistrationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/registrations", func(ctx *gin.Context) {
			var body types.CreateRegistrationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gdb := db.GetDb()
			reg, err := services.AdmitRegistration(gdb, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			var event = reg.TicketCategory.Event
			if event.ID == 0 {
				if ev, gerr := services.GetPublicEvent(gdb, reg.TicketCategory.EventID); gerr == nil {
					event = *ev
				}
			}
			go services.SendRegistrationConfirmation(reg, &event)
			ctx.JSON(http.StatusCreated, gin.H{"data": reg})
		})
	return g
}

func registrationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/registrations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			reg, err := services.GetRegistration(db.GetDb(), p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reg})
		}).
		PATCH("/registrations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateRegistrationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			reg, err := services.UpdateRegistration(db.GetDb(), p, params.ID, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reg})
		}).
		GET("/registrations/:id/pass", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			gdb := db.GetDb()
			reg, err := services.GetRegistration(gdb, p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			url, err := services.GenerateRegistrationPass(ctx, gdb, reg)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"url": url}})
		}).
		POST("/registrations/check-in", func(ctx *gin.Context) {
			var body types.CheckInRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			reference, err := services.DecodePassReference(body.Code)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			reg, err := services.CheckInRegistration(db.GetDb(), p, reference)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reg})
		})
	return g
}
