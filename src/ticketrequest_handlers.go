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

func ticketRequestHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/ticket-requests", func(ctx *gin.Context) {
			var body types.CreateTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			request, err := services.CreateTicketRequest(db.GetDb(), p, body.TicketID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": request})
		}).
		GET("/ticket-requests", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			requests, meta, err := services.ListTicketRequests(db.GetDb(), p, query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "meta": meta})
		}).
		GET("/ticket-requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			request, err := services.GetTicketRequest(db.GetDb(), p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		}).
		PUT("/ticket-requests/:id/approve",
			middlewares.RequireRoles(types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var params types.SimpleRequestParams
				if err := ctx.ShouldBindUri(&params); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				var body types.ApproveTicketRequestBody
				if err := ctx.ShouldBindJSON(&body); err != nil {
					log.Printf("Error in validating request: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				request, err := services.ApproveTicketRequest(db.GetDb(), params.ID, body.TicketLink)
				if err != nil {
					ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": request})
			})
	return g
}
