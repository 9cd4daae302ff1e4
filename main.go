package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"iso-settlement-api/internal/config"
	"iso-settlement-api/internal/dal"
	"iso-settlement-api/internal/dao"
	"iso-settlement-api/internal/dispatch"
	"iso-settlement-api/internal/fee"
	"iso-settlement-api/internal/handler"
	"iso-settlement-api/internal/idgen"
	"iso-settlement-api/internal/logger"
	"iso-settlement-api/internal/middleware"
	"iso-settlement-api/internal/mq"
	"iso-settlement-api/internal/settlement"
	"iso-settlement-api/internal/solicitation"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitSettleDB()
	dal.InitRedis()
	dal.InitRabbitMQ()
	logger.Init()

	// idgen
	idgen.Init(1)

	// services
	feeSvc := fee.NewService(dao.NewMainDao(), dao.NewFeeDao(), fee.NewResolver(logger.Settlement))
	settleSvc := settlement.NewService(feeSvc, mq.PublishRejected)
	dispatcher := dispatch.NewDispatcher(mq.PublishOrderDispatched)
	solSvc := solicitation.NewService()

	// start consumers
	go mq.StartConsumers(settleSvc)

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetTrustedProxies([]string{"127.0.0.1", "192.168.0.0/16"})
	r.Use(middleware.Recover())

	v1 := r.Group("/api/v1", middleware.InternalAuth())
	{
		fh := handler.NewFeeHandler(feeSvc)
		v1.POST("/fees/resolve", fh.Resolve)
		v1.GET("/fees/merchant/:merchantId/tree", fh.Tree)

		sh := handler.NewSettlementHandler(settleSvc, dispatcher)
		v1.POST("/settlements/transactions", sh.ApplyBatch)
		v1.GET("/settlements/:id", sh.Get)
		v1.POST("/settlements/merchant/:id/dispatch", sh.Dispatch)

		solh := handler.NewSolicitationHandler(solSvc)
		v1.POST("/solicitations", solh.Create)
		v1.GET("/solicitations/:id", solh.Get)
		v1.POST("/solicitations/:id/request-documents", solh.RequestDocuments)
		v1.PUT("/solicitations/:id", solh.Update)
		v1.POST("/solicitations/:id/approve", solh.Approve)
		v1.POST("/solicitations/:id/complete", solh.Complete)
		v1.POST("/solicitations/:id/reject", solh.Reject)
		v1.POST("/solicitations/:id/promote", solh.Promote)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
