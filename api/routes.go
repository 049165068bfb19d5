package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/cashflow-server/internal/handlers/v1/actual"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/forecast"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/scenario"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/status"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/template"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Cashflow Server", "1.0.0"))
	humaAPI.UseMiddleware(logging.HumaMiddleware(r.Logger))

	forecastHandler := forecast.NewRunForecastHandler(r.Service.Forecast)
	forecastHandler.Register(humaAPI)
	compareHandler := forecast.NewCompareForecastHandler(r.Service.Forecast)
	compareHandler.Register(humaAPI)

	recordActualHandler := actual.NewRecordActualHandler(r.Operator)
	recordActualHandler.Register(humaAPI)
	deleteActualHandler := actual.NewDeleteActualHandler(r.Operator)
	deleteActualHandler.Register(humaAPI)
	listActualsHandler := actual.NewListActualsHandler(r.Service.Actual)
	listActualsHandler.Register(humaAPI)

	upsertTemplateHandler := template.NewUpsertTemplateHandler(r.Operator)
	upsertTemplateHandler.Register(humaAPI)
	listTemplatesHandler := template.NewListTemplatesHandler(r.Service.Template)
	listTemplatesHandler.Register(humaAPI)

	upsertScenarioHandler := scenario.NewUpsertScenarioHandler(r.Operator)
	upsertScenarioHandler.Register(humaAPI)
	listScenariosHandler := scenario.NewListScenariosHandler(r.Service.Scenario)
	listScenariosHandler.Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
