package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/cashflow-server/api"
	"github.com/carson-networks/cashflow-server/internal/config"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/service"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("cashflow-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	if level, err := logrus.ParseLevel(envConfig.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	dbStorage := storage.NewStorage(envConfig)
	svc := service.NewService(dbStorage)

	delegator := operator.NewOperatorDelegator(dbStorage, 1)
	delegator.Start()
	defer delegator.Stop()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Operator: delegator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
