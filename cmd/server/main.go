package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	apihttp "github.com/ogurasousui/hr-org-service/internal/adapters/http"
	"github.com/ogurasousui/hr-org-service/internal/adapters/repository/postgres"
	"github.com/ogurasousui/hr-org-service/internal/core/authz"
	"github.com/ogurasousui/hr-org-service/internal/core/department"
	"github.com/ogurasousui/hr-org-service/internal/core/directory"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
	"github.com/ogurasousui/hr-org-service/internal/platform/config"
	pg "github.com/ogurasousui/hr-org-service/internal/platform/db/postgres"
	"github.com/ogurasousui/hr-org-service/internal/platform/server"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	statusRoles, err := parseStatusRoles(cfg.Authz.EmployeeStatusRoles)
	if err != nil {
		logger.WithError(err).Fatal("invalid authz.employee_status_roles")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize database pool")
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	employeeSvc := employee.NewService(employeeRepo, nil, txManager, statusRoles)

	departmentRepo := postgres.NewDepartmentRepository(dbPool)
	departmentSvc := department.NewService(departmentRepo, nil, txManager)

	directoryRepo := postgres.NewDirectoryRepository(dbPool)
	directorySvc := directory.NewService(directoryRepo, txManager)

	router := apihttp.NewRouter(logger, employeeSvc, departmentSvc, directorySvc)

	httpServer := server.New(
		cfg.Server.ListenAddr,
		router,
		server.WithLogger(logger),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)

	if err := httpServer.Run(ctx); err != nil {
		logger.WithError(err).Fatal("server stopped with error")
	}
}

func parseStatusRoles(raw []string) ([]authz.Role, error) {
	roles := make([]authz.Role, 0, len(raw))
	for _, value := range raw {
		role, err := authz.ParseRole(value)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}
