// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthv1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/canonical/org-provisioning-service/internal/authorization"
	"github.com/canonical/org-provisioning-service/internal/config"
	"github.com/canonical/org-provisioning-service/internal/db"
	"github.com/canonical/org-provisioning-service/internal/kratos"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/mail"
	"github.com/canonical/org-provisioning-service/internal/monitoring/prometheus"
	"github.com/canonical/org-provisioning-service/internal/openfga"
	"github.com/canonical/org-provisioning-service/internal/storage"
	"github.com/canonical/org-provisioning-service/internal/tracing"
	"github.com/canonical/org-provisioning-service/pkg/authentication"
	"github.com/canonical/org-provisioning-service/pkg/linking"
	"github.com/canonical/org-provisioning-service/pkg/provisioning"
	"github.com/canonical/org-provisioning-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("org-provisioning-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	var authorizer *authorization.Authorizer
	if specs.AuthorizationEnabled {
		ofga := openfga.NewClient(
			openfga.NewConfig(
				specs.OpenfgaApiScheme,
				specs.OpenfgaApiHost,
				specs.OpenfgaStoreId,
				specs.OpenfgaApiToken,
				specs.OpenfgaModelId,
				specs.Debug,
				tracer,
				monitor,
				logger,
			),
		)
		authorizer = authorization.NewAuthorizer(
			ofga,
			specs.AdminGroup,
			tracer,
			monitor,
			logger,
		)
		logger.Info("Authorization is enabled")
		if authorizer.ValidateModel(context.Background()) != nil {
			panic("Invalid authorization model provided")
		}
	} else {
		authorizer = authorization.NewAuthorizer(
			openfga.NewNoopClient(tracer, monitor, logger),
			specs.AdminGroup,
			tracer,
			monitor,
			logger,
		)
		logger.Info("Using noop authorizer")
	}

	var authenticationMiddleware web.Middleware
	if specs.AuthenticationEnabled {
		policy := authentication.AccessPolicy{
			Subjects: specs.AuthenticationAllowedSubjects,
			Scope:    specs.AuthenticationRequiredScope,
		}

		verifier, err := authentication.NewJWTAuthenticator(
			context.Background(),
			specs.AuthenticationIssuer,
			specs.AuthenticationJwksURL,
			policy,
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create authenticator: %v", err)
		}

		if specs.AuthorizationEnabled {
			policy.UnprivilegedSubjects(context.Background(), authorizer, logger)
		}

		authenticationMiddleware = authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate()
	} else {
		logger.Info("Authentication is disabled")
	}

	kratosClient := kratos.NewClient(
		specs.KratosAdminURL,
		tracer,
		monitor,
		logger,
	)

	var sender mail.SenderInterface
	if specs.SMTPHost != "" {
		sender = mail.NewSMTPSender(
			specs.SMTPHost,
			specs.SMTPPort,
			specs.SMTPUsername,
			specs.SMTPPassword,
			specs.MailFrom,
			tracer,
			logger,
		)
	} else {
		logger.Info("SMTP host not set, welcome emails will be logged only")
		sender = mail.NewNoopSender(logger)
	}
	notifier := mail.NewNotifier(sender, specs.NotificationMaxRetries, tracer, monitor, logger)

	provisioningService := provisioning.NewService(
		s,
		s,
		s,
		s,
		kratosClient,
		dbClient,
		authorizer,
		notifier,
		specs.InvitationLifetime,
		tracer,
		monitor,
		logger,
	)

	linkingService := linking.NewService(
		s,
		kratosClient,
		authorizer,
		tracer,
		monitor,
		logger,
	)

	reconciler := provisioning.NewReconciler(s, specs.ReconcileInterval, tracer, monitor, logger)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go reconciler.Run(bgCtx)

	// Start gRPC health server
	lis, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%v", specs.GRPCPort))
	if err != nil {
		logger.Fatalf("failed to listen on grpc port: %v", err)
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	healthv1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthv1.HealthCheckResponse_SERVING)

	go func() {
		logger.Infof("Starting gRPC health server on port %v", specs.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("failed to serve gRPC: %v", err)
		}
	}()

	router := web.NewRouter(
		provisioningService,
		linkingService,
		authorizer,
		authenticationMiddleware,
		specs.WebhookAPIKey,
		dbClient,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	healthServer.Shutdown()
	stopBackground()

	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}
	grpcServer.GracefulStop()

	// pending welcome emails are flushed before the process exits
	notifier.Wait()

	return serverError
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
