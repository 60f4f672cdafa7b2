package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dcm-project/kube-client-ext/internal/config"
	"github.com/dcm-project/kube-client-ext/internal/k8s"
	namespaceAPI "github.com/dcm-project/kube-client-ext/internal/namespace/api"
	namespaceServices "github.com/dcm-project/kube-client-ext/internal/namespace/services"
	"github.com/dcm-project/kube-client-ext/internal/resource/api"
	"github.com/dcm-project/kube-client-ext/internal/resource/services"
)

var version = "dev"

func main() {
	// Load configuration, flags override the environment
	cfg := config.LoadConfig()
	flags := newFlagSet(cfg)
	if err := flags.Parse(os.Args[1:]); err != nil {
		code := flagExitCode(err)
		if code != 0 {
			fmt.Printf("Invalid flags: %v\n", err)
		}
		os.Exit(code)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting kube inspector",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.Int("adminPort", cfg.Server.AdminPort),
	)

	// Initialize shared Kubernetes client
	k8sClient, err := k8s.NewClient(cfg.Kubernetes, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Kubernetes client", zap.Error(err))
	}

	// Initialize resource service
	resourceService := services.NewResourceService(k8sClient, cfg.Kubernetes.FieldManager, logger)

	// Initialize namespace service
	namespaceService := namespaceServices.NewNamespaceService(k8sClient, logger)

	// Setup HTTP routers
	resourceRouter := api.SetupRouter(resourceService, logger)
	namespaceHandler := namespaceAPI.NewHandler(namespaceService, logger)
	namespaceRouter := namespaceAPI.SetupRouter(namespaceHandler, logger)

	// Create HTTP servers
	resourceServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      resourceRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	namespaceServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.AdminPort),
		Handler:      namespaceRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start resource service in a goroutine
	go func() {
		logger.Info("Starting resource service HTTP server", zap.String("address", resourceServer.Addr))
		if err := resourceServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start resource server", zap.Error(err))
		}
	}()

	// Start namespace service in a goroutine
	go func() {
		logger.Info("Starting namespace service HTTP server", zap.String("address", namespaceServer.Addr))
		if err := namespaceServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start namespace server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown both servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down servers...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown both servers concurrently
	resourceErr := make(chan error, 1)
	namespaceErr := make(chan error, 1)

	go func() {
		resourceErr <- resourceServer.Shutdown(ctx)
	}()

	go func() {
		namespaceErr <- namespaceServer.Shutdown(ctx)
	}()

	// Wait for both shutdowns to complete
	var shutdownErrors []error
	for i := 0; i < 2; i++ {
		select {
		case err := <-resourceErr:
			if err != nil {
				logger.Error("Resource server forced to shutdown", zap.Error(err))
				shutdownErrors = append(shutdownErrors, err)
			}
		case err := <-namespaceErr:
			if err != nil {
				logger.Error("Namespace server forced to shutdown", zap.Error(err))
				shutdownErrors = append(shutdownErrors, err)
			}
		}
	}

	if len(shutdownErrors) > 0 {
		os.Exit(1)
	}

	logger.Info("Both servers gracefully stopped")
}

// initLogger initializes the logger based on configuration
func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config

	switch cfg.Level {
	case "debug":
		zapConfig = zap.NewDevelopmentConfig()
	case "info", "warn", "error":
		zapConfig = zap.NewProductionConfig()
	default:
		zapConfig = zap.NewProductionConfig()
	}

	// Set log level
	switch cfg.Level {
	case "debug":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Set output format
	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		zapConfig.Encoding = "json"
		zapConfig.EncoderConfig = zap.NewProductionEncoderConfig()
	}

	// Set output path
	if cfg.OutputPath != "" && cfg.OutputPath != "stdout" {
		zapConfig.OutputPaths = []string{cfg.OutputPath}
	}

	return zapConfig.Build()
}

// flagExitCode is the exit status for a flag parse error. A help request has
// already printed usage and exits cleanly.
func flagExitCode(err error) int {
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	return 2
}

// newFlagSet binds command line flags to cfg, using the loaded values as defaults
func newFlagSet(cfg *config.Config) *pflag.FlagSet {
	flags := pflag.NewFlagSet("kube-inspector", pflag.ContinueOnError)

	flags.IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "resource API port")
	flags.IntVar(&cfg.Server.AdminPort, "admin-port", cfg.Server.AdminPort, "namespace admin API port")
	flags.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "address to bind both servers to")
	flags.StringVar(&cfg.Kubernetes.ConfigPath, "kubeconfig", cfg.Kubernetes.ConfigPath, "path to the kubeconfig file")
	flags.StringVar(&cfg.Kubernetes.Context, "context", cfg.Kubernetes.Context, "kubeconfig context to use")
	flags.StringVarP(&cfg.Kubernetes.Namespace, "namespace", "n", cfg.Kubernetes.Namespace, "default namespace for unqualified requests")
	flags.BoolVar(&cfg.Kubernetes.InCluster, "in-cluster", cfg.Kubernetes.InCluster, "use the in-cluster service account")
	flags.StringVar(&cfg.Kubernetes.FieldManager, "field-manager", cfg.Kubernetes.FieldManager, "field manager recorded on writes")
	flags.BoolVar(&cfg.Kubernetes.EnableKubeVirt, "enable-kubevirt", cfg.Kubernetes.EnableKubeVirt, "serve KubeVirt virtual machine kinds")
	flags.BoolVar(&cfg.Kubernetes.EnableAggregator, "enable-aggregator", cfg.Kubernetes.EnableAggregator, "serve APIService kinds")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	flags.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format: json or console")

	return flags
}
