package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mailbridge/mailbridge/internal/auth"
	"github.com/mailbridge/mailbridge/internal/controllers"
	"github.com/mailbridge/mailbridge/internal/managers"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/pkg/domain"
	"github.com/mailbridge/mailbridge/pkg/expressions"

	resendintegration "github.com/mailbridge/mailbridge/pkg/integrations/resend"
)

func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the executor service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			return runStart()
		},
	}

	return cmd
}

func runStart() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configManager, err := domain.NewConfigManager()
	if err != nil {
		return err
	}

	config, err := configManager.GetConfig(ctx)
	if err != nil {
		return err
	}

	if config.ExecutorID == "" {
		config.ExecutorID = xid.New().String()
	}

	if config.InstanceID == "" {
		config.InstanceID = config.ExecutorID
	}

	credentialManager, err := managers.NewFileCredentialManager(config.CredentialsFile)
	if err != nil {
		return err
	}

	routeManager, err := managers.NewWebhookRouteManager(config.RoutesFile)
	if err != nil {
		return err
	}

	nodeStore, err := managers.NewNodeStore(config.NodesFile)
	if err != nil {
		return err
	}

	signer, err := auth.NewResumeURLSigner(config.PublicURL, config.ResumeSigningSecret)
	if err != nil {
		return err
	}

	waitManager := managers.NewExecutionWaitManager()
	dispatcher := managers.NewExecutionDispatcher()

	deps := domain.IntegrationDeps{
		ParameterBinder:           expressions.NewStaticBinder(expressions.StaticBinderOptions{Logger: log.Logger}),
		ExecutorCredentialManager: credentialManager,
		ResumeURLSigner:           signer,
		ExecutionSuspender:        waitManager,
		AttributionInstanceID:     config.InstanceID,
	}

	selector := domain.NewIntegrationSelector()
	selector.RegisterCreator(domain.IntegrationType_Resend, resendintegration.NewResendIntegrationCreator(deps))
	selector.RegisterWebhookHandler(domain.IntegrationType_Resend, resendintegration.NewResendTrigger(deps))
	selector.RegisterConnectionTester(domain.IntegrationType_Resend, resendintegration.NewResendConnectionTester(deps))

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		ExecutorController: controllers.NewExecutorController(controllers.ExecutorControllerDependencies{
			Selector:          selector,
			CredentialManager: credentialManager,
			Nodes:             nodeStore,
		}),
		TriggerController: controllers.NewTriggerController(controllers.TriggerControllerDependencies{
			Selector: selector,
			Routes:   routeManager,
			Starter:  dispatcher,
		}),
		CallbackController: controllers.NewCallbackController(controllers.CallbackControllerDependencies{
			Signer:  signer,
			Resumer: waitManager,
			Nodes:   nodeStore,
		}),
		AdminController: controllers.NewAdminController(controllers.AdminControllerDependencies{
			Routes:      routeManager,
			Credentials: credentialManager,
			Dispatcher:  dispatcher,
		}),
	})

	go func() {
		<-ctx.Done()

		log.Info().Msg("Shutting down executor service")

		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shut down http server")
		}
	}()

	log.Info().
		Str("executor_id", config.ExecutorID).
		Str("address", config.Address).
		Str("public_url", config.PublicURL).
		Msg("Starting executor service")

	return app.Listen(config.Address)
}
