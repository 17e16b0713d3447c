// Package cli is the cobra command tree of the motoparts storefront client.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"motoparts/internal/api"
	"motoparts/internal/config"
	"motoparts/internal/logging"
	"motoparts/internal/session"
	"motoparts/internal/state"
	"motoparts/internal/storage"
	"motoparts/internal/storefront"
)

// env is what every command runs against. It is built once per invocation
// in the root PersistentPreRunE.
type env struct {
	v       *viper.Viper
	cfg     config.Client
	logger  *zap.Logger
	store   storage.Storage
	owned   bool
	front   *storefront.Storefront
	verbose bool
}

// Option customises the command tree, mostly for tests.
type Option func(*env)

// WithStorage makes the commands use s instead of opening STORAGE_DRIVER.
// The caller keeps ownership of s.
func WithStorage(s storage.Storage) Option {
	return func(e *env) { e.store = s }
}

// WithViper replaces the environment-backed configuration.
func WithViper(v *viper.Viper) Option {
	return func(e *env) { e.v = v }
}

// WithLogger replaces the logger built from LOG_LEVEL.
func WithLogger(l *zap.Logger) Option {
	return func(e *env) { e.logger = l }
}

// NewRootCommand builds the full command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	e := &env{}
	for _, opt := range opts {
		opt(e)
	}

	root := &cobra.Command{
		Use:           "motoparts",
		Short:         "Motorcycle spare parts storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			e.teardown()
		},
	}
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newLoginCmd(e),
		newGoogleLoginCmd(e),
		newRegisterCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newProductsCmd(e),
		newProductCmd(e),
		newCategoriesCmd(e),
		newCartCmd(e),
		newCheckoutCmd(e),
		newPayCmd(e),
		newOrdersCmd(e),
		newWishlistCmd(e),
		newReviewsCmd(e),
		newAdminCmd(e),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context, opts ...Option) error {
	return NewRootCommand(opts...).ExecuteContext(ctx)
}

func (e *env) setup(cmd *cobra.Command) error {
	if e.v == nil {
		e.v = config.New()
	}
	e.cfg = config.LoadClient(e.v)

	if e.logger == nil {
		level := e.cfg.LogLevel
		if e.verbose {
			level = "debug"
		}
		logger, err := logging.New(level)
		if err != nil {
			return err
		}
		e.logger = logger
	}

	if e.store == nil {
		s, err := storage.Open(e.cfg.StorageDriver, e.cfg.StorageDSN)
		if err != nil {
			return fmt.Errorf("failed to open local storage: %w", err)
		}
		e.store = s
		e.owned = true
	}

	auth := session.NewAuthStore(e.store)
	client := api.NewClient(api.Config{BaseURL: e.cfg.APIURL, Timeout: e.cfg.HTTPTimeout}, auth, e.logger)
	out := cmd.ErrOrStderr()
	e.front = storefront.New(client, state.NewStore(state.State{}, e.logger), auth, session.NewResolver(e.store), e.logger, storefront.Options{
		MergeGuestCartOnLogin: e.cfg.MergeCartOnLogin,
		LowStockThreshold:     e.cfg.LowStockThreshold,
		Navigate: func(route string) {
			if route == storefront.RouteLogin {
				fmt.Fprintln(out, "session expired, please log in: motoparts login --email <email>")
			}
		},
	})
	return e.front.Restore()
}

func (e *env) teardown() {
	if e.owned && e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("failed to close local storage", zap.Error(err))
		}
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}
