package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	pkgcfg "github.com/Skotchmaster/sakhi_shop/pkg/config"
	"github.com/Skotchmaster/sakhi_shop/pkg/events"
	"github.com/Skotchmaster/sakhi_shop/pkg/logging"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/backend"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/catalog"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/config"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/view"
)

type options struct {
	backend  string
	dsn      string
	redisURL string
	session  string
	ttl      time.Duration
	brokers  []string
	topic    string
	logLevel string
}

// withCart opens the configured backend and runs fn against one visitor's cart.
func (o *options) withCart(cmd *cobra.Command, fn func(ctx context.Context, svc *service.CartService, st cart.Storage) error) error {
	return o.withBackend(cmd, func(ctx context.Context, svc *service.CartService, res *backend.Resources) error {
		return fn(ctx, svc, res.Carts.Open(o.session))
	})
}

func (o *options) withBackend(cmd *cobra.Command, fn func(ctx context.Context, svc *service.CartService, res *backend.Resources) error) error {
	if _, err := uuid.Parse(o.session); err != nil {
		return fmt.Errorf("--session must be a uuid: %w", err)
	}
	cfg := &config.Config{
		CartBackend: o.backend,
		DatabaseURL: o.dsn,
		RedisURL:    o.redisURL,
		CartTTL:     o.ttl,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.ServerSide() || cfg.CartBackend == config.BackendMemory {
		return fmt.Errorf("backend %q is not reachable from outside the server; use sql or redis", cfg.CartBackend)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l := logging.NewWithWriter(cmd.ErrOrStderr(), o.logLevel).With("session_id", o.session)
	ctx = logging.IntoContext(ctx, l)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	res, err := backend.Open(openCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer res.Close()

	var producer events.Publisher = events.Nop{}
	if len(o.brokers) > 0 {
		producer = events.NewProducer(o.brokers)
	}
	defer producer.Close()

	svc := &service.CartService{Catalog: catalog.Default(), Events: producer, Topic: o.topic}
	return fn(ctx, svc, res)
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Inspect and edit storefront carts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&o.backend, "backend", pkgcfg.EnvDefault("CART_BACKEND", config.BackendSQL), "cart backend: sql or redis")
	f.StringVar(&o.dsn, "dsn", pkgcfg.EnvDefault("DATABASE_URL", ""), "database url or sqlite file for the sql backend")
	f.StringVar(&o.redisURL, "redis-url", pkgcfg.EnvDefault("REDIS_URL", ""), "redis url for the redis backend")
	f.StringVar(&o.session, "session", "", "session id (uuid) owning the cart")
	f.DurationVar(&o.ttl, "ttl", time.Duration(pkgcfg.EnvIntDefault("CART_TTL_HOURS", 24*30))*time.Hour, "redis key ttl")
	f.StringSliceVar(&o.brokers, "brokers", pkgcfg.CSV(pkgcfg.EnvDefault("KAFKA_BROKERS", "")), "kafka brokers for cart events")
	f.StringVar(&o.topic, "topic", pkgcfg.EnvDefault("KAFKA_CART_TOPIC", service.DefaultTopic), "kafka topic for cart events")
	f.StringVar(&o.logLevel, "log-level", "warn", "log level")
	_ = root.MarkPersistentFlagRequired("session")

	root.AddCommand(
		showCmd(o),
		addCmd(o),
		removeCmd(o),
		qtyCmd(o),
		clearCmd(o),
	)
	return root
}

func showCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withCart(cmd, func(ctx context.Context, svc *service.CartService, st cart.Storage) error {
				return printCart(cmd.OutOrStdout(), svc.Get(ctx, st, o.session))
			})
		},
	}
}

func addCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add one unit of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := productID(args[0])
			if err != nil {
				return err
			}
			return o.withCart(cmd, func(ctx context.Context, svc *service.CartService, st cart.Storage) error {
				if _, ok := svc.Catalog.Lookup(id); !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "product %d is not in the catalog, cart unchanged\n", id)
				}
				c, err := svc.Add(ctx, st, o.session, id)
				if err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), c)
			})
		},
	}
}

func removeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PRODUCT_ID",
		Short: "Remove a product line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := productID(args[0])
			if err != nil {
				return err
			}
			return o.withCart(cmd, func(ctx context.Context, svc *service.CartService, st cart.Storage) error {
				c, err := svc.Remove(ctx, st, o.session, id)
				if err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), c)
			})
		},
	}
}

func qtyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "qty PRODUCT_ID DELTA",
		Short: "Change a line's quantity by DELTA; reaching zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := productID(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("delta %q is not an integer", args[1])
			}
			return o.withCart(cmd, func(ctx context.Context, svc *service.CartService, st cart.Storage) error {
				c, err := svc.ChangeQuantity(ctx, st, o.session, id, delta)
				if err != nil {
					return err
				}
				return printCart(cmd.OutOrStdout(), c)
			})
		},
	}
}

func clearCmd(o *options) *cobra.Command {
	var purge bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withBackend(cmd, func(ctx context.Context, svc *service.CartService, res *backend.Resources) error {
				if err := svc.Clear(ctx, res.Carts.Open(o.session), o.session); err != nil {
					return err
				}
				if !purge {
					fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
					return nil
				}
				if err := res.Purge(ctx, o.session); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cart purged")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&purge, "purge", false, "delete the stored cart instead of saving it empty")
	return cmd
}

func productID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("product id %q must be a positive integer", s)
	}
	return id, nil
}

func printCart(w io.Writer, c cart.Cart) error {
	if c.IsEmpty() {
		_, err := fmt.Fprintln(w, "cart is empty")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tTOTAL")
	for _, l := range c.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", l.ProductID, l.Name, l.Quantity, view.INR(l.Price), view.INR(l.Price*l.Quantity))
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", c.TotalCount(), view.INR(c.TotalPrice()))
	return tw.Flush()
}
