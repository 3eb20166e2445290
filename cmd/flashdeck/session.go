package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/nao1215/flashdeck/internal/backend"
	"github.com/nao1215/flashdeck/internal/config"
	"github.com/nao1215/flashdeck/internal/controller"
	"github.com/nao1215/flashdeck/internal/dom"
	"github.com/nao1215/flashdeck/internal/log"
	"github.com/nao1215/flashdeck/internal/render"
	"github.com/nao1215/flashdeck/internal/shell"
)

// addSessionFlags adds the transport flags shared by commands that talk to
// the server.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy address (e.g., 127.0.0.1:9050)")
	cmd.Flags().Bool("tor", false,
		"Route requests through an embedded Tor daemon")
	cmd.Flags().Duration("tor-timeout", config.DefaultTorStartupTimeout,
		"Timeout for embedded Tor startup")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request (0 waits forever)")
	cmd.Flags().Int("page-size", config.DefaultPageSize,
		"Saved flashcards requested per listing (0 uses the server default)")
}

// buildConfig creates a Config from defaults, the config file, and flags,
// in increasing priority.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path must exist; otherwise a missing file means defaults.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		f, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg.ApplyFile(f)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.Verbose, err = flags.GetBool("verbose")
	if err != nil {
		return nil, err
	}

	if flags.Changed("server") {
		if cfg.ServerURL, err = flags.GetString("server"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		cfg.Format = config.Format(format)
	}
	if flags.Lookup("proxy") != nil {
		if err := applySessionFlags(cmd, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// applySessionFlags copies the transport flags that were set onto cfg.
func applySessionFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	if flags.Changed("tor") {
		if cfg.UseEmbeddedTor, err = flags.GetBool("tor"); err != nil {
			return err
		}
	}
	if flags.Changed("tor-timeout") {
		if cfg.TorStartupTimeout, err = flags.GetDuration("tor-timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("page-size") {
		if cfg.PageSize, err = flags.GetInt("page-size"); err != nil {
			return err
		}
	}
	return nil
}

// session is one page session: a controller running over a fresh page and
// the shell that drives it.
type session struct {
	*shell.Shell

	cancel  context.CancelFunc
	done    chan error
	cleanup []func() error
	logger  *slog.Logger
}

// sessionIO holds the streams and password source of a session.
type sessionIO struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	password shell.PasswordFunc
	prompt   *string
}

// commandIO returns the cobra command's streams with the terminal password
// prompt.
func commandIO(cmd *cobra.Command) sessionIO {
	return sessionIO{
		in:       cmd.InOrStdin(),
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		password: shell.StdinPassword(),
	}
}

// openSession builds the transport, starts the controller, and returns the
// session. Close must be called to stop it.
func openSession(ctx context.Context, cfg *config.Config, sio sessionIO) (_ *session, err error) {
	logger := log.NewLogger(sio.errOut, log.Options{Verbose: cfg.Verbose, JSON: cfg.JSONLog})
	slog.SetDefault(logger)

	s := &session{logger: logger}
	defer func() {
		if err != nil {
			s.runCleanup()
		}
	}()

	topts := backend.TransportOptions{
		ProxyAddress: cfg.ProxyAddress,
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		Headers:      cfg.Headers,
	}

	switch {
	case cfg.UseEmbeddedTor:
		if err := s.startTor(ctx, cfg, &topts); err != nil {
			return nil, err
		}
	case cfg.ProxyAddress != "":
		target, err := serverHostPort(cfg.ServerURL)
		if err != nil {
			return nil, err
		}
		if status := backend.CheckProxy(ctx, cfg.ProxyAddress, target); status != backend.ProxyStatusOK {
			return nil, fmt.Errorf("proxy check failed: %w (make sure a SOCKS5 proxy is running at %s)",
				status.Error(), cfg.ProxyAddress)
		}
		logger.Info("proxy connection verified", "address", cfg.ProxyAddress)
	}

	client, err := backend.New(cfg.ServerURL, backend.Options{
		Transport:   topts,
		MaxBodySize: cfg.MaxBodySize,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	writer, err := render.New(cfg.Format, sio.out)
	if err != nil {
		return nil, err
	}

	alerts := shell.NewAlerts()
	ctrl := controller.New(client, dom.NewPage(), controller.Options{
		PageSize: cfg.PageSize,
		Alerter:  alerts,
		Logger:   logger,
	})

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan error, 1)
	go func() {
		s.done <- ctrl.Run(runCtx)
	}()

	s.Shell = shell.New(ctrl, alerts, writer, shell.Options{
		Input:    sio.in,
		Output:   sio.out,
		Password: sio.password,
		Prompt:   sio.prompt,
		Logger:   logger,
	})

	logger.Debug("session opened", "server", client.BaseURL(), "format", string(cfg.Format))
	return s, nil
}

// startTor starts the embedded Tor daemon and routes topts through it.
func (s *session) startTor(ctx context.Context, cfg *config.Config, topts *backend.TransportOptions) error {
	s.logger.Info("starting embedded Tor daemon...", "timeout", cfg.TorStartupTimeout)

	tor := backend.NewEmbeddedTor(backend.WithStartupTimeout(cfg.TorStartupTimeout))
	if err := tor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start embedded Tor: %w", err)
	}
	s.cleanup = append(s.cleanup, func() error {
		s.logger.Info("stopping embedded Tor daemon...")
		return tor.Stop()
	})

	if err := tor.Apply(topts); err != nil {
		return err
	}
	s.logger.Info("embedded Tor daemon ready", "socks", tor.SocksAddr())
	return nil
}

// Close stops the controller, cancelling requests still in flight, and
// releases the transport.
func (s *session) Close() error {
	var errs []error
	if s.cancel != nil {
		s.cancel()
		errs = append(errs, <-s.done)
	}
	errs = append(errs, s.runCleanup())
	return errors.Join(errs...)
}

func (s *session) runCleanup() error {
	var errs []error
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, s.cleanup[i]())
	}
	s.cleanup = nil
	return errors.Join(errs...)
}

// serverHostPort returns the host:port the server URL connects to.
func serverHostPort(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", config.ErrInvalidServerURL, serverURL)
	}
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
