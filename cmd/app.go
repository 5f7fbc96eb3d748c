package cmd

import (
	"errors"
	"io"
	"os"

	"carrental/cli/internal/config"
	"carrental/cli/internal/dsn"
	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/gateway"
	"carrental/cli/internal/keychain"
	"carrental/cli/internal/logging"
	"carrental/cli/internal/session"
	"carrental/cli/internal/sqlexec"

	"github.com/pterm/pterm"
)

// env is what every command needs before a session exists.
type env struct {
	cfg      config.Config
	log      *pterm.Logger
	closeLog io.Closer
}

func openEnv() (*env, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cerrors.Wrap(cerrors.Configuration, "cannot load configuration", err)
	}

	level := cfg.Logging.Level
	if verbose || os.Getenv("CARRENTAL_VERBOSE") == "1" {
		level = "debug"
	}
	log, closer, err := logging.OpenLogger(cfg.Logging.File, level)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.Configuration, "cannot open log file", err)
	}
	return &env{cfg: cfg, log: log, closeLog: closer}, nil
}

func (e *env) Close() {
	_ = e.closeLog.Close()
}

// newGateway builds a gateway that connects to the configured server as user.
func (e *env) newGateway(user, password string) (*gateway.Gateway, error) {
	info, err := dsn.Parse(e.cfg.Server.DSN)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.Configuration, "invalid server DSN", err)
	}
	connector := sqlexec.NewPgxConnector(info, user, password)
	connector.SimpleProtocol = e.cfg.Server.InlineLiterals
	e.log.Debug("server configured", e.log.Args("dsn", logging.Mask(connector.DSN(e.cfg.Server.SystemDatabase))))

	return gateway.New(connector, gateway.Config{
		SystemDatabase: e.cfg.Server.SystemDatabase,
		GuestDatabase:  e.cfg.Server.GuestDatabase,
		InlineLiterals: e.cfg.Server.InlineLiterals,
	}, e.log), nil
}

func openKeychain() (*keychain.Manager, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return nil, cerrors.Wrap(cerrors.Configuration, "secure storage is not available on this system", err)
	}
	return km, nil
}

// app is an env with a logged-in session and a gateway bound to it.
type app struct {
	*env
	keys *keychain.Manager
	sess session.Session
	gw   *gateway.Gateway
}

// openApp loads the saved session and password. Not being logged in is a
// configuration error.
func openApp() (*app, error) {
	e, err := openEnv()
	if err != nil {
		return nil, err
	}
	a, err := e.login()
	if err != nil {
		e.Close()
		return nil, err
	}
	return a, nil
}

func (e *env) login() (*app, error) {
	km, err := openKeychain()
	if err != nil {
		return nil, err
	}
	sess, err := session.Load(km)
	if errors.Is(err, session.ErrNotLoggedIn) {
		return nil, cerrors.New(cerrors.Configuration, "you are not logged in; run 'carrental login'")
	}
	if err != nil {
		return nil, cerrors.Wrap(cerrors.Configuration, "cannot read saved session", err)
	}
	password, err := km.LoadPassword(sess.User)
	if err != nil && !errors.Is(err, keychain.ErrNotFound) {
		return nil, cerrors.Wrap(cerrors.Configuration, "cannot read saved password", err)
	}
	gw, err := e.newGateway(sess.User, password)
	if err != nil {
		return nil, err
	}
	e.log.Debug("session loaded", e.log.Args("session", sess.String()))
	return &app{env: e, keys: km, sess: sess, gw: gw}, nil
}

// setSession persists s as the current session.
func (a *app) setSession(s session.Session) error {
	if err := session.Save(a.keys, s); err != nil {
		return cerrors.Wrap(cerrors.Configuration, "cannot save session", err)
	}
	a.sess = s
	return nil
}
