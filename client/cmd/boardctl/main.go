// Command boardctl is a terminal client for simpleboard boards.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/itchan-dev/simpleboard/client/internal/apiclient"
	"github.com/itchan-dev/simpleboard/client/internal/identity"
	"github.com/itchan-dev/simpleboard/client/internal/localstore"
	"github.com/itchan-dev/simpleboard/client/internal/session"
	"github.com/itchan-dev/simpleboard/shared/config"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

const usage = `usage: boardctl [-config file] <command> [args]

commands:
  boards                                list recently updated boards
  new [title]                           create a board with a generated id
  show <board>                          print a board (created on first visit)
  watch <board>                         print a board and follow its changes
  post <board> [flags] <type> <value>   post text, link, image or file
  edit <board> [flags] <item> [text]    edit your item
  rm <board> <item>                     delete your item
  like <board> <item>                   toggle your like
  category <add|rename|color|hide|unhide|move|rm> <board> ...
  board <rename|describe|rm> <board> ...
  login <email>                         start an admin session (password on stdin)
  logout                                end the admin session
  whoami                                print identity and admin state
`

type app struct {
	cfg      *config.Client
	api      *apiclient.APIClient
	session  *session.Session
	stdin    io.Reader
	out      io.Writer
	commands map[string]func(ctx context.Context, args []string) error
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/client.yaml", "path to client config")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.MustLoadClient(configPath)
	logger.InitializeWriter(os.Stderr, cfg.LogLevel, false)

	a, err := newApp(cfg, os.Stdin, os.Stdout)
	if err != nil {
		logger.Log.Error("failed to initialize client", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Client, stdin io.Reader, out io.Writer) (*app, error) {
	statePath := cfg.StatePath
	if statePath == "" {
		var err error
		if statePath, err = localstore.DefaultPath(); err != nil {
			return nil, err
		}
	}
	var kv session.KV = memoryKV{}
	if st, err := localstore.Open(statePath); err != nil {
		logger.Log.Warn("local state unavailable, identity will not survive this run", "path", statePath, "error", err)
	} else {
		kv = st
	}
	ids := identity.New(kv)

	api := apiclient.New(cfg.BaseURL, cfg.RequestTimeout)
	api.Retryer = apiclient.NewRetryer(cfg.Reconnect)
	api.Identity = ids

	sess := session.New(kv, api, ids)
	api.Admin = sess

	a := &app{cfg: cfg, api: api, session: sess, stdin: stdin, out: out}
	a.commands = map[string]func(context.Context, []string) error{
		"boards":   a.listBoards,
		"new":      a.newBoard,
		"show":     a.show,
		"watch":    a.watch,
		"post":     a.post,
		"edit":     a.edit,
		"rm":       a.remove,
		"like":     a.like,
		"category": a.category,
		"board":    a.boardAdmin,
		"login":    a.login,
		"logout":   a.logout,
		"whoami":   a.whoami,
	}
	return a, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
	return cmd(ctx, args[1:])
}

// memoryKV stands in when the local state file cannot be opened.
type memoryKV map[string]string

func (m memoryKV) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memoryKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memoryKV) Delete(key string) error {
	delete(m, key)
	return nil
}
