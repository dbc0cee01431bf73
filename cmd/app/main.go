package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/S-h-i-v-a-y/assignment/internal/adapters/db/graph"
	sqliteadapter "github.com/S-h-i-v-a-y/assignment/internal/adapters/db/sqlite"
	httpadapter "github.com/S-h-i-v-a-y/assignment/internal/adapters/http"
	rpcadapter "github.com/S-h-i-v-a-y/assignment/internal/adapters/rpcjson"
	"github.com/S-h-i-v-a-y/assignment/internal/application"
	"github.com/S-h-i-v-a-y/assignment/internal/domain"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "checkgraph",
		Usage: "Check-in tracking and social graph server and CLI",
		Commands: []*cli.Command{
			serverCommand(),
			configCommand(),
			presenceCommand(),
			orgCommand(),
			usersCommand(),
			postsCommand(),
			relationsCommand(),
			directoryCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServer(ctx, ":8080", "/tmp/checkgraph.sock", "checkgraph.db", graph.Options{
				URI:      "bolt://localhost:7687",
				Database: "neo4j",
				Username: "neo4j",
			})
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Run HTTP and JSON-RPC servers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "rpc-socket", Value: "/tmp/checkgraph.sock", Usage: "JSON-RPC unix socket path"},
			&cli.StringFlag{Name: "db-path", Value: "checkgraph.db", Usage: "SQLite database path for the directory store"},
			&cli.StringFlag{Name: "neo4j-uri", Value: "bolt://localhost:7687", Sources: cli.EnvVars("CHECKGRAPH_NEO4J_URI")},
			&cli.StringFlag{Name: "neo4j-database", Value: "neo4j", Sources: cli.EnvVars("CHECKGRAPH_NEO4J_DATABASE")},
			&cli.StringFlag{Name: "neo4j-user", Value: "neo4j", Sources: cli.EnvVars("CHECKGRAPH_NEO4J_USER")},
			&cli.StringFlag{Name: "neo4j-password", Sources: cli.EnvVars("CHECKGRAPH_NEO4J_PASSWORD")},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runServer(ctx, c.String("addr"), c.String("rpc-socket"), c.String("db-path"), graph.Options{
				URI:      c.String("neo4j-uri"),
				Database: c.String("neo4j-database"),
				Username: c.String("neo4j-user"),
				Password: c.String("neo4j-password"),
			})
		},
	}
}

func runServer(ctx context.Context, addr, rpcSocket, dbPath string, graphOpts graph.Options) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	client, err := graph.NewClient(graphOpts)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close(context.Background()) }()
	if err := client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph connectivity: %w", err)
	}

	db, err := sqliteadapter.Open(dbPath)
	if err != nil {
		return err
	}
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		return err
	}

	presence := application.NewPresenceService(graph.NewPresenceRepository(client))
	social := application.NewSocialService(graph.NewSocialRepository(client))
	relations := application.NewRelationshipService(graph.NewRelationshipRepository(client))
	directory := application.NewDirectoryService(sqliteadapter.NewDirectoryRepository(db))

	router := httpadapter.NewRouter(presence, social, relations, directory)
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	rpcSrv, err := rpcadapter.Start(rpcSocket, presence, social, relations, directory)
	if err != nil {
		return err
	}

	defer func() {
		_ = rpcSrv.Close()
	}()
	slog.Info("json-rpc listening", "socket", rpcSocket)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage CLI transport settings",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set CLI transport, server URL or socket path",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "transport", Usage: "uds or http"},
					&cli.StringFlag{Name: "server", Usage: "HTTP base URL"},
					&cli.StringFlag{Name: "socket", Usage: "unix socket path"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if c.IsSet("transport") {
						t := c.String("transport")
						if t != "uds" && t != "http" {
							return fmt.Errorf("transport must be uds or http, got %q", t)
						}
						cfg.Transport = t
					}
					if c.IsSet("server") {
						cfg.Server = c.String("server")
					}
					if c.IsSet("socket") {
						cfg.Socket = c.String("socket")
					}
					return saveConfig(cfg)
				},
			},
			{
				Name:  "show",
				Usage: "Print current CLI settings",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					printKV([][2]string{
						{"transport", cfg.Transport},
						{"server", cfg.Server},
						{"socket", cfg.Socket},
					})
					return nil
				},
			},
		},
	}
}

func presenceCommand() *cli.Command {
	return &cli.Command{
		Name:  "presence",
		Usage: "Check-in tracking commands",
		Commands: []*cli.Command{
			{
				Name:  "create-person",
				Usage: "Create a person node",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "role"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Person
					if err := doCreatePerson(ctx, cfg, c.Int("id"), c.String("name"), c.String("role"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printKV([][2]string{{"id", int64ToString(out.ID)}, {"name", out.Name}, {"role", out.Role}})
					return nil
				},
			},
			{
				Name:  "create-org",
				Usage: "Create an organization node",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.Organization
					if err := doCreateOrganization(ctx, cfg, c.Int("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printKV([][2]string{{"id", int64ToString(out.ID)}})
					return nil
				},
			},
			{
				Name:  "checkin",
				Usage: "Check users into organizations",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pairs", Required: true, Usage: "user_id:org_id,user_id:org_id"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					pairs, err := parseCheckInPairs(c.String("pairs"))
					if err != nil {
						return err
					}
					var out struct {
						Results []domain.CheckInStatus `json:"results"`
					}
					if err := doCheckInBatch(ctx, cfg, pairs, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out.Results)
					}
					printCheckInStatuses(out.Results)
					return nil
				},
			},
			{
				Name:  "active",
				Usage: "List checked-in users grouped by role",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						ActiveUsers []domain.RoleGroup `json:"active_users"`
					}
					if err := doActiveUsers(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out.ActiveUsers)
					}
					printRoleGroups(out.ActiveUsers)
					return nil
				},
			},
			{
				Name:  "checkout",
				Usage: "Check out all non-admin users of an organization",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "org-id", Required: true},
					&cli.BoolFlag{Name: "admin", Usage: "check out the admin instead"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doCheckout(ctx, cfg, c.Int("org-id"), c.Bool("admin"), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
		},
	}
}

func orgCommand() *cli.Command {
	return &cli.Command{
		Name:  "org",
		Usage: "Operating-hours gated organization commands",
		Commands: []*cli.Command{
			{
				Name:  "set-times",
				Usage: "Set opening and closing times",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "org-id", Required: true},
					&cli.StringFlag{Name: "opening", Required: true, Usage: "HH:MM"},
					&cli.StringFlag{Name: "closing", Required: true, Usage: "HH:MM"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doSetTimes(ctx, cfg, c.Int("org-id"), c.String("opening"), c.String("closing"), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
			{
				Name:  "checkin",
				Usage: "Check a user in, honoring operating hours",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "user-id", Required: true},
					&cli.IntFlag{Name: "org-id", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doGatedCheckIn(ctx, cfg, c.Int("user-id"), c.Int("org-id"), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
			{
				Name:  "active",
				Usage: "List active users of one organization, by role",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "org-id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						ActiveUsers []domain.RoleGroup `json:"active_users"`
					}
					if err := doActiveUsersAt(ctx, cfg, c.Int("org-id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out.ActiveUsers)
					}
					printRoleGroups(out.ActiveUsers)
					return nil
				},
			},
			{
				Name:  "auto-checkout",
				Usage: "Check out non-admin users when the organization has closed",
				Flags: []cli.Flag{&cli.IntFlag{Name: "org-id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out map[string]any
					if err := doAutoCheckout(ctx, cfg, c.Int("org-id"), &out); err != nil {
						return err
					}
					return printJSON(out)
				},
			},
			{
				Name:  "admin-checkout",
				Usage: "Check out the organization admin",
				Flags: []cli.Flag{&cli.IntFlag{Name: "org-id", Required: true}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doAdminCheckout(ctx, cfg, c.Int("org-id"), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
		},
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Social graph user commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a user node",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "optional, generated when empty"},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.IntFlag{Name: "age"},
					&cli.StringFlag{Name: "gender"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					user := domain.SocialUser{
						ID:     c.String("id"),
						Name:   c.String("name"),
						Email:  c.String("email"),
						Age:    c.Int("age"),
						Gender: c.String("gender"),
					}
					var out domain.SocialUser
					if err := doUserCreate(ctx, cfg, user, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printSocialUsers([]domain.SocialUser{out})
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List all users",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.SocialUser
					if err := doUserList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printSocialUsers(out)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "Show one user",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("user id is required")
					}
					var out domain.SocialUser
					if err := doUserGet(ctx, cfg, id, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printSocialUsers([]domain.SocialUser{out})
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "Update user fields",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.IntFlag{Name: "age"},
					&cli.StringFlag{Name: "gender"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("user id is required")
					}
					fields := map[string]any{}
					if c.IsSet("name") {
						fields["name"] = c.String("name")
					}
					if c.IsSet("email") {
						fields["email"] = c.String("email")
					}
					if c.IsSet("age") {
						fields["age"] = c.Int("age")
					}
					if c.IsSet("gender") {
						fields["gender"] = c.String("gender")
					}
					var out domain.SocialUser
					if err := doUserUpdate(ctx, cfg, id, fields, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printSocialUsers([]domain.SocialUser{out})
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a user and all its relationships",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("user id is required")
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doUserDelete(ctx, cfg, id, &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
			{
				Name:      "follow",
				Usage:     "Create a follow edge",
				ArgsUsage: "<follower-id> <followee-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if c.Args().Len() != 2 {
						return fmt.Errorf("expected <follower-id> <followee-id>")
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doFollow(ctx, cfg, c.Args().Get(0), c.Args().Get(1), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
			{
				Name:      "like",
				Usage:     "Create a like edge from a user to a post",
				ArgsUsage: "<user-id> <post-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if c.Args().Len() != 2 {
						return fmt.Errorf("expected <user-id> <post-id>")
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doLike(ctx, cfg, c.Args().Get(0), c.Args().Get(1), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
			{
				Name:      "followers",
				Usage:     "List a user's followers",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action:    socialListAction("followers", doFollowers),
			},
			{
				Name:      "following",
				Usage:     "List who a user follows",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action:    socialListAction("following", doFollowing),
			},
		},
	}
}

func socialListAction(what string, do func(context.Context, cliConfig, string, *[]domain.SocialUser) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		id := c.Args().First()
		if id == "" {
			return fmt.Errorf("user id is required for %s", what)
		}
		var out []domain.SocialUser
		if err := do(ctx, cfg, id, &out); err != nil {
			return err
		}
		if c.Bool("json") {
			return printJSON(out)
		}
		printSocialUsers(out)
		return nil
	}
}

func postsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "Post commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a post node",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "optional, generated when empty"},
					&cli.StringFlag{Name: "content", Required: true},
					&cli.StringFlag{Name: "timestamp"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					post := domain.Post{ID: c.String("id"), Content: c.String("content"), Timestamp: c.String("timestamp")}
					var out domain.Post
					if err := doPostCreate(ctx, cfg, post, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printKV([][2]string{{"id", out.ID}, {"content", out.Content}, {"timestamp", out.Timestamp}})
					return nil
				},
			},
			{
				Name:      "likes",
				Usage:     "List users who liked a post",
				ArgsUsage: "<post-id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("post id is required")
					}
					var out []domain.SocialUser
					if err := doLikes(ctx, cfg, id, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printSocialUsers(out)
					return nil
				},
			},
		},
	}
}

func relationsCommand() *cli.Command {
	relFlags := []cli.Flag{
		&cli.StringFlag{Name: "source", Required: true, Usage: "source node id"},
		&cli.StringFlag{Name: "target", Required: true, Usage: "target node id"},
		&cli.StringFlag{Name: "type", Required: true, Usage: "relationship type name"},
	}
	return &cli.Command{
		Name:  "relations",
		Usage: "Generic relationship commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a relationship between two nodes",
				Flags: relFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						RelationshipID string `json:"relationship_id"`
					}
					if err := doRelationCreate(ctx, cfg, c.String("source"), c.String("target"), c.String("type"), &out); err != nil {
						return err
					}
					printKV([][2]string{{"relationship_id", out.RelationshipID}})
					return nil
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a relationship between two nodes",
				Flags: relFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doRelationDelete(ctx, cfg, c.String("source"), c.String("target"), c.String("type"), &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
		},
	}
}

func directoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "directory",
		Usage: "Relational directory user commands",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a directory user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.IntFlag{Name: "age"},
					&cli.StringFlag{Name: "gender"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out domain.DirectoryUser
					err = doDirectoryCreate(ctx, cfg, domain.DirectoryUser{
						Name:   c.String("name"),
						Email:  c.String("email"),
						Age:    int(c.Int("age")),
						Gender: c.String("gender"),
					}, &out)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printDirectoryUsers([]domain.DirectoryUser{out})
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List directory users",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "skip"},
					&cli.IntFlag{Name: "limit", Value: 10},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []domain.DirectoryUser
					if err := doDirectoryList(ctx, cfg, int(c.Int("skip")), int(c.Int("limit")), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printDirectoryUsers(out)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "Show one directory user",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argUint(c)
					if err != nil {
						return err
					}
					var out domain.DirectoryUser
					if err := doDirectoryGet(ctx, cfg, id, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printDirectoryUsers([]domain.DirectoryUser{out})
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "Update directory user fields",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.IntFlag{Name: "age"},
					&cli.StringFlag{Name: "gender"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argUint(c)
					if err != nil {
						return err
					}
					fields := map[string]any{}
					if c.IsSet("name") {
						fields["name"] = c.String("name")
					}
					if c.IsSet("email") {
						fields["email"] = c.String("email")
					}
					if c.IsSet("age") {
						fields["age"] = c.Int("age")
					}
					if c.IsSet("gender") {
						fields["gender"] = c.String("gender")
					}
					var out domain.DirectoryUser
					if err := doDirectoryUpdate(ctx, cfg, id, fields, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printDirectoryUsers([]domain.DirectoryUser{out})
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a directory user",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					id, err := argUint(c)
					if err != nil {
						return err
					}
					var out struct {
						Message string `json:"message"`
					}
					if err := doDirectoryDelete(ctx, cfg, id, &out); err != nil {
						return err
					}
					fmt.Println(out.Message)
					return nil
				},
			},
		},
	}
}

func argUint(c *cli.Command) (uint, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("id argument is required")
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be a positive integer: %q", raw)
	}
	return uint(v), nil
}

func parseCheckInPairs(raw string) ([][2]int64, error) {
	parts := strings.Split(raw, ",")
	pairs := make([][2]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		userRaw, orgRaw, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid pair %q, expected user_id:org_id", part)
		}
		userID, err := strconv.ParseInt(strings.TrimSpace(userRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id in %q", part)
		}
		orgID, err := strconv.ParseInt(strings.TrimSpace(orgRaw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid org id in %q", part)
		}
		pairs = append(pairs, [2]int64{userID, orgID})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no check-in pairs given")
	}
	return pairs, nil
}

func jsonMarshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
