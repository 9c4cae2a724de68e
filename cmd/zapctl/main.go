package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matheus3301/zapdesk/internal/api"
	"github.com/matheus3301/zapdesk/internal/config"
	"github.com/matheus3301/zapdesk/internal/convo"
	"github.com/matheus3301/zapdesk/internal/paths"
)

func main() {
	configFlag := flag.String("config", "", "config file path (default ~/.zapdesk/config.toml)")
	jsonFlag := flag.Bool("json", false, "output in JSON format")
	queryFlag := flag.String("q", "", "free text filter (list)")
	unreadFlag := flag.Bool("unread", false, "unread only (list)")
	agentFlag := flag.String("agent", "", "assigned agent filter (list)")
	tagsFlag := flag.String("tags", "", "comma-separated tag filter (list)")
	archivedFlag := flag.Bool("archived", false, "archived only (list)")
	flag.Parse()

	path := *configFlag
	if path == "" {
		path = paths.ConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if cfg.BackendURL == "" {
		fmt.Fprintln(os.Stderr, "error: backend_url is not configured")
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	c := api.New(cfg.BackendURL, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch args[0] {
	case "list":
		f := convo.Filters{
			Query:      *queryFlag,
			UnreadOnly: *unreadFlag,
			Assigned:   *agentFlag,
			Archived:   *archivedFlag,
		}
		if *tagsFlag != "" {
			f.Tags = strings.Split(*tagsFlag, ",")
		}
		cmdList(ctx, c, f, *jsonFlag)
	case "messages":
		requireArgs(args, 2, "zapctl messages <user_id>")
		cmdMessages(ctx, c, args[1], *jsonFlag)
	case "assign":
		requireArgs(args, 3, "zapctl assign <user_id> <agent>")
		fail(c.Assign(ctx, args[1], args[2]))
	case "tag":
		requireArgs(args, 3, "zapctl tag <user_id> <a,b,c>")
		fail(c.SetTags(ctx, args[1], strings.Split(args[2], ",")))
	case "read":
		requireArgs(args, 2, "zapctl read <user_id>")
		fail(c.MarkRead(ctx, args[1]))
	case "agents":
		cmdAgents(ctx, c, *jsonFlag)
	case "tag-options":
		cmdTagOptions(ctx, c, *jsonFlag)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: zapctl [--config <path>] [--json] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  list [--q --unread --agent --tags --archived]  List conversations")
	fmt.Fprintln(os.Stderr, "  messages <user_id>                             Show a thread")
	fmt.Fprintln(os.Stderr, "  assign <user_id> <agent>                       Assign a conversation")
	fmt.Fprintln(os.Stderr, "  tag <user_id> <a,b,c>                          Replace tags")
	fmt.Fprintln(os.Stderr, "  read <user_id>                                 Mark as read")
	fmt.Fprintln(os.Stderr, "  agents                                         List agents")
	fmt.Fprintln(os.Stderr, "  tag-options                                    List known tags")
}

func requireArgs(args []string, n int, usage string) {
	if len(args) < n {
		fmt.Fprintln(os.Stderr, "usage: "+usage)
		os.Exit(1)
	}
}

func fail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func cmdList(ctx context.Context, c *api.Client, f convo.Filters, jsonOut bool) {
	rows, err := c.ListConversations(ctx, f)
	fail(err)
	if jsonOut {
		outputJSON(rows)
		return
	}
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = r.UserID
		}
		unread := ""
		if r.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d)", r.UnreadCount)
		}
		fmt.Printf("%-16s  %-24s%s  %s\n", r.UserID, name, unread, r.LastMessage)
	}
}

func cmdMessages(ctx context.Context, c *api.Client, userID string, jsonOut bool) {
	msgs, err := c.ListMessages(ctx, userID)
	fail(err)
	if jsonOut {
		outputJSON(msgs)
		return
	}
	for _, m := range msgs {
		sender := "them"
		if m.FromMe {
			sender = "you"
		}
		body := m.Text()
		if body == "" {
			body = "[" + m.Type + "]"
		}
		ts := time.UnixMilli(int64(m.Timestamp)).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-4s  %s\n", ts, sender, body)
	}
}

func cmdAgents(ctx context.Context, c *api.Client, jsonOut bool) {
	agents, err := c.ListAgents(ctx)
	fail(err)
	if jsonOut {
		outputJSON(agents)
		return
	}
	for _, a := range agents {
		fmt.Printf("%-16s  %s\n", a.ID, a.Name)
	}
}

func cmdTagOptions(ctx context.Context, c *api.Client, jsonOut bool) {
	tags, err := c.ListTagOptions(ctx)
	fail(err)
	if jsonOut {
		outputJSON(tags)
		return
	}
	for _, t := range tags {
		fmt.Println(t)
	}
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
