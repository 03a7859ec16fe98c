// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	"github.com/repraze/repraze-apps-sub001/internal/adapter"
	"github.com/repraze/repraze-apps-sub001/internal/coerce"
	"github.com/repraze/repraze-apps-sub001/internal/logger"
	"github.com/repraze/repraze-apps-sub001/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) (any, error)
}

// App dispatches command-line invocations to the server adapter.
type App struct {
	adapter  adapter.ServerAdapter
	out      io.Writer
	logger   *logger.Logger
	commands map[string]command
}

// NewApp builds an App printing results to out.
func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, logger *logger.Logger) (*App, error) {
	if serverAdapter == nil {
		return nil, errors.New("nil server adapter")
	}

	a := &App{adapter: serverAdapter, out: out, logger: logger}
	a.commands = map[string]command{
		"version":     {usage: "version", run: a.version},
		"login":       {usage: "login -username <name> -password <password>", run: a.login},
		"me":          {usage: "me", run: a.me},
		"refresh":     {usage: "refresh", run: a.refresh},
		"posts":       {usage: "posts [key=value ...]", run: a.listPosts},
		"post":        {usage: "post [-expand a,b] <id>", run: a.getPost},
		"create-post": {usage: "create-post -name <slug> -title <title> [-content ...] [-tags a,b] [-public] [-publish-date <rfc3339>]", run: a.createPost},
		"delete-post": {usage: "delete-post <id>", run: a.deletePost},
		"create-user": {usage: "create-user -username <name> -password <password> [-display-name ...] [-email ...]", run: a.createUser},
		"passwd":      {usage: "passwd -password <password> <id>", run: a.changePassword},
	}

	return a, nil
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return ErrNoCommand
	}

	name := args[0]
	cmd, ok := a.commands[name]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")

	result, err := cmd.run(ctx, args[1:])
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if result == nil {
		return nil
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", a.commands[name].usage)
	}
}

func (a *App) version(ctx context.Context, _ []string) (any, error) {
	return a.adapter.Version(ctx)
}

func (a *App) login(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("login")
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if *username == "" || *password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrMissingArgument)
	}

	return a.adapter.Login(ctx, models.Credentials{Username: *username, Password: *password})
}

func (a *App) me(ctx context.Context, _ []string) (any, error) {
	return a.adapter.Me(ctx)
}

func (a *App) refresh(ctx context.Context, _ []string) (any, error) {
	return a.adapter.RefreshToken(ctx)
}

// listPosts forwards key=value pairs as query parameters. Repeated keys are
// sent repeatedly.
func (a *App) listPosts(ctx context.Context, args []string) (any, error) {
	params := url.Values{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrInvalidArgument, arg)
		}
		params.Add(key, value)
	}

	page, err := a.adapter.ListPosts(ctx, params)
	if err != nil {
		return nil, err
	}

	items := page.Items
	if items == nil {
		items = []models.Post{}
	}
	return models.Response{Data: items, Meta: page.Meta}, nil
}

func (a *App) getPost(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("post")
	expand := fs.String("expand", "", "comma separated relations to expand")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	id, err := singleArg(fs)
	if err != nil {
		return nil, err
	}

	var relations []string
	if *expand != "" {
		relations = splitList(*expand)
	}
	return a.adapter.GetPost(ctx, id, relations)
}

func (a *App) createPost(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("create-post")
	name := fs.String("name", "", "unique slug")
	title := fs.String("title", "", "title")
	summary := fs.String("summary", "", "summary")
	content := fs.String("content", "", "markdown content")
	tags := fs.String("tags", "", "comma separated tags")
	public := fs.Bool("public", false, "visible to anonymous readers once published")
	publishDate := fs.String("publish-date", "", "RFC 3339 publish date")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	var input models.PostInput
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			input.Name = name
		case "title":
			input.Title = title
		case "summary":
			input.Summary = summary
		case "content":
			input.Content = content
		case "tags":
			list := splitList(*tags)
			input.Tags = &list
		case "public":
			input.Public = public
		case "publish-date":
			input.PublishDate = publishDate
		}
	})

	return a.adapter.CreatePost(ctx, input)
}

func (a *App) deletePost(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("delete-post")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	id, err := singleArg(fs)
	if err != nil {
		return nil, err
	}
	if err = a.adapter.DeletePost(ctx, id); err != nil {
		return nil, err
	}
	return models.MessageResponse{Message: "deleted " + id}, nil
}

func (a *App) createUser(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("create-user")
	username := fs.String("username", "", "unique login name")
	password := fs.String("password", "", "initial password")
	displayName := fs.String("display-name", "", "display name")
	email := fs.String("email", "", "email address")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	input := models.UserInput{Username: username, Password: password}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "display-name":
			input.DisplayName = displayName
		case "email":
			input.Email = email
		}
	})

	return a.adapter.CreateUser(ctx, input)
}

func (a *App) changePassword(ctx context.Context, args []string) (any, error) {
	fs := newFlagSet("passwd")
	password := fs.String("password", "", "new password")
	if err := parse(fs, args); err != nil {
		return nil, err
	}

	id, err := singleArg(fs)
	if err != nil {
		return nil, err
	}
	if *password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrMissingArgument)
	}

	if err = a.adapter.ChangePassword(ctx, id, *password); err != nil {
		return nil, err
	}
	return models.MessageResponse{Message: "password changed"}, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

func singleArg(fs *flag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		return "", fmt.Errorf("%w: id", ErrMissingArgument)
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("%w: expected one id, got %d arguments", ErrInvalidArgument, fs.NArg())
	}
}

// splitList uses the same comma splitting as the server's query coercion.
func splitList(s string) []string {
	list, _ := coerce.StringList(s).([]string)
	return list
}
