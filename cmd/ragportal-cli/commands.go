package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ragportal/portal-ui/internal/backend"
	domainauth "github.com/ragportal/portal-ui/internal/domain/auth"
	"github.com/ragportal/portal-ui/internal/domain/model"
	apperrors "github.com/ragportal/portal-ui/internal/errors"
	"github.com/ragportal/portal-ui/internal/http/uiutil"
	"github.com/ragportal/portal-ui/internal/ports"
)

var errAdminRequired = errors.New("admin role required")

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func runLogin(c *cli, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password (or RAGPORTAL_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = c.password
	}

	creds := domainauth.Credentials{Email: strings.TrimSpace(*email), Password: *password}
	if creds.Email == "" || creds.Password == "" {
		return errors.New("email and password are required")
	}
	if err := c.session.LoginUser(c.ctx, creds); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := c.session.User()
	if user == nil {
		return errNotLoggedIn
	}
	return writef(c.out, "Logged in as %s (%s) in %s\n", user.Email, user.Role, user.TenantName)
}

func runLogout(c *cli, _ []string) error {
	c.session.Logout(c.ctx)
	return writef(c.out, "Logged out\n")
}

func runWhoami(c *cli, _ []string) error {
	user := c.session.User()
	tw := newTable(c.out)
	tw.row("Email", user.Email)
	tw.row("Role", string(user.Role))
	tw.row("Tenant", fmt.Sprintf("%s (%d)", user.TenantName, user.TenantID))
	tw.row("User ID", strconv.FormatInt(user.ID, 10))
	return tw.flush()
}

func runAsk(c *cli, args []string) error {
	q, err := model.NewChatQuery(strings.Join(args, " "))
	if err != nil {
		return cliError(err)
	}
	answer, err := c.api.Ask(c.ctx, q)
	if err != nil {
		return cliError(err)
	}
	if err := writef(c.out, "%s\n", answer.Answer); err != nil {
		return err
	}
	if n := len(answer.Sources); n > 0 {
		return writef(c.out, "\nBased on %d source(s)\n", n)
	}
	return nil
}

func runDocuments(c *cli, args []string) error {
	fs := newFlagSet("documents")
	page := fs.Int("page", 1, "Page number (1-based)")
	limit := fs.Int("limit", 10, "Documents per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	docs, err := c.api.ListDocuments(c.ctx, *page, *limit)
	if err != nil {
		return cliError(err)
	}
	if len(docs.Items) == 0 {
		return writef(c.out, "No documents yet.\n")
	}

	tw := newTable(c.out)
	tw.row("ID", "NAME", "STATUS", "SIZE", "CREATED")
	for _, d := range docs.Items {
		size := "-"
		if d.SizeBytes != nil {
			size = uiutil.FormatBytes(*d.SizeBytes)
		}
		tw.row(strconv.FormatInt(d.ID, 10), d.DisplayName(), d.Status, size, orDash(uiutil.FriendlyTimestamp(d.CreatedAt)))
	}
	if err := tw.flush(); err != nil {
		return err
	}
	return writef(c.out, "Page %d of %d (%d total)\n", docs.Page, docs.TotalPages(), docs.Total)
}

func runUpload(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: upload <file>")
	}
	path := args[0]
	name := filepath.Base(path)

	contentType, err := model.ValidateUpload(name, mime.TypeByExtension(filepath.Ext(name)))
	if err != nil {
		return cliError(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	doc, err := c.api.UploadDocument(c.ctx, ports.UploadInput{Filename: name, ContentType: contentType, Body: f})
	if err != nil {
		return cliError(err)
	}
	return writef(c.out, "Uploaded document %d (%s)\n", doc.ID, doc.DisplayName())
}

func runUploadURL(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: upload-url <url>")
	}
	u, err := model.ValidateSourceURL(args[0])
	if err != nil {
		return cliError(err)
	}
	doc, err := c.api.UploadURL(c.ctx, u)
	if err != nil {
		return cliError(err)
	}
	return writef(c.out, "Added document %d (%s)\n", doc.ID, doc.DisplayName())
}

func runIngest(c *cli, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: ingest <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid document id %q", args[0])
	}
	if err := c.api.IngestDocument(c.ctx, id); err != nil {
		return cliError(err)
	}
	return writef(c.out, "Ingestion started for document %d\n", id)
}

func runUsers(c *cli, args []string) error {
	if c.session.User().Role != domainauth.RoleAdmin {
		return errAdminRequired
	}

	fs := newFlagSet("users")
	page := fs.Int("page", 1, "Page number (1-based)")
	size := fs.Int("size", 10, "Users per page")
	search := fs.String("search", "", "Filter by email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *page < 1 {
		*page = 1
	}

	list, err := c.api.ListUsers(c.ctx, model.UserListOptions{
		Page:     *page - 1,
		PageSize: *size,
		Search:   strings.TrimSpace(*search),
	})
	if err != nil {
		return cliError(err)
	}
	if len(list.Items) == 0 {
		return writef(c.out, "No users match.\n")
	}

	tw := newTable(c.out)
	tw.row("ID", "EMAIL", "ROLE", "CREATED")
	for _, u := range list.Items {
		tw.row(strconv.FormatInt(u.ID, 10), u.Email, string(u.Role), orDash(uiutil.FriendlyTimestamp(u.CreatedAt)))
	}
	if err := tw.flush(); err != nil {
		return err
	}
	return writef(c.out, "%d total\n", list.Total)
}

func runRegisterTenant(c *cli, args []string) error {
	fs := newFlagSet("register-tenant")
	name := fs.String("name", "", "Tenant name")
	email := fs.String("email", "", "Admin email")
	password := fs.String("password", "", "Admin password (or RAGPORTAL_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = c.password
	}

	req, err := model.TenantRegistration{
		TenantName:      *name,
		AdminEmail:      *email,
		AdminPassword:   *password,
		ConfirmPassword: *password,
	}.Request()
	if err != nil {
		return cliError(err)
	}

	tenant, err := c.api.RegisterTenant(c.ctx, req)
	if err != nil {
		return cliError(err)
	}
	return writef(c.out, "Registered tenant %q (id %d). Log in as %s.\n", tenant.Name, tenant.ID, req.AdminEmail)
}

func runChangePassword(c *cli, args []string) error {
	fs := newFlagSet("change-password")
	current := fs.String("current", "", "Current password")
	next := fs.String("new", "", "New password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := model.PasswordChange{
		CurrentPassword: *current,
		NewPassword:     *next,
		ConfirmPassword: *next,
	}.Request()
	if err != nil {
		return cliError(err)
	}
	if err := c.api.ChangePassword(c.ctx, req); err != nil {
		return cliError(err)
	}
	return writef(c.out, "Password changed successfully\n")
}

// cliError prefers the message a user can act on.
func cliError(err error) error {
	if msg := apperrors.GetMessage(err); msg != "" {
		return errors.New(msg)
	}
	if detail := backend.Detail(err); detail != "" {
		return errors.New(detail)
	}
	return err
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
