package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/itchan-dev/simpleboard/client/internal/likes"
	"github.com/itchan-dev/simpleboard/client/internal/media"
	"github.com/itchan-dev/simpleboard/client/internal/reconcile"
	"github.com/itchan-dev/simpleboard/client/internal/store"
	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/itchan-dev/simpleboard/shared/validation"
)

func usageError(synopsis string) error {
	return fmt.Errorf("usage: boardctl %s", synopsis)
}

// quietNotifier keeps store failures out of the output; commands report them.
type quietNotifier struct{}

func (quietNotifier) Notify(msg string, err error) {
	logger.With("store").Debug(msg, "error", err)
}

func (a *app) openBoard(ctx context.Context, ref string) (*store.Store, error) {
	id, err := domain.ParseBoardRef(ref)
	if err != nil {
		return nil, &validation.Error{Field: "board", Message: err.Error()}
	}
	st := store.New(id, a.api, a.session, quietNotifier{})
	if err := st.Load(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// === Boards ===

func (a *app) listBoards(ctx context.Context, args []string) error {
	boards, err := a.api.ListRecentBoards(ctx, 20)
	if err != nil {
		return err
	}
	for _, b := range boards {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", b.Id, b.Title, age(b.UpdatedAt))
	}
	return nil
}

func (a *app) newBoard(ctx context.Context, args []string) error {
	id := domain.NewBoardId()
	title := strings.Join(args, " ")
	if title == "" {
		title = domain.DefaultBoardTitle(id)
	}
	if err := validation.BoardTitle(title); err != nil {
		return err
	}
	board, err := a.api.CreateBoard(ctx, id, title, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\n", board.Id, board.Title)
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <board>")
	}
	st, err := a.openBoard(ctx, args[0])
	if err != nil {
		return err
	}
	render(a.out, st, a.session.IsAdmin())
	return nil
}

// watch prints the board and reprints it after every change that applies.
// After a reconnect the board is reloaded since events were missed.
func (a *app) watch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("watch <board>")
	}
	st, err := a.openBoard(ctx, args[0])
	if err != nil {
		return err
	}
	admin := a.session.IsAdmin()
	render(a.out, st, admin)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rec := reconcile.New(st, a.session, nil)

	err = a.api.Subscribe(ctx, st.BoardId(), func(ev domain.ChangeEvent) {
		if !rec.Handle(ev) {
			return
		}
		if st.Deleted() {
			fmt.Fprintln(a.out, "board was deleted")
			cancel()
			return
		}
		render(a.out, st, admin)
	}, func() {
		if err := st.Load(ctx); err != nil {
			logger.Log.Warn("reload after reconnect failed", "error", err)
			return
		}
		render(a.out, st, admin)
	})
	if st.Deleted() {
		return nil
	}
	return err
}

// === Content items ===

func (a *app) post(ctx context.Context, args []string) error {
	const synopsis = "post <board> [-category id] [-author name] [-title title] <text|link|image|file> <value> [caption]"
	if len(args) < 1 {
		return usageError(synopsis)
	}
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	categoryId := fs.String("category", "", "category id")
	author := fs.String("author", "", "display name")
	title := fs.String("title", "", "title")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() < 2 {
		return usageError(synopsis)
	}

	st, err := a.openBoard(ctx, args[0])
	if err != nil {
		return err
	}

	data := domain.ContentItemCreationData{Type: domain.ContentType(fs.Arg(0))}
	if *categoryId != "" {
		data.CategoryId = categoryId
	}
	if *author != "" {
		data.AuthorName = author
	}
	value := fs.Arg(1)
	caption := strings.Join(fs.Args()[2:], " ")

	switch data.Type {
	case domain.ContentText:
		data.Content = strings.Join(fs.Args()[1:], " ")
	case domain.ContentLink:
		data.LinkUrl = &value
		data.Content = caption
	case domain.ContentImage, domain.ContentFile:
		f, err := media.Open(value)
		if err != nil {
			return err
		}
		if data.Type == domain.ContentImage {
			data.ContentPayload, err = media.PrepareImage(ctx, a.api, st.BoardId(), f)
		} else {
			data.ContentPayload, err = media.PrepareFile(ctx, a.api, st.BoardId(), f)
		}
		if err != nil {
			return err
		}
		data.Content = caption
	default:
		return &validation.Error{Field: "type", Message: fmt.Sprintf("unknown content type %q", data.Type)}
	}
	if *title != "" {
		data.Title = title
	}

	item, err := st.CreateContentItem(ctx, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, item.Id)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	const synopsis = "edit <board> [-category id | -unfile] [-title title] [-link url] <item> [text]"
	if len(args) < 1 {
		return usageError(synopsis)
	}
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	categoryId := fs.String("category", "", "move to category")
	unfile := fs.Bool("unfile", false, "remove from its category")
	title := fs.String("title", "", "new title")
	link := fs.String("link", "", "new link url")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() < 1 {
		return usageError(synopsis)
	}

	st, err := a.openBoard(ctx, args[0])
	if err != nil {
		return err
	}

	var data domain.ContentItemUpdateData
	if fs.NArg() > 1 {
		text := strings.Join(fs.Args()[1:], " ")
		data.Content = &text
	}
	if *categoryId != "" {
		data.CategoryId = categoryId
	}
	data.ClearCategory = *unfile
	if *title != "" {
		data.Title = title
	}
	if *link != "" {
		data.LinkUrl = link
	}

	item, err := st.UpdateContentItem(ctx, fs.Arg(0), data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, describeItem(item))
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("rm <board> <item>")
	}
	st, err := a.openBoard(ctx, args[0])
	if err != nil {
		return err
	}
	return st.DeleteContentItem(ctx, args[1])
}

func (a *app) like(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("like <board> <item>")
	}
	st, err := a.openBoard(ctx, args[0])
	if err != nil {
		return err
	}
	itemId := args[1]
	if _, ok := st.Item(itemId); !ok {
		return &validation.Error{Field: "item", Message: "no such item on this board"}
	}

	state, err := likes.NewButton(itemId, a.api, st, nil).Toggle(ctx)
	it, _ := st.Item(itemId)
	fmt.Fprintf(a.out, "%s (%d likes)\n", state, it.LikeCount)
	return err
}

// === Categories ===

func (a *app) category(ctx context.Context, args []string) error {
	const synopsis = "category <add|rename|color|hide|unhide|move|rm> <board> ..."
	if len(args) < 2 {
		return usageError(synopsis)
	}
	action, rest := args[0], args[1:]

	if action == "add" {
		fs := flag.NewFlagSet("category add", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		color := fs.String("color", "", "hex color")
		description := fs.String("description", "", "description")
		if err := fs.Parse(rest[1:]); err != nil || fs.NArg() < 1 {
			return usageError("category add <board> [-color #rrggbb] [-description text] <name>")
		}
		st, err := a.openBoard(ctx, rest[0])
		if err != nil {
			return err
		}
		data := domain.CategoryCreationData{Name: strings.Join(fs.Args(), " "), Color: *color}
		if *description != "" {
			data.Description = description
		}
		c, err := st.CreateCategory(ctx, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, c.Id)
		return nil
	}

	if len(rest) < 2 {
		return usageError(synopsis)
	}
	st, err := a.openBoard(ctx, rest[0])
	if err != nil {
		return err
	}
	id, params := rest[1], rest[2:]

	switch action {
	case "rename":
		if len(params) == 0 {
			return usageError("category rename <board> <category> <name>")
		}
		name := strings.Join(params, " ")
		_, err = st.UpdateCategory(ctx, id, domain.CategoryUpdateData{Name: &name})
	case "color":
		if len(params) != 1 {
			return usageError("category color <board> <category> <#rrggbb>")
		}
		_, err = st.UpdateCategory(ctx, id, domain.CategoryUpdateData{Color: &params[0]})
	case "hide", "unhide":
		err = st.SetCategoryHidden(ctx, id, action == "hide")
	case "move":
		if len(params) != 1 {
			return usageError("category move <board> <category> <index>")
		}
		to, convErr := strconv.Atoi(params[0])
		if convErr != nil {
			return &validation.Error{Field: "index", Message: "index must be a number"}
		}
		from := categoryIndex(st.Categories(), id)
		if from < 0 {
			return &validation.Error{Field: "category", Message: "no such category on this board"}
		}
		err = st.ReorderCategories(ctx, from, to)
	case "rm":
		err = st.DeleteCategory(ctx, id)
	default:
		return usageError(synopsis)
	}
	if err != nil {
		return err
	}
	render(a.out, st, true)
	return nil
}

func categoryIndex(cs []domain.Category, id domain.CategoryId) int {
	for i, c := range cs {
		if c.Id == id {
			return i
		}
	}
	return -1
}

// === Board administration ===

func (a *app) boardAdmin(ctx context.Context, args []string) error {
	const synopsis = "board <rename|describe|rm> <board> [value]"
	if len(args) < 2 {
		return usageError(synopsis)
	}
	st, err := a.openBoard(ctx, args[1])
	if err != nil {
		return err
	}
	value := strings.Join(args[2:], " ")

	switch args[0] {
	case "rename":
		_, err = st.UpdateBoard(ctx, domain.BoardUpdateData{Title: &value})
	case "describe":
		_, err = st.UpdateBoard(ctx, domain.BoardUpdateData{Description: &value})
	case "rm":
		if err = st.DeleteBoard(ctx); err == nil {
			fmt.Fprintln(a.out, "deleted", st.BoardId())
			return nil
		}
	default:
		return usageError(synopsis)
	}
	if err != nil {
		return err
	}
	render(a.out, st, true)
	return nil
}

// === Session ===

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("login <email>  (password is read from stdin)")
	}
	scanner := bufio.NewScanner(a.stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		return errors.New("no password on stdin")
	}
	if err := a.session.Login(ctx, args[0], strings.TrimRight(scanner.Text(), "\r")); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged in as", args[0])
	return nil
}

func (a *app) logout(ctx context.Context, args []string) error {
	return a.session.Logout()
}

func (a *app) whoami(ctx context.Context, args []string) error {
	v := a.session.Viewer()
	fmt.Fprintln(a.out, "identity:", v.Identity)
	if v.IsAdmin() {
		fmt.Fprintln(a.out, "admin:", v.Admin.Email)
	}
	return nil
}
